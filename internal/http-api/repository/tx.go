package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles repositories bound to one transaction.
type Repos struct {
	Books     BookRepository
	UserBooks UserBookRepository
	Ratings   RatingRepository
	Sessions  SessionRepository
}

// TxRunner executes a function inside a single database transaction.
// Multi-statement write paths go through InTx so either every statement
// commits or none does, and multi-query reads see one committed state.
type TxRunner interface {
	InTx(ctx context.Context, fn func(Repos) error) error
}

type txRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &txRunner{db: db}
}

func (r *txRunner) InTx(ctx context.Context, fn func(Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Books:     NewBookRepository(tx),
			UserBooks: NewUserBookRepository(tx),
			Ratings:   NewRatingRepository(tx),
			Sessions:  NewSessionRepository(tx),
		})
	})
}
