package repository

import (
	"context"
	"fmt"

	"bookcase/internal/http-api/models"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.ReadingSession) error
	ListByUserAndBook(ctx context.Context, userID string, bookID int64) ([]models.ReadingSession, error)
	ListByUser(ctx context.Context, userID string) ([]models.ReadingSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.ReadingSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create reading session: %w", err)
	}
	return nil
}

func (r *sessionRepository) ListByUserAndBook(ctx context.Context, userID string, bookID int64) ([]models.ReadingSession, error) {
	var sessions []models.ReadingSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("session_date DESC, created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list book sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID string) ([]models.ReadingSession, error) {
	var sessions []models.ReadingSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("session_date DESC, created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}
	return sessions, nil
}
