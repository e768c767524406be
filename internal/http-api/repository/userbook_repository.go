package repository

import (
	"context"
	"fmt"

	"bookcase/internal/http-api/models"

	"gorm.io/gorm"
)

type UserBookRepository interface {
	Create(ctx context.Context, userBook *models.UserBook) error
	GetByID(ctx context.Context, id int64) (*models.UserBook, error)
	ListByUser(ctx context.Context, userID, statusFilter string) ([]models.UserBook, error)
	Save(ctx context.Context, userBook *models.UserBook) error
	Exists(ctx context.Context, userID string, bookID int64) (bool, error)
}

type userBookRepository struct {
	db *gorm.DB
}

func NewUserBookRepository(db *gorm.DB) UserBookRepository {
	return &userBookRepository{db: db}
}

func (r *userBookRepository) Create(ctx context.Context, userBook *models.UserBook) error {
	if err := r.db.WithContext(ctx).Create(userBook).Error; err != nil {
		return fmt.Errorf("create user book: %w", err)
	}
	return nil
}

func (r *userBookRepository) GetByID(ctx context.Context, id int64) (*models.UserBook, error) {
	var userBook models.UserBook
	if err := r.db.WithContext(ctx).Preload("Book").First(&userBook, id).Error; err != nil {
		return nil, err
	}
	return &userBook, nil
}

func (r *userBookRepository) ListByUser(ctx context.Context, userID, statusFilter string) ([]models.UserBook, error) {
	var userBooks []models.UserBook
	q := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("date_added DESC")
	if statusFilter != "" {
		q = q.Where("status = ?", statusFilter)
	}
	if err := q.Find(&userBooks).Error; err != nil {
		return nil, fmt.Errorf("list user books: %w", err)
	}
	return userBooks, nil
}

func (r *userBookRepository) Save(ctx context.Context, userBook *models.UserBook) error {
	if err := r.db.WithContext(ctx).Save(userBook).Error; err != nil {
		return fmt.Errorf("save user book: %w", err)
	}
	return nil
}

func (r *userBookRepository) Exists(ctx context.Context, userID string, bookID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserBook{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
