package repository

import (
	"context"
	"errors"
	"fmt"

	"bookcase/internal/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	// UpsertBatch writes every rating in one transaction; either all land or none do.
	UpsertBatch(ctx context.Context, ratings []models.Rating) error
	ListByUserAndBook(ctx context.Context, userID string, bookID int64) ([]models.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) UpsertBatch(ctx context.Context, ratings []models.Rating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range ratings {
			var existing models.Rating
			err := tx.Where("user_id = ? AND book_id = ? AND category = ?",
				ratings[i].UserID, ratings[i].BookID, ratings[i].Category).
				First(&existing).Error
			switch {
			case err == nil:
				existing.Value = ratings[i].Value
				existing.Review = ratings[i].Review
				if err := tx.Save(&existing).Error; err != nil {
					return fmt.Errorf("update rating: %w", err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&ratings[i]).Error; err != nil {
					return fmt.Errorf("create rating: %w", err)
				}
			default:
				return err
			}
		}
		return nil
	})
}

func (r *ratingRepository) ListByUserAndBook(ctx context.Context, userID string, bookID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("category").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}
	return ratings, nil
}
