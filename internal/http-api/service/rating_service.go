package service

import (
	"context"
	"errors"
	"sort"

	"bookcase/internal/http-api/models"
	"bookcase/internal/http-api/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	// RateBook upserts a batch of category ratings atomically: if any entry is
	// invalid, none is applied. The review text lands on the overall category,
	// so a batch carrying a review must include an overall rating.
	RateBook(ctx context.Context, userID string, userBookID int64, ratings map[string]float64, review *string) error
	ListRatings(ctx context.Context, userID string, userBookID int64) ([]models.Rating, error)
}

type ratingService struct {
	ratingRepo   repository.RatingRepository
	userBookRepo repository.UserBookRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, userBookRepo repository.UserBookRepository) RatingService {
	return &ratingService{
		ratingRepo:   ratingRepo,
		userBookRepo: userBookRepo,
	}
}

func (s *ratingService) RateBook(ctx context.Context, userID string, userBookID int64, ratings map[string]float64, review *string) error {
	if len(ratings) == 0 {
		return ErrInvalidRating
	}
	userBook, err := s.ownedUserBook(ctx, userID, userBookID)
	if err != nil {
		return err
	}

	// Validate the whole batch before touching the store.
	categories := make([]string, 0, len(ratings))
	for category, value := range ratings {
		if !models.ValidCategory(category) || !models.ValidRatingValue(value) {
			return ErrInvalidRating
		}
		categories = append(categories, category)
	}
	if review != nil {
		// The review lands on the overall row; without one it would be
		// silently lost.
		if _, ok := ratings[models.CategoryOverall]; !ok {
			return ErrInvalidRating
		}
	}
	sort.Strings(categories)

	rows := make([]models.Rating, 0, len(categories))
	for _, category := range categories {
		row := models.Rating{
			UserID:   userID,
			BookID:   userBook.BookID,
			Category: category,
			Value:    ratings[category],
		}
		if category == models.CategoryOverall {
			row.Review = review
		}
		rows = append(rows, row)
	}

	if err := s.ratingRepo.UpsertBatch(ctx, rows); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *ratingService) ListRatings(ctx context.Context, userID string, userBookID int64) ([]models.Rating, error) {
	userBook, err := s.ownedUserBook(ctx, userID, userBookID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.ListByUserAndBook(ctx, userID, userBook.BookID)
	if err != nil {
		return nil, storeErr(err)
	}
	return ratings, nil
}

func (s *ratingService) ownedUserBook(ctx context.Context, userID string, userBookID int64) (*models.UserBook, error) {
	userBook, err := s.userBookRepo.GetByID(ctx, userBookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	if userBook.UserID != userID {
		return nil, ErrForbidden
	}
	return userBook, nil
}
