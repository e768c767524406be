package dto

import (
	"time"

	"bookcase/internal/http-api/models"
)

// RateBookRequest batches category ratings for one book. The whole batch is
// applied atomically or not at all.
type RateBookRequest struct {
	Ratings map[string]float64 `json:"ratings" binding:"required"`
	Review  *string            `json:"review,omitempty"`
}

// RatingResponse is one stored category rating.
type RatingResponse struct {
	Category  string    `json:"category"`
	Value     float64   `json:"value"`
	Review    *string   `json:"review,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromRatingModel(rating *models.Rating) RatingResponse {
	return RatingResponse{
		Category:  rating.Category,
		Value:     rating.Value,
		Review:    rating.Review,
		UpdatedAt: rating.UpdatedAt,
	}
}

type RatingListResponse struct {
	Ratings []RatingResponse `json:"ratings"`
	Total   int              `json:"total"`
}
