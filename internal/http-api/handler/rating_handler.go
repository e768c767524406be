package handler

import (
	"context"
	"net/http"

	"bookcase/internal/http-api/dto"
	"bookcase/internal/http-api/middleware"
	"bookcase/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	svc service.RatingService
}

func NewRatingHandler(svc service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:user_book_id/ratings", h.Rate)
	rg.GET("/:user_book_id/ratings", h.List)
}

// Rate upserts a batch of category ratings for one book.
func (h *RatingHandler) Rate(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	userBookID, err := userBookParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_book_id"})
		return
	}

	var req dto.RateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.RateBook(ctx, userID, userBookID, req.Ratings, req.Review); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// List returns every category rated for one book.
func (h *RatingHandler) List(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	userBookID, err := userBookParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_book_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ratings, err := h.svc.ListRatings(ctx, userID, userBookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		out = append(out, dto.FromRatingModel(&ratings[i]))
	}
	c.JSON(http.StatusOK, dto.RatingListResponse{Ratings: out, Total: len(out)})
}
