package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bookcase/internal/http-api/dto"
	"bookcase/internal/http-api/middleware"
	"bookcase/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

type LibraryHandler struct {
	svc service.LibraryService
}

func NewLibraryHandler(svc service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

func (h *LibraryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Add)
	rg.GET("", h.List)
	rg.PUT("/:user_book_id/status", h.UpdateStatus)
	rg.PUT("/:user_book_id/progress", h.UpdateProgress)
	rg.POST("/:user_book_id/sessions", h.LogSession)
	rg.GET("/:user_book_id/sessions", h.ListSessions)
}

// Add a book to the caller's library.
func (h *LibraryHandler) Add(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	userBook, err := h.svc.AddBook(ctx, userID, req.Book.ToModel(), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_book": dto.FromUserBookModel(userBook)})
}

// List the caller's library, optionally by status.
func (h *LibraryHandler) List(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	statusFilter := c.Query("status")
	if statusFilter == "all" {
		statusFilter = ""
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	userBooks, err := h.svc.ListBooks(ctx, userID, statusFilter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	books := make([]dto.UserBookResponse, 0, len(userBooks))
	for i := range userBooks {
		books = append(books, dto.FromUserBookModel(&userBooks[i]))
	}
	c.JSON(http.StatusOK, dto.LibraryListResponse{Books: books, Total: len(books)})
}

// UpdateStatus moves a tracked book to a new reading status.
func (h *LibraryHandler) UpdateStatus(c *gin.Context) {
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

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	userBook, err := h.svc.UpdateStatus(ctx, userID, userBookID, req.Status, req.CurrentPage, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_book": dto.FromUserBookModel(userBook)})
}

// UpdateProgress moves the caller's bookmark while reading.
func (h *LibraryHandler) UpdateProgress(c *gin.Context) {
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

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPage == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current_page is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	userBook, err := h.svc.UpdateProgress(ctx, userID, userBookID, *req.CurrentPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_book": dto.FromUserBookModel(userBook)})
}

// LogSession records one reading sitting for a tracked book.
func (h *LibraryHandler) LogSession(c *gin.Context) {
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

	var req dto.LogSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input := service.SessionInput{
		StartPage:       req.StartPage,
		EndPage:         req.EndPage,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		input.Date = &date
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	session, err := h.svc.LogSession(ctx, userID, userBookID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": dto.FromSessionModel(session)})
}

// ListSessions returns a tracked book's sessions, newest first.
func (h *LibraryHandler) ListSessions(c *gin.Context) {
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

	sessions, err := h.svc.ListSessions(ctx, userID, userBookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, dto.FromSessionModel(&sessions[i]))
	}
	c.JSON(http.StatusOK, dto.SessionListResponse{Sessions: out, Total: len(out)})
}

func userBookParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("user_book_id"), 10, 64)
}
