package dto

import (
	"time"

	"bookcase/internal/http-api/models"
)

// BookPayload is the catalog metadata supplied when adding a book. It mirrors
// what the search endpoint returned for the chosen result.
type BookPayload struct {
	OpenLibraryID    string   `json:"open_library_id" binding:"required"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	Pages            *int     `json:"pages,omitempty" binding:"omitempty,min=0"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
	Subjects         []string `json:"subjects"`
	ISBN             *string  `json:"isbn,omitempty"`
	CoverURL         *string  `json:"cover_url,omitempty"`
}

// ToModel maps the payload onto a Book row.
func (p *BookPayload) ToModel() *models.Book {
	title := p.Title
	if title == "" {
		title = "Unknown Title"
	}
	return &models.Book{
		OpenLibraryID: p.OpenLibraryID,
		Title:         title,
		Authors:       models.StringList(p.Authors),
		Pages:         p.Pages,
		PublishYear:   p.FirstPublishYear,
		Genres:        models.StringList(p.Subjects),
		ISBN10:        p.ISBN,
		CoverURL:      p.CoverURL,
	}
}

type AddBookRequest struct {
	Book   BookPayload `json:"book" binding:"required"`
	Status string      `json:"status"`
}

type UpdateStatusRequest struct {
	Status      string  `json:"status" binding:"required"`
	CurrentPage *int    `json:"current_page,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateProgressRequest struct {
	CurrentPage *int `json:"current_page" binding:"required"`
}

type LogSessionRequest struct {
	StartPage       int     `json:"start_page" binding:"min=0"`
	EndPage         int     `json:"end_page" binding:"required,min=0"`
	Date            *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	DurationMinutes *int    `json:"duration_minutes,omitempty" binding:"omitempty,min=0"`
	Notes           *string `json:"notes,omitempty"`
}

// BookResponse is the shared catalog view of a book.
type BookResponse struct {
	ID            int64    `json:"id"`
	OpenLibraryID string   `json:"open_library_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Pages         *int     `json:"pages,omitempty"`
	PublishYear   *int     `json:"publish_year,omitempty"`
	Genres        []string `json:"genres"`
	CoverURL      *string  `json:"cover_url,omitempty"`
}

func FromBookModel(book *models.Book) *BookResponse {
	if book == nil {
		return nil
	}
	return &BookResponse{
		ID:            book.ID,
		OpenLibraryID: book.OpenLibraryID,
		Title:         book.Title,
		Authors:       book.Authors,
		Pages:         book.Pages,
		PublishYear:   book.PublishYear,
		Genres:        book.Genres,
		CoverURL:      book.CoverURL,
	}
}

// UserBookResponse is one tracked book in the caller's library.
type UserBookResponse struct {
	ID                 int64         `json:"id"`
	Status             string        `json:"status"`
	DateAdded          time.Time     `json:"date_added"`
	DateStarted        *time.Time    `json:"date_started,omitempty"`
	DateFinished       *time.Time    `json:"date_finished,omitempty"`
	CurrentPage        int           `json:"current_page"`
	ProgressPercentage float64       `json:"progress_percentage"`
	Notes              *string       `json:"notes,omitempty"`
	Book               *BookResponse `json:"book,omitempty"`
}

func FromUserBookModel(userBook *models.UserBook) UserBookResponse {
	return UserBookResponse{
		ID:                 userBook.ID,
		Status:             userBook.Status,
		DateAdded:          userBook.DateAdded,
		DateStarted:        userBook.DateStarted,
		DateFinished:       userBook.DateFinished,
		CurrentPage:        userBook.CurrentPage,
		ProgressPercentage: userBook.ProgressPercentage(),
		Notes:              userBook.Notes,
		Book:               FromBookModel(userBook.Book),
	}
}

type LibraryListResponse struct {
	Books []UserBookResponse `json:"books"`
	Total int                `json:"total"`
}

// SessionResponse is one logged reading session.
type SessionResponse struct {
	ID              int64   `json:"id"`
	BookID          int64   `json:"book_id"`
	StartPage       int     `json:"start_page"`
	EndPage         int     `json:"end_page"`
	PagesRead       int     `json:"pages_read"`
	SessionDate     string  `json:"session_date"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

func FromSessionModel(session *models.ReadingSession) SessionResponse {
	return SessionResponse{
		ID:              session.ID,
		BookID:          session.BookID,
		StartPage:       session.StartPage,
		EndPage:         session.EndPage,
		PagesRead:       session.PagesRead(),
		SessionDate:     session.SessionDate.Format("2006-01-02"),
		DurationMinutes: session.DurationMinutes,
		Notes:           session.Notes,
	}
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}
