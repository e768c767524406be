package models

import "time"

// Reading statuses a UserBook can hold. Any status may transition to any
// other; only the date side effects below are one-way.
const (
	StatusTBR      = "tbr"
	StatusReading  = "reading"
	StatusFinished = "finished"
	StatusDNF      = "dnf"
)

// ValidStatus reports whether s is one of the four reading statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusTBR, StatusReading, StatusFinished, StatusDNF:
		return true
	}
	return false
}

// UserBook is one user's relationship to one book. DateAdded is immutable;
// DateStarted and DateFinished are set by status transitions and never
// cleared, so a re-read keeps the original interval (ReadingSession rows
// carry re-read history).
type UserBook struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       string     `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_user_book"`
	BookID       int64      `json:"book_id" gorm:"not null;index;uniqueIndex:idx_user_book"`
	Status       string     `json:"status" gorm:"size:10;not null;default:tbr"`
	DateAdded    time.Time  `json:"date_added" gorm:"autoCreateTime"`
	DateStarted  *time.Time `json:"date_started,omitempty"`
	DateFinished *time.Time `json:"date_finished,omitempty"`
	CurrentPage  int        `json:"current_page" gorm:"default:0"`
	Notes        *string    `json:"notes,omitempty" gorm:"type:text"`

	// Associations
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID"`
}

func (UserBook) TableName() string {
	return "user_books"
}

// ProgressPercentage is CurrentPage against the book's page count, capped at 100.
func (ub *UserBook) ProgressPercentage() float64 {
	if ub.Book == nil || ub.Book.Pages == nil || *ub.Book.Pages <= 0 || ub.CurrentPage <= 0 {
		return 0
	}
	pct := float64(ub.CurrentPage) / float64(*ub.Book.Pages) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
