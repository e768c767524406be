package models

import "time"

// ReadingSession is one sitting with a book. Sessions give the analytics
// engine day-level page granularity for timelines, streaks and habit stats.
type ReadingSession struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          string    `json:"user_id" gorm:"type:uuid;not null;index"`
	BookID          int64     `json:"book_id" gorm:"not null;index"`
	StartPage       int       `json:"start_page" gorm:"not null"`
	EndPage         int       `json:"end_page" gorm:"not null"`
	SessionDate     time.Time `json:"session_date" gorm:"not null;index"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Notes           *string   `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}

// PagesRead is the page delta of the session, never negative.
func (s *ReadingSession) PagesRead() int {
	if s.EndPage <= s.StartPage {
		return 0
	}
	return s.EndPage - s.StartPage
}
