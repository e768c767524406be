// Package stats derives reading analytics from one user's library, ratings
// and reading sessions. Every function is a pure computation over a Snapshot:
// same input, same output, no store access and no mutation. Missing or empty
// data degrades to zero values, never to an error, so the dashboard always
// has something to render.
package stats

import (
	"math"
	"strconv"
	"time"

	"bookcase/internal/http-api/models"
)

// Snapshot is one user's rows as loaded for a single analytics read.
// Books are expected to have their Book association populated.
type Snapshot struct {
	Books    []models.UserBook
	Ratings  []models.Rating
	Sessions []models.ReadingSession
}

// day truncates t to its calendar day.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween is the whole-day distance from a to b (a <= b).
func daysBetween(a, b time.Time) int {
	return int(day(b).Sub(day(a)).Hours() / 24)
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatLevel renders a half-star level as its histogram key ("0.5" ... "5.0").
func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// finishedBooks filters the snapshot to finished entries.
func (s Snapshot) finishedBooks() []models.UserBook {
	out := make([]models.UserBook, 0, len(s.Books))
	for _, ub := range s.Books {
		if ub.Status == models.StatusFinished {
			out = append(out, ub)
		}
	}
	return out
}

// overallRatings filters the snapshot to overall-category ratings.
func (s Snapshot) overallRatings() []models.Rating {
	out := make([]models.Rating, 0, len(s.Ratings))
	for _, r := range s.Ratings {
		if r.Category == models.CategoryOverall {
			out = append(out, r)
		}
	}
	return out
}

// overallByBook indexes overall ratings by book ID.
func (s Snapshot) overallByBook() map[int64]float64 {
	idx := make(map[int64]float64)
	for _, r := range s.Ratings {
		if r.Category == models.CategoryOverall {
			idx[r.BookID] = r.Value
		}
	}
	return idx
}

func bookPages(ub models.UserBook) int {
	if ub.Book == nil || ub.Book.Pages == nil {
		return 0
	}
	return *ub.Book.Pages
}
