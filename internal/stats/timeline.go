package stats

import (
	"time"

	"bookcase/internal/http-api/models"
)

// TimelinePoint is one calendar day of reading activity.
type TimelinePoint struct {
	Date          string `json:"date"`
	PagesRead     int    `json:"pages_read"`
	BooksFinished int    `json:"books_finished"`
	BooksStarted  int    `json:"books_started"`
}

// Timeline returns one point per calendar day in [now-windowDays, now]
// inclusive, ascending, with days of no activity zero-filled.
func Timeline(s Snapshot, windowDays int, now time.Time) []TimelinePoint {
	if windowDays < 0 {
		windowDays = 0
	}
	end := day(now)
	start := end.AddDate(0, 0, -windowDays)

	points := make([]TimelinePoint, 0, windowDays+1)
	index := make(map[time.Time]int, windowDays+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		index[d] = len(points)
		points = append(points, TimelinePoint{Date: d.Format("2006-01-02")})
	}

	for _, sess := range s.Sessions {
		if i, ok := index[day(sess.SessionDate)]; ok {
			points[i].PagesRead += sess.PagesRead()
		}
	}
	for _, ub := range s.Books {
		if ub.Status == models.StatusFinished && ub.DateFinished != nil {
			if i, ok := index[day(*ub.DateFinished)]; ok {
				points[i].BooksFinished++
			}
		}
		if ub.DateStarted != nil {
			if i, ok := index[day(*ub.DateStarted)]; ok {
				points[i].BooksStarted++
			}
		}
	}
	return points
}
