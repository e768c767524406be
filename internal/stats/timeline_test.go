package stats

import (
	"testing"
	"time"

	"bookcase/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_InclusiveWindowWithZeroFill(t *testing.T) {
	now := time.Date(2024, time.April, 30, 15, 0, 0, 0, time.UTC)
	points := Timeline(Snapshot{}, 30, now)

	require.Len(t, points, 31)
	seen := make(map[string]bool, len(points))
	for i, p := range points {
		assert.False(t, seen[p.Date], "duplicate date %s", p.Date)
		seen[p.Date] = true
		assert.Zero(t, p.PagesRead)
		assert.Zero(t, p.BooksFinished)
		assert.Zero(t, p.BooksStarted)
		if i > 0 {
			assert.Less(t, points[i-1].Date, p.Date)
		}
	}
	assert.Equal(t, "2024-03-31", points[0].Date)
	assert.Equal(t, "2024-04-30", points[30].Date)
}

func TestTimeline_Activity(t *testing.T) {
	now := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Books: []models.UserBook{
			{
				Status:       models.StatusFinished,
				DateStarted:  datePtr(2024, time.April, 5),
				DateFinished: datePtr(2024, time.April, 8),
			},
			{
				Status:      models.StatusReading,
				DateStarted: datePtr(2024, time.April, 8),
			},
		},
		Sessions: []models.ReadingSession{
			{StartPage: 0, EndPage: 40, SessionDate: time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC)},
			{StartPage: 40, EndPage: 55, SessionDate: time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC)},
			// Outside the window.
			{StartPage: 0, EndPage: 99, SessionDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	points := Timeline(snap, 7, now)
	require.Len(t, points, 8)

	byDate := make(map[string]TimelinePoint)
	for _, p := range points {
		byDate[p.Date] = p
	}
	assert.Equal(t, 55, byDate["2024-04-08"].PagesRead)
	assert.Equal(t, 1, byDate["2024-04-08"].BooksFinished)
	assert.Equal(t, 1, byDate["2024-04-08"].BooksStarted)
	assert.Equal(t, 1, byDate["2024-04-05"].BooksStarted)
	assert.Zero(t, byDate["2024-04-06"].PagesRead)
}

func TestTimeline_ZeroWindow(t *testing.T) {
	now := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)
	points := Timeline(Snapshot{}, 0, now)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-04-10", points[0].Date)
}
