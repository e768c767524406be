package stats

import (
	"testing"
	"time"

	"bookcase/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func bookWith(id int64, pages int, genres ...string) *models.Book {
	return &models.Book{ID: id, Title: "Book", Pages: intPtr(pages), Genres: genres}
}

func TestDashboard_AverageRating(t *testing.T) {
	snap := Snapshot{
		Ratings: []models.Rating{
			{BookID: 1, Category: models.CategoryOverall, Value: 4.0},
			{BookID: 2, Category: models.CategoryOverall, Value: 5.0},
			{BookID: 3, Category: models.CategoryOverall, Value: 3.5},
			// Non-overall categories never enter the average.
			{BookID: 1, Category: models.CategoryPlot, Value: 1.0},
		},
	}
	d := Dashboard(snap, time.Now())
	assert.Equal(t, 4.2, d.AvgRating)
	assert.Equal(t, 3, d.TotalRatings)
	assert.Equal(t, 1, d.RatingDistribution["4.0"])
	assert.Equal(t, 1, d.RatingDistribution["5.0"])
	assert.Equal(t, 1, d.RatingDistribution["3.5"])
	assert.Equal(t, 0, d.RatingDistribution["0.5"])
}

func TestDashboard_EmptySnapshot(t *testing.T) {
	d := Dashboard(Snapshot{}, time.Now())
	assert.Zero(t, d.AvgRating)
	assert.Zero(t, d.TotalRatings)
	assert.Zero(t, d.BooksAllTime)
	assert.Zero(t, d.CurrentStreakDays)
	require.Len(t, d.RatingDistribution, 10)
	require.Len(t, d.MonthlyBooks, 12)
}

func TestDashboard_WindowedCounts(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Books: []models.UserBook{
			{BookID: 1, Status: models.StatusFinished, DateFinished: datePtr(2024, time.June, 12), Book: bookWith(1, 300)},
			{BookID: 2, Status: models.StatusFinished, DateFinished: datePtr(2024, time.May, 1), Book: bookWith(2, 200)},
			{BookID: 3, Status: models.StatusFinished, DateFinished: datePtr(2023, time.December, 20), Book: bookWith(3, 100)},
			{BookID: 4, Status: models.StatusReading, Book: bookWith(4, 400)},
			{BookID: 5, Status: models.StatusTBR, Book: bookWith(5, 150)},
		},
	}

	d := Dashboard(snap, now)
	assert.Equal(t, 1, d.BooksLast7Days)
	assert.Equal(t, 1, d.BooksLast30Days)
	assert.Equal(t, 2, d.BooksLast60Days)
	assert.Equal(t, 2, d.BooksThisYear)
	assert.Equal(t, 3, d.BooksAllTime)

	assert.Equal(t, 300, d.PagesLast30Days)
	assert.Equal(t, 500, d.PagesThisYear)
	assert.Equal(t, 600, d.PagesAllTime)
	assert.Equal(t, 200.0, d.AvgPagesPerBook)

	assert.Equal(t, 1, d.CurrentlyReading)
	assert.Equal(t, 1, d.TBRBooks)

	// Monthly buckets reflect the current calendar year only.
	assert.Equal(t, 1, d.MonthlyBooks["6"])
	assert.Equal(t, 1, d.MonthlyBooks["5"])
	assert.Equal(t, 0, d.MonthlyBooks["12"])
}

func TestDashboard_UnfinishedBooksDoNotCount(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Books: []models.UserBook{
			// A DNF sets DateFinished but is not a finished book.
			{BookID: 1, Status: models.StatusDNF, DateFinished: datePtr(2024, time.June, 10), Book: bookWith(1, 500)},
		},
	}
	d := Dashboard(snap, now)
	assert.Zero(t, d.BooksAllTime)
	assert.Zero(t, d.PagesAllTime)
}

func TestDashboard_Deterministic(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Books: []models.UserBook{
			{BookID: 1, Status: models.StatusFinished, DateFinished: datePtr(2024, time.June, 1), Book: bookWith(1, 320)},
		},
		Ratings: []models.Rating{
			{BookID: 1, Category: models.CategoryOverall, Value: 4.5},
		},
	}
	first := Dashboard(snap, now)
	second := Dashboard(snap, now)
	assert.Equal(t, first, second)
}
