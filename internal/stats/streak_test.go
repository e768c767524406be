package stats

import (
	"testing"
	"time"

	"bookcase/internal/http-api/models"

	"github.com/stretchr/testify/assert"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func finishedOn(y int, m time.Month, d int) models.UserBook {
	return models.UserBook{
		Status:       models.StatusFinished,
		DateFinished: datePtr(y, m, d),
	}
}

func TestStreaks_ConsecutiveFinishes(t *testing.T) {
	snap := Snapshot{
		Books: []models.UserBook{
			finishedOn(2024, time.January, 1),
			finishedOn(2024, time.January, 2),
			finishedOn(2024, time.January, 3),
			finishedOn(2024, time.January, 10),
		},
	}

	current, longest := Streaks(snap, time.Date(2024, time.January, 3, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, longest)

	current, longest = Streaks(snap, time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, current)
	assert.Equal(t, 3, longest)
}

func TestStreaks_SurvivesQuietToday(t *testing.T) {
	snap := Snapshot{
		Books: []models.UserBook{
			finishedOn(2024, time.March, 4),
			finishedOn(2024, time.March, 5),
		},
	}

	// Nothing read yet on the 6th; the streak holds until a full day lapses.
	current, longest := Streaks(snap, time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)

	// By the 7th a whole empty day has passed.
	current, longest = Streaks(snap, time.Date(2024, time.March, 7, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, current)
	assert.Equal(t, 2, longest)
}

func TestStreaks_SessionsCount(t *testing.T) {
	snap := Snapshot{
		Sessions: []models.ReadingSession{
			{StartPage: 0, EndPage: 20, SessionDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
			{StartPage: 20, EndPage: 45, SessionDate: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)},
			// A zero-page session does not qualify as a reading day.
			{StartPage: 45, EndPage: 45, SessionDate: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)},
		},
	}

	current, longest := Streaks(snap, time.Date(2024, time.May, 2, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)

	current, _ = Streaks(snap, time.Date(2024, time.May, 4, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, current)
}

func TestStreaks_Empty(t *testing.T) {
	current, longest := Streaks(Snapshot{}, time.Now())
	assert.Zero(t, current)
	assert.Zero(t, longest)
}

func TestStreaks_DuplicateDaysCollapse(t *testing.T) {
	snap := Snapshot{
		Books: []models.UserBook{
			finishedOn(2024, time.June, 1),
			finishedOn(2024, time.June, 1),
			finishedOn(2024, time.June, 2),
		},
		Sessions: []models.ReadingSession{
			{StartPage: 0, EndPage: 10, SessionDate: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)},
		},
	}
	current, longest := Streaks(snap, time.Date(2024, time.June, 2, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, longest)
}
