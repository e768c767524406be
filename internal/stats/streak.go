package stats

import (
	"sort"
	"time"

	"bookcase/internal/http-api/models"
)

// readingDays collects every calendar day with qualifying activity: a book
// transitioned to finished, or a session that advanced at least one page.
func (s Snapshot) readingDays() []time.Time {
	seen := make(map[time.Time]struct{})
	for _, ub := range s.Books {
		if ub.Status == models.StatusFinished && ub.DateFinished != nil {
			seen[day(*ub.DateFinished)] = struct{}{}
		}
	}
	for _, sess := range s.Sessions {
		if sess.PagesRead() > 0 {
			seen[day(sess.SessionDate)] = struct{}{}
		}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Streaks returns (current, longest) streak lengths in days as of now.
// A streak survives the current day having no activity yet; it breaks once a
// full calendar day passes with nothing read.
func Streaks(s Snapshot, now time.Time) (current, longest int) {
	days := s.readingDays()
	today := day(now)

	// Drop anything after "now"; future-dated rows cannot extend a streak.
	for len(days) > 0 && days[len(days)-1].After(today) {
		days = days[:len(days)-1]
	}
	if len(days) == 0 {
		return 0, 0
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := days[len(days)-1]
	if daysBetween(last, today) > 1 {
		return 0, longest
	}
	// run currently holds the length of the trailing run ending at last.
	current = 1
	for i := len(days) - 1; i > 0; i-- {
		if daysBetween(days[i-1], days[i]) != 1 {
			break
		}
		current++
	}
	return current, longest
}
