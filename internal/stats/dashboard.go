package stats

import (
	"strconv"
	"time"

	"bookcase/internal/http-api/models"
)

// DashboardStats is the full dashboard payload.
type DashboardStats struct {
	BooksLast7Days  int `json:"books_last_7_days"`
	BooksLast14Days int `json:"books_last_14_days"`
	BooksLast30Days int `json:"books_last_30_days"`
	BooksLast60Days int `json:"books_last_60_days"`
	BooksLast90Days int `json:"books_last_90_days"`
	BooksThisYear   int `json:"books_this_year"`
	BooksAllTime    int `json:"books_all_time"`

	MonthlyBooks map[string]int `json:"monthly_books"`

	PagesLast30Days int `json:"pages_last_30_days"`
	PagesLast60Days int `json:"pages_last_60_days"`
	PagesLast90Days int `json:"pages_last_90_days"`
	PagesThisYear   int `json:"pages_this_year"`
	PagesAllTime    int `json:"pages_all_time"`

	AvgPagesPerBook  float64 `json:"avg_pages_per_book"`
	AvgBooksPerMonth float64 `json:"avg_books_per_month"`
	AvgPagesPerDay   float64 `json:"avg_pages_per_day"`

	CurrentStreakDays int `json:"current_streak_days"`
	LongestStreakDays int `json:"longest_streak_days"`

	CurrentlyReading int `json:"currently_reading"`
	TBRBooks         int `json:"tbr_books"`

	AvgRating          float64        `json:"avg_rating"`
	TotalRatings       int            `json:"total_ratings"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

// Dashboard computes the dashboard summary for one user's snapshot as of now.
func Dashboard(s Snapshot, now time.Time) DashboardStats {
	today := day(now)
	startOfYear := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	finished := s.finishedBooks()

	countSince := func(since time.Time) int {
		n := 0
		for _, ub := range finished {
			if ub.DateFinished != nil && !day(*ub.DateFinished).Before(since) {
				n++
			}
		}
		return n
	}
	pagesSince := func(since time.Time) int {
		total := 0
		for _, ub := range finished {
			if ub.DateFinished != nil && !day(*ub.DateFinished).Before(since) {
				total += bookPages(ub)
			}
		}
		return total
	}

	out := DashboardStats{
		BooksLast7Days:  countSince(today.AddDate(0, 0, -7)),
		BooksLast14Days: countSince(today.AddDate(0, 0, -14)),
		BooksLast30Days: countSince(today.AddDate(0, 0, -30)),
		BooksLast60Days: countSince(today.AddDate(0, 0, -60)),
		BooksLast90Days: countSince(today.AddDate(0, 0, -90)),
		BooksThisYear:   countSince(startOfYear),
		BooksAllTime:    len(finished),
		PagesLast30Days: pagesSince(today.AddDate(0, 0, -30)),
		PagesLast60Days: pagesSince(today.AddDate(0, 0, -60)),
		PagesLast90Days: pagesSince(today.AddDate(0, 0, -90)),
		PagesThisYear:   pagesSince(startOfYear),
	}

	// All-time pages and per-book average.
	totalPages := 0
	for _, ub := range finished {
		totalPages += bookPages(ub)
	}
	out.PagesAllTime = totalPages
	if len(finished) > 0 {
		out.AvgPagesPerBook = round1(float64(totalPages) / float64(len(finished)))
	}

	// Monthly finished counts, twelve buckets for the current calendar year.
	monthly := make(map[string]int, 12)
	for m := 1; m <= 12; m++ {
		monthly[monthKey(m)] = 0
	}
	for _, ub := range finished {
		if ub.DateFinished == nil {
			continue
		}
		d := day(*ub.DateFinished)
		if d.Year() == today.Year() {
			monthly[monthKey(int(d.Month()))]++
		}
	}
	out.MonthlyBooks = monthly

	// Books per month since the earliest finish.
	if len(finished) > 0 {
		var earliest *time.Time
		for i := range finished {
			if finished[i].DateFinished == nil {
				continue
			}
			if earliest == nil || finished[i].DateFinished.Before(*earliest) {
				earliest = finished[i].DateFinished
			}
		}
		if earliest != nil {
			months := (today.Year()-earliest.Year())*12 + int(today.Month()) - int(earliest.Month())
			if months < 1 {
				months = 1
			}
			out.AvgBooksPerMonth = round1(float64(len(finished)) / float64(months))
		}
	}
	out.AvgPagesPerDay = round1(float64(out.PagesLast30Days) / 30)

	out.CurrentStreakDays, out.LongestStreakDays = Streaks(s, now)

	for _, ub := range s.Books {
		switch ub.Status {
		case models.StatusReading:
			out.CurrentlyReading++
		case models.StatusTBR:
			out.TBRBooks++
		}
	}

	// Overall-rating statistics and the half-star histogram.
	overall := s.overallRatings()
	dist := make(map[string]int, 10)
	for v := 0.5; v <= 5.0; v += 0.5 {
		dist[formatLevel(v)] = 0
	}
	sum := 0.0
	for _, r := range overall {
		sum += r.Value
		dist[formatLevel(r.Value)]++
	}
	out.TotalRatings = len(overall)
	if len(overall) > 0 {
		out.AvgRating = round1(sum / float64(len(overall)))
	}
	out.RatingDistribution = dist

	return out
}

func monthKey(m int) string {
	return strconv.Itoa(m)
}
