package stats

import (
	"sort"
	"time"
)

// WeekdayPages is total pages read on one day of the week.
type WeekdayPages struct {
	Day   string `json:"day"`
	Pages int    `json:"pages"`
}

// AuthorCount is finished-book count for one author.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// GenreCount is finished-book count for one genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// BookPages pairs a title with its page count.
type BookPages struct {
	Title string `json:"title"`
	Pages int    `json:"pages"`
}

// HabitStats is the reading-habits payload.
type HabitStats struct {
	AvgPagesPerDay     float64        `json:"avg_pages_per_day"`
	AvgPagesPerSession float64        `json:"avg_pages_per_session"`
	AvgSessionDuration float64        `json:"avg_session_duration"`
	MostProductiveDays []WeekdayPages `json:"most_productive_days"`
	FavoriteAuthors    []AuthorCount  `json:"favorite_authors"`
	FavoriteGenres     []GenreCount   `json:"favorite_genres"`
	LongestBooks       []BookPages    `json:"longest_books"`
	ShortestBooks      []BookPages    `json:"shortest_books"`
}

const (
	topWeekdays = 3
	topAuthors  = 5
	topGenres   = 5
	topBooks    = 3
)

// Habits analyses session cadence and finished-book preferences as of now.
func Habits(s Snapshot, now time.Time) HabitStats {
	out := HabitStats{
		MostProductiveDays: []WeekdayPages{},
		FavoriteAuthors:    []AuthorCount{},
		FavoriteGenres:     []GenreCount{},
		LongestBooks:       []BookPages{},
		ShortestBooks:      []BookPages{},
	}

	// Session cadence.
	if len(s.Sessions) > 0 {
		totalPages, totalDuration, withDuration := 0, 0, 0
		for _, sess := range s.Sessions {
			totalPages += sess.PagesRead()
			if sess.DurationMinutes != nil {
				totalDuration += *sess.DurationMinutes
				withDuration++
			}
		}
		out.AvgPagesPerSession = round1(float64(totalPages) / float64(len(s.Sessions)))
		if withDuration > 0 {
			out.AvgSessionDuration = round1(float64(totalDuration) / float64(withDuration))
		}
	}

	// Pages per day over the trailing 30 days of sessions.
	cutoff := day(now).AddDate(0, 0, -30)
	recentPages := 0
	for _, sess := range s.Sessions {
		if !day(sess.SessionDate).Before(cutoff) {
			recentPages += sess.PagesRead()
		}
	}
	out.AvgPagesPerDay = round1(float64(recentPages) / 30)
	if len(s.Sessions) == 0 {
		// Without session granularity both averages collapse to the same figure.
		out.AvgPagesPerSession = out.AvgPagesPerDay
	}

	// Weekday productivity.
	weekdayPages := make(map[time.Weekday]int)
	for _, sess := range s.Sessions {
		weekdayPages[sess.SessionDate.Weekday()] += sess.PagesRead()
	}
	weekdays := make([]WeekdayPages, 0, len(weekdayPages))
	order := make(map[string]int, len(weekdayPages))
	for wd, pages := range weekdayPages {
		weekdays = append(weekdays, WeekdayPages{Day: wd.String(), Pages: pages})
		order[wd.String()] = int(wd)
	}
	sort.Slice(weekdays, func(i, j int) bool {
		if weekdays[i].Pages != weekdays[j].Pages {
			return weekdays[i].Pages > weekdays[j].Pages
		}
		return order[weekdays[i].Day] < order[weekdays[j].Day]
	})
	if len(weekdays) > topWeekdays {
		weekdays = weekdays[:topWeekdays]
	}
	out.MostProductiveDays = weekdays

	// Finished-book preferences.
	finished := s.finishedBooks()
	authorCounts := make(map[string]int)
	genreCounts := make(map[string]int)
	var withPages []BookPages
	for _, ub := range finished {
		if ub.Book == nil {
			continue
		}
		for _, author := range ub.Book.Authors {
			authorCounts[author]++
		}
		for _, genre := range ub.Book.Genres {
			genreCounts[genre]++
		}
		if pages := bookPages(ub); pages > 0 {
			withPages = append(withPages, BookPages{Title: ub.Book.Title, Pages: pages})
		}
	}

	authors := make([]AuthorCount, 0, len(authorCounts))
	for author, count := range authorCounts {
		authors = append(authors, AuthorCount{Author: author, Count: count})
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Count != authors[j].Count {
			return authors[i].Count > authors[j].Count
		}
		return authors[i].Author < authors[j].Author
	})
	if len(authors) > topAuthors {
		authors = authors[:topAuthors]
	}
	out.FavoriteAuthors = authors

	genres := make([]GenreCount, 0, len(genreCounts))
	for genre, count := range genreCounts {
		genres = append(genres, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Count != genres[j].Count {
			return genres[i].Count > genres[j].Count
		}
		return genres[i].Genre < genres[j].Genre
	})
	if len(genres) > topGenres {
		genres = genres[:topGenres]
	}
	out.FavoriteGenres = genres

	longest := make([]BookPages, len(withPages))
	copy(longest, withPages)
	sort.Slice(longest, func(i, j int) bool {
		if longest[i].Pages != longest[j].Pages {
			return longest[i].Pages > longest[j].Pages
		}
		return longest[i].Title < longest[j].Title
	})
	if len(longest) > topBooks {
		longest = longest[:topBooks]
	}
	out.LongestBooks = longest

	shortest := make([]BookPages, len(withPages))
	copy(shortest, withPages)
	sort.Slice(shortest, func(i, j int) bool {
		if shortest[i].Pages != shortest[j].Pages {
			return shortest[i].Pages < shortest[j].Pages
		}
		return shortest[i].Title < shortest[j].Title
	})
	if len(shortest) > topBooks {
		shortest = shortest[:topBooks]
	}
	out.ShortestBooks = shortest

	return out
}
