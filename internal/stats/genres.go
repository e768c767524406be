package stats

import "sort"

// GenreStats aggregates one genre across a user's finished books.
type GenreStats struct {
	Genre      string  `json:"genre"`
	BookCount  int     `json:"book_count"`
	TotalPages int     `json:"total_pages"`
	AvgRating  float64 `json:"avg_rating"`
	Percentage float64 `json:"percentage"`
}

// GenreBreakdown aggregates finished books by genre, sorted by book count
// descending with ties broken by genre name.
func GenreBreakdown(s Snapshot) []GenreStats {
	finished := s.finishedBooks()
	overall := s.overallByBook()

	type acc struct {
		count   int
		pages   int
		ratings []float64
	}
	byGenre := make(map[string]*acc)
	for _, ub := range finished {
		if ub.Book == nil {
			continue
		}
		for _, genre := range ub.Book.Genres {
			a := byGenre[genre]
			if a == nil {
				a = &acc{}
				byGenre[genre] = a
			}
			a.count++
			a.pages += bookPages(ub)
			if v, ok := overall[ub.BookID]; ok {
				a.ratings = append(a.ratings, v)
			}
		}
	}

	out := make([]GenreStats, 0, len(byGenre))
	for genre, a := range byGenre {
		gs := GenreStats{
			Genre:      genre,
			BookCount:  a.count,
			TotalPages: a.pages,
		}
		if len(a.ratings) > 0 {
			sum := 0.0
			for _, v := range a.ratings {
				sum += v
			}
			gs.AvgRating = round1(sum / float64(len(a.ratings)))
		}
		if len(finished) > 0 {
			gs.Percentage = round1(float64(a.count) / float64(len(finished)) * 100)
		}
		out = append(out, gs)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].BookCount != out[j].BookCount {
			return out[i].BookCount > out[j].BookCount
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}
