// Package catalog talks to the external book catalog (Open Library). Results
// are metadata candidates only; nothing is persisted until the user adds a
// book to their library.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://openlibrary.org"

	// Open Library asks clients to keep it polite.
	rateLimit = 2
	rateBurst = 4

	searchLimit = 20
	maxSubjects = 5
)

// SearchResult is one catalog hit, shaped for the add-book flow.
type SearchResult struct {
	OpenLibraryID    string   `json:"open_library_id"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
	Pages            *int     `json:"pages,omitempty"`
	Subjects         []string `json:"subjects"`
	ISBN             *string  `json:"isbn,omitempty"`
	CoverURL         *string  `json:"cover_url,omitempty"`
}

// Searcher is the catalog contract the HTTP layer consumes.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Client queries the Open Library search API with rate limiting.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type searchResponse struct {
	Docs []struct {
		Key                 string   `json:"key"`
		Title               string   `json:"title"`
		AuthorName          []string `json:"author_name"`
		FirstPublishYear    *int     `json:"first_publish_year"`
		NumberOfPagesMedian *int     `json:"number_of_pages_median"`
		Subject             []string `json:"subject"`
		ISBN                []string `json:"isbn"`
		CoverI              *int     `json:"cover_i"`
	} `json:"docs"`
	NumFound int `json:"numFound"`
}

// Search runs a full-text search and maps the docs to SearchResults.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprint(searchLimit))
	params.Set("fields", "key,title,author_name,first_publish_year,isbn,number_of_pages_median,subject,cover_i")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "bookcase/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("open library HTTP %d: %s", resp.StatusCode, body)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	results := make([]SearchResult, 0, len(parsed.Docs))
	for _, doc := range parsed.Docs {
		r := SearchResult{
			OpenLibraryID:    trimWorksPrefix(doc.Key),
			Title:            doc.Title,
			Authors:          doc.AuthorName,
			FirstPublishYear: doc.FirstPublishYear,
			Pages:            doc.NumberOfPagesMedian,
			Subjects:         doc.Subject,
		}
		if r.Title == "" {
			r.Title = "Unknown Title"
		}
		if len(r.Subjects) > maxSubjects {
			r.Subjects = r.Subjects[:maxSubjects]
		}
		if len(doc.ISBN) > 0 {
			isbn := doc.ISBN[0]
			r.ISBN = &isbn
		}
		if doc.CoverI != nil {
			cover := fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", *doc.CoverI)
			r.CoverURL = &cover
		}
		results = append(results, r)
	}
	return results, nil
}

func trimWorksPrefix(key string) string {
	const prefix = "/works/"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}
