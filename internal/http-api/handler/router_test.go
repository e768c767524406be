package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"bookcase/internal/catalog"
	"bookcase/internal/http-api/handler"
	"bookcase/internal/http-api/models"
	"bookcase/internal/http-api/repository"
	"bookcase/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret  = "test-secret-key-at-least-32-chars!!"
	testUserID  = "11111111-1111-1111-1111-111111111111"
	otherUserID = "22222222-2222-2222-2222-222222222222"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSearcher struct {
	results []catalog.SearchResult
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]catalog.SearchResult, error) {
	return s.results, s.err
}

func setupRouter(t *testing.T, searcher catalog.Searcher) *gin.Engine {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Book{},
		&models.UserBook{},
		&models.Rating{},
		&models.ReadingSession{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	txRunner := repository.NewTxRunner(db)
	userBookRepo := repository.NewUserBookRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	if searcher == nil {
		searcher = &stubSearcher{}
	}
	return handler.NewRouter(testSecret, nil, handler.Routers{
		Library: handler.NewLibraryHandler(service.NewLibraryService(txRunner, userBookRepo, sessionRepo)),
		Rating:  handler.NewRatingHandler(service.NewRatingService(ratingRepo, userBookRepo)),
		Stats:   handler.NewStatsHandler(service.NewStatsService(txRunner)),
		Search:  handler.NewSearchHandler(searcher),
	})
}

func authToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, router *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+authToken(t, userID))
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func addBookBody(olid string) map[string]any {
	return map[string]any{
		"book": map[string]any{
			"open_library_id": olid,
			"title":           "Dune",
			"authors":         []string{"Frank Herbert"},
			"pages":           412,
			"subjects":        []string{"Science Fiction"},
		},
	}
}

func addedUserBookID(t *testing.T, rr *httptest.ResponseRecorder) int64 {
	t.Helper()
	var resp struct {
		UserBook struct {
			ID int64 `json:"id"`
		} `json:"user_book"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotZero(t, resp.UserBook.ID)
	return resp.UserBook.ID
}

func TestRouter_Healthz_Open(t *testing.T) {
	router := setupRouter(t, nil)
	rr := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_RequiresAuth(t *testing.T) {
	router := setupRouter(t, nil)
	for _, path := range []string{"/api/library", "/api/stats/dashboard", "/api/books/search?q=dune"} {
		rr := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestRouter_LibraryFlow(t *testing.T) {
	router := setupRouter(t, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/library", testUserID, addBookBody("OL1W"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	ubID := addedUserBookID(t, rr)

	// The same book again is a conflict.
	rr = doJSON(t, router, http.MethodPost, "/api/library", testUserID, addBookBody("OL1W"))
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/library/%d/status", ubID), testUserID,
		map[string]any{"status": "reading"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/library/%d/progress", ubID), testUserID,
		map[string]any{"current_page": 100})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Past the end of the book.
	rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/library/%d/progress", ubID), testUserID,
		map[string]any{"current_page": 9000})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/library/%d/sessions", ubID), testUserID,
		map[string]any{"start_page": 100, "end_page": 150, "duration_minutes": 45})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/library/%d/sessions", ubID), testUserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"pages_read":50`)

	rr = doJSON(t, router, http.MethodGet, "/api/library?status=reading", testUserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":1`)
}

func TestRouter_OwnershipAndMissing(t *testing.T) {
	router := setupRouter(t, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/library", testUserID, addBookBody("OL1W"))
	require.Equal(t, http.StatusCreated, rr.Code)
	ubID := addedUserBookID(t, rr)

	rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/library/%d/status", ubID), otherUserID,
		map[string]any{"status": "reading"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSON(t, router, http.MethodPut, "/api/library/9999/status", testUserID,
		map[string]any{"status": "reading"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, router, http.MethodPut, "/api/library/abc/status", testUserID,
		map[string]any{"status": "reading"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Ratings(t *testing.T) {
	router := setupRouter(t, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/library", testUserID, addBookBody("OL1W"))
	require.Equal(t, http.StatusCreated, rr.Code)
	ubID := addedUserBookID(t, rr)

	rr = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/library/%d/ratings", ubID), testUserID,
		map[string]any{"ratings": map[string]float64{"overall": 4.5, "prose": 3.0}, "review": "dense but great"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/library/%d/ratings", ubID), testUserID,
		map[string]any{"ratings": map[string]float64{"overall": 4.7}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/library/%d/ratings", ubID), testUserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"overall"`)
	assert.Contains(t, rr.Body.String(), "dense but great")
}

func TestRouter_Stats(t *testing.T) {
	router := setupRouter(t, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/library", testUserID, addBookBody("OL1W"))
	require.Equal(t, http.StatusCreated, rr.Code)
	ubID := addedUserBookID(t, rr)
	rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/library/%d/status", ubID), testUserID,
		map[string]any{"status": "finished"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/stats/dashboard", testUserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"books_all_time":1`)

	rr = doJSON(t, router, http.MethodGet, "/api/stats/timeline?days=7", testUserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/stats/timeline?days=500", testUserID, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/stats/genres", testUserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Science Fiction")

	rr = doJSON(t, router, http.MethodGet, "/api/stats/habits", testUserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_Search(t *testing.T) {
	searcher := &stubSearcher{results: []catalog.SearchResult{
		{OpenLibraryID: "OL1W", Title: "Dune", Authors: []string{"Frank Herbert"}},
	}}
	router := setupRouter(t, searcher)

	rr := doJSON(t, router, http.MethodGet, "/api/books/search?q=dune", testUserID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":1`)

	rr = doJSON(t, router, http.MethodGet, "/api/books/search?q=", testUserID, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	searcher.err = context.DeadlineExceeded
	rr = doJSON(t, router, http.MethodGet, "/api/books/search?q=dune", testUserID, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
