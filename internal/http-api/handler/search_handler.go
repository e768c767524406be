package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookcase/internal/catalog"
	"bookcase/internal/http-api/middleware"

	"github.com/gin-gonic/gin"
)

// searchTimeout is longer than the store timeout; the catalog is an external
// service with its own latency.
const searchTimeout = 15 * time.Second

type SearchHandler struct {
	searcher catalog.Searcher
}

func NewSearchHandler(searcher catalog.Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
}

// Search proxies a catalog query; nothing is persisted until add-book.
func (h *SearchHandler) Search(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
	defer cancel()

	results, err := h.searcher.Search(ctx, query)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to search books, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": results, "total": len(results)})
}
