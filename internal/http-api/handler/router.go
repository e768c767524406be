package handler

import (
	"net/http"

	"bookcase/internal/http-api/middleware"

	"github.com/gin-gonic/gin"
)

// Routers groups the handlers the API mounts.
type Routers struct {
	Library *LibraryHandler
	Rating  *RatingHandler
	Stats   *StatsHandler
	Search  *SearchHandler
}

// NewRouter assembles the gin engine: health check open, everything else
// behind the identity middleware.
func NewRouter(jwtSecret string, corsOrigins []string, r Routers) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(corsOrigins))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(middleware.Identity(jwtSecret))

	r.Search.RegisterRoutes(api.Group("/books"))

	library := api.Group("/library")
	r.Library.RegisterRoutes(library)
	r.Rating.RegisterRoutes(library)

	r.Stats.RegisterRoutes(api.Group("/stats"))

	return engine
}
