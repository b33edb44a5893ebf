package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/screenlog/movie-catalog-api/internal/application"
	handlers "github.com/screenlog/movie-catalog-api/internal/interface/http"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
)

// MovieModule wires the movie catalog routes.
// Public: GET /api/movies, GET /api/movies/search, GET /api/movies/:movie_id
// Protected: POST /api/movies, PUT/DELETE /api/movies/:movie_id,
// POST /api/movies/:movie_id/poster
type MovieModule struct {
	Handler *handlers.MovieHandler
	Auth    *application.AuthService
	Rdb     *redis.Client
}

func NewMovieModule(h *handlers.MovieHandler, auth *application.AuthService, rdb *redis.Client) *MovieModule {
	return &MovieModule{Handler: h, Auth: auth, Rdb: rdb}
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(m.Rdb, 15, time.Minute, middleware.KeyByIPAndPath(), nil)
	getLimiter := middleware.RateLimit(m.Rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	searchLimiter := middleware.RateLimit(m.Rdb, 15, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/movies", listLimiter, m.Handler.List)
	rg.GET("/movies/search", searchLimiter, m.Handler.Search)
	rg.GET("/movies/:movie_id", getLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Auth))
	auth.Use(middleware.RateLimit(m.Rdb, 5, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/movies", m.Handler.Create)
		auth.PUT("/movies/:movie_id", m.Handler.Update)
		auth.DELETE("/movies/:movie_id", m.Handler.Delete)
		auth.POST("/movies/:movie_id/poster", m.Handler.UploadPoster)
	}
}
