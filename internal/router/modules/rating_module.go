package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/screenlog/movie-catalog-api/internal/application"
	handlers "github.com/screenlog/movie-catalog-api/internal/interface/http"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
)

// RatingModule wires movie rating routes.
// Public: GET /api/ratings/:movie_id
// Protected: POST /api/ratings
type RatingModule struct {
	Handler *handlers.RatingHandler
	Auth    *application.AuthService
	Rdb     *redis.Client
}

func NewRatingModule(h *handlers.RatingHandler, auth *application.AuthService, rdb *redis.Client) *RatingModule {
	return &RatingModule{Handler: h, Auth: auth, Rdb: rdb}
}

func (m *RatingModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(m.Rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/ratings/:movie_id", listLimiter, m.Handler.ListByMovie)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Auth))
	auth.Use(middleware.RateLimit(m.Rdb, 5, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/ratings", m.Handler.Create)
	}
}
