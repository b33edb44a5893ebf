package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/screenlog/movie-catalog-api/internal/application"
	handlers "github.com/screenlog/movie-catalog-api/internal/interface/http"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
)

// CommentModule wires comment routes.
// Public: GET /api/comments/:movie_id
// Protected: POST /api/comments, POST /api/comments/nested
type CommentModule struct {
	Handler *handlers.CommentHandler
	Auth    *application.AuthService
	Rdb     *redis.Client
}

func NewCommentModule(h *handlers.CommentHandler, auth *application.AuthService, rdb *redis.Client) *CommentModule {
	return &CommentModule{Handler: h, Auth: auth, Rdb: rdb}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(m.Rdb, 20, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/comments/:movie_id", listLimiter, m.Handler.ListByMovie)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Auth))
	auth.Use(middleware.RateLimit(m.Rdb, 10, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/comments", m.Handler.Create)
		auth.POST("/comments/nested", m.Handler.CreateNested)
	}
}
