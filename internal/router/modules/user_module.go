package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/screenlog/movie-catalog-api/internal/application"
	handlers "github.com/screenlog/movie-catalog-api/internal/interface/http"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
)

// UserModule exposes the authenticated user's own profile.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    *application.AuthService
	Rdb     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, auth *application.AuthService, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Rdb: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Auth))
	auth.Use(middleware.RateLimit(m.Rdb, 10, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/users/me", m.Handler.Me)
	}
}
