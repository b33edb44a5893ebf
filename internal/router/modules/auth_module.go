package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/screenlog/movie-catalog-api/internal/application"
	handlers "github.com/screenlog/movie-catalog-api/internal/interface/http"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
)

// AuthModule wires registration, login and email verification routes.
// All of its routes are public.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    *application.AuthService
	Rdb     *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, auth *application.AuthService, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth, Rdb: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Rdb, 3, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(m.Rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resendLimiter := middleware.RateLimit(m.Rdb, 3, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/login/token", m.Handler.LoginToken)
	rg.GET("/auth/verify-email", verifyLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/resend-verification", resendLimiter, m.Handler.ResendVerification)
}
