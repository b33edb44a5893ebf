package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/application"
	"github.com/screenlog/movie-catalog-api/pkg/response"
	"github.com/screenlog/movie-catalog-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusBadRequest, "Email already registered")
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusCreated, "User registered successfully. Please check your email for verification link.", userJSON(u))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	token, err := h.Svc.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Logger.WithError(err).Error("token issuance failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":         userJSON(u),
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
	})
}

// LoginToken is the OAuth2-style form login. Its body is the bare token
// pair, not the standard envelope.
func (h *AuthHandler) LoginToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, "invalid payload", validation.ToDetails(err))
		return
	}
	token, err := h.Svc.IssueToken(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		h.Logger.WithError(err).Error("token issuance failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusBadRequest, "Invalid or expired token")
		return
	}
	_, err := h.Svc.VerifyEmail(c.Request.Context(), token)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Email verified successfully", nil)
	case errors.Is(err, application.ErrAlreadyVerified):
		response.Error(c, http.StatusBadRequest, "User email already verified")
	case errors.Is(err, application.ErrTokenExpired):
		response.Error(c, http.StatusBadRequest, "Expired token, please request a new verification email")
	case errors.Is(err, application.ErrInvalidToken):
		response.Error(c, http.StatusBadRequest, "Invalid or expired token")
	default:
		h.Logger.WithError(err).Error("verify email failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.ValidationError(c, "invalid payload", map[string]string{"email": "email is required"})
		return
	}
	_, err := h.Svc.ResendVerification(c.Request.Context(), email)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Verification email resent. Please check your email.", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, application.ErrAlreadyVerified):
		response.Error(c, http.StatusBadRequest, "User already verified")
	default:
		h.Logger.WithError(err).Error("resend verification failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
