package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenlog/movie-catalog-api/internal/application"
	"github.com/screenlog/movie-catalog-api/internal/infrastructure/memory"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
	"github.com/screenlog/movie-catalog-api/pkg/helpers"
	"github.com/screenlog/movie-catalog-api/pkg/validation"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	tm := helpers.NewTokenManager("test-secret", 30*time.Minute)
	authSvc := application.NewAuthService(users, tm, nil, logger, time.Hour)

	authHandler := NewAuthHandler(authSvc, logger)
	userHandler := NewUserHandler(logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/login/token", authHandler.LoginToken)

	protected := api.Group("/")
	protected.Use(middleware.Auth(authSvc))
	protected.GET("/users/me", userHandler.Me)
	return r
}

func doJSON(r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r := newTestRouter(t)

	// register
	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"s3cretpass","first_name":"Alice","last_name":"Smith"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Success    bool           `json:"success"`
		StatusCode int            `json:"status_code"`
		Message    string         `json:"message"`
		Data       map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.True(t, reg.Success)
	assert.Equal(t, http.StatusCreated, reg.StatusCode)
	assert.Equal(t, "User registered successfully. Please check your email for verification link.", reg.Message)
	assert.Equal(t, "alice@example.com", reg.Data["email"])
	assert.Equal(t, false, reg.Data["is_verified"])
	assert.NotContains(t, reg.Data, "hashed_password")
	assert.NotContains(t, reg.Data, "verification_token")

	// duplicate register
	w = doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"s3cretpass","first_name":"Alice","last_name":"Smith"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Email already registered"}`, w.Body.String())

	// login
	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"s3cretpass"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Message string `json:"message"`
		Data    struct {
			User        map[string]any `json:"user"`
			AccessToken string         `json:"access_token"`
			TokenType   string         `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Login successful", login.Message)
	assert.Equal(t, "bearer", login.Data.TokenType)
	require.NotEmpty(t, login.Data.AccessToken)
	assert.Equal(t, "alice@example.com", login.Data.User["email"])

	// authenticated /users/me
	w = doJSON(r, http.MethodGet, "/api/users/me", "", login.Data.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me.Data["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"s3cretpass","first_name":"Alice","last_name":"Smith"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrongpass1"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Incorrect email or password"}`, w.Body.String())
}

func TestLoginTokenFormEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"s3cretpass","first_name":"Alice","last_name":"Smith"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	form := "username=alice%40example.com&password=s3cretpass"
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/token", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// bare token body, no envelope
	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
	assert.NotContains(t, rec.Body.String(), "status_code")
}

func TestProtectedRouteAuthErrors(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/users/me", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/users/me", "", "garbage-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, w.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"email":"not-an-email","password":"short","first_name":"","last_name":"Smith"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid payload", body.Detail)
	assert.Contains(t, body.Fields, "email")
	assert.Contains(t, body.Fields, "password")
	assert.Contains(t, body.Fields, "first_name")
}
