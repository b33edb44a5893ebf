package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
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

func newMovieTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	movies := memory.NewMovieRepository()
	tm := helpers.NewTokenManager("test-secret", 30*time.Minute)
	authSvc := application.NewAuthService(users, tm, nil, logger, time.Hour)
	movieSvc := application.NewMovieService(movies, logger, nil, "", nil, "")

	authHandler := NewAuthHandler(authSvc, logger)
	movieHandler := NewMovieHandler(movieSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/movies", movieHandler.List)
	api.GET("/movies/:movie_id", movieHandler.Get)

	protected := api.Group("/")
	protected.Use(middleware.Auth(authSvc))
	protected.POST("/movies", movieHandler.Create)
	protected.PUT("/movies/:movie_id", movieHandler.Update)
	protected.DELETE("/movies/:movie_id", movieHandler.Delete)
	return r
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"s3cretpass","first_name":"Test","last_name":"User"}`, email)
	w := doJSON(r, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login",
		fmt.Sprintf(`{"email":%q,"password":"s3cretpass"}`, email), "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.AccessToken)
	return login.Data.AccessToken
}

func createMovie(t *testing.T, r *gin.Engine, token, title, release string) string {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"description":"a description","duration":120,"release_date":%q}`, title, release)
	w := doJSON(r, http.MethodPost, "/api/movies", body, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id, _ := created.Data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestMovieCreateAndGet(t *testing.T) {
	r := newMovieTestRouter(t)
	token := registerAndLogin(t, r, "owner@example.com")

	id := createMovie(t, r, token, "Heat", "1995-12-15")

	w := doJSON(r, http.MethodGet, "/api/movies/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Movie retrieved successfully", got.Message)
	assert.Equal(t, "Heat", got.Data["title"])
	assert.Equal(t, "1995-12-15", got.Data["release_date"])

	w = doJSON(r, http.MethodGet, "/api/movies/missing", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Movie not found"}`, w.Body.String())
}

func TestMovieCreateRequiresAuth(t *testing.T) {
	r := newMovieTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/movies",
		`{"title":"Heat","description":"a description","duration":120,"release_date":"1995-12-15"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, w.Body.String())
}

func TestMovieCreateDuplicate(t *testing.T) {
	r := newMovieTestRouter(t)
	token := registerAndLogin(t, r, "owner@example.com")

	createMovie(t, r, token, "Heat", "1995-12-15")

	w := doJSON(r, http.MethodPost, "/api/movies",
		`{"title":"Heat","description":"another description","duration":90,"release_date":"1995-12-15"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Movie with this title and release date already exists"}`, w.Body.String())
}

func TestMovieCreateValidation(t *testing.T) {
	r := newMovieTestRouter(t)
	token := registerAndLogin(t, r, "owner@example.com")

	w := doJSON(r, http.MethodPost, "/api/movies",
		`{"title":"Heat","description":"a description","duration":-5,"release_date":"not-a-date"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "duration")
	assert.Contains(t, body.Fields, "release_date")
}

func TestMovieUpdateAndOwnership(t *testing.T) {
	r := newMovieTestRouter(t)
	owner := registerAndLogin(t, r, "owner@example.com")
	other := registerAndLogin(t, r, "other@example.com")

	id := createMovie(t, r, owner, "Heat", "1995-12-15")

	w := doJSON(r, http.MethodPut, "/api/movies/"+id, `{"description":"remastered"}`, owner)
	require.Equal(t, http.StatusOK, w.Code)
	var updated struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "remastered", updated.Data["description"])

	w = doJSON(r, http.MethodPut, "/api/movies/"+id, `{"description":"hijacked"}`, other)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Movie not found or you are not authorized to update this movie"}`, w.Body.String())
}

func TestMovieDeleteAndOwnership(t *testing.T) {
	r := newMovieTestRouter(t)
	owner := registerAndLogin(t, r, "owner@example.com")
	other := registerAndLogin(t, r, "other@example.com")

	id := createMovie(t, r, owner, "Heat", "1995-12-15")

	w := doJSON(r, http.MethodDelete, "/api/movies/"+id, "", other)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Movie not found or unauthorized"}`, w.Body.String())

	w = doJSON(r, http.MethodDelete, "/api/movies/"+id, "", owner)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/movies/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMovieListPagination(t *testing.T) {
	r := newMovieTestRouter(t)
	token := registerAndLogin(t, r, "owner@example.com")

	createMovie(t, r, token, "Heat", "1995-12-15")
	createMovie(t, r, token, "Ronin", "1998-09-25")

	w := doJSON(r, http.MethodGet, "/api/movies?limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)

	w = doJSON(r, http.MethodGet, "/api/movies?sort_by=bogus", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/movies?skip=-1", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
