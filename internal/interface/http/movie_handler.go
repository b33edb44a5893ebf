package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/application"
	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
	"github.com/screenlog/movie-catalog-api/pkg/response"
	"github.com/screenlog/movie-catalog-api/pkg/validation"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type MovieHandler struct {
	Svc    *application.MovieService
	Logger *logrus.Logger
}

func NewMovieHandler(svc *application.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{Svc: svc, Logger: logger}
}

type movieCreateRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Duration    int    `json:"duration" binding:"required,gt=0"`
	ReleaseDate string `json:"release_date" binding:"required,datetime=2006-01-02"`
	PosterURL   string `json:"poster_url" binding:"omitempty,url"`
}

type movieUpdateRequest struct {
	Description *string `json:"description" binding:"omitempty"`
	PosterURL   *string `json:"poster_url" binding:"omitempty,url"`
}

// parsePage reads skip/limit query params, defaulting and capping limit.
func parsePage(c *gin.Context) (skip, limit int, ok bool) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		response.ValidationError(c, "invalid payload", map[string]string{"skip": "skip must be a non-negative integer"})
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		response.ValidationError(c, "invalid payload", map[string]string{"limit": "limit must be a positive integer"})
		return 0, 0, false
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit, true
}

func (h *MovieHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req movieCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", validation.ToDetails(err))
		return
	}
	releaseDate, err := parseDate(req.ReleaseDate)
	if err != nil {
		response.ValidationError(c, "invalid payload", map[string]string{"release_date": "release_date must be a valid yyyy-mm-dd date"})
		return
	}
	m := &entity.Movie{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		ReleaseDate: releaseDate,
		PosterURL:   req.PosterURL,
	}
	m, err = h.Svc.Create(c.Request.Context(), m, u.ID)
	if err != nil {
		if errors.Is(err, application.ErrDuplicateMovie) {
			response.Error(c, http.StatusBadRequest, "Movie with this title and release date already exists")
			return
		}
		h.Logger.WithError(err).Error("create movie failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusCreated, "Movie created successfully", movieJSON(m))
}

func (h *MovieHandler) Get(c *gin.Context) {
	m, err := h.Svc.Get(c.Request.Context(), c.Param("movie_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Movie not found")
		return
	}
	response.Success(c, http.StatusOK, "Movie retrieved successfully", movieJSON(m))
}

func (h *MovieHandler) List(c *gin.Context) {
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	sortBy := c.Query("sort_by")
	switch sortBy {
	case "", repository.SortMostRecent, repository.SortMostRated, repository.SortMostRatedAndRecent:
	default:
		response.ValidationError(c, "invalid payload", map[string]string{"sort_by": "sort_by must be one of most_recent, most_rated, most_rated_and_recent"})
		return
	}
	search := c.Query("search")
	if len(search) > 100 {
		response.ValidationError(c, "invalid payload", map[string]string{"search": "search must not exceed 100 characters"})
		return
	}
	movies, err := h.Svc.List(c.Request.Context(), repository.MovieListParams{
		Skip:   skip,
		Limit:  limit,
		Search: search,
		SortBy: sortBy,
	})
	if err != nil {
		h.Logger.WithError(err).Error("list movies failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, "Movies retrieved successfully", moviesJSON(movies))
}

func (h *MovieHandler) Update(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req movieUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Svc.Update(c.Request.Context(), c.Param("movie_id"), application.MovieUpdate{
		Description: req.Description,
		PosterURL:   req.PosterURL,
	}, u.ID)
	if err != nil {
		if errors.Is(err, application.ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found or you are not authorized to update this movie")
			return
		}
		h.Logger.WithError(err).Error("update movie failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, "Movie updated successfully", movieJSON(m))
}

func (h *MovieHandler) Delete(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), c.Param("movie_id"), u.ID); err != nil {
		if errors.Is(err, application.ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found or unauthorized")
			return
		}
		h.Logger.WithError(err).Error("delete movie failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPoster accepts a multipart "poster" file and stores it in object
// storage, updating the movie's poster URL.
func (h *MovieHandler) UploadPoster(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	fh, err := c.FormFile("poster")
	if err != nil {
		response.ValidationError(c, "invalid payload", map[string]string{"poster": "poster file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadPoster(c.Request.Context(), c.Param("movie_id"), u.ID, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMovieNotFound):
			response.Error(c, http.StatusNotFound, "Movie not found or unauthorized")
		case errors.Is(err, application.ErrStorageUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "poster storage unavailable")
		default:
			h.Logger.WithError(err).Error("upload poster failed")
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	response.Success(c, http.StatusOK, "Poster uploaded successfully", gin.H{"poster_url": url})
}

// Search queries the movie search index.
func (h *MovieHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.ValidationError(c, "invalid payload", map[string]string{"q": "q is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("movie search failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, "Movies retrieved successfully", hits)
}
