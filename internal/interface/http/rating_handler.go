package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/application"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
	"github.com/screenlog/movie-catalog-api/pkg/response"
	"github.com/screenlog/movie-catalog-api/pkg/validation"
)

type RatingHandler struct {
	Svc    *application.RatingService
	Logger *logrus.Logger
}

func NewRatingHandler(svc *application.RatingService, logger *logrus.Logger) *RatingHandler {
	return &RatingHandler{Svc: svc, Logger: logger}
}

type ratingCreateRequest struct {
	MovieID string `json:"movie_id" binding:"required,uuid"`
	Score   int    `json:"score" binding:"required,gte=1,lte=5"`
	Review  string `json:"review" binding:"omitempty,max=2000,maxwords=200"`
}

func (h *RatingHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req ratingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Upsert(c.Request.Context(), req.MovieID, u.ID, req.Score, req.Review)
	if err != nil {
		if errors.Is(err, application.ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found")
			return
		}
		h.Logger.WithError(err).Error("rate movie failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusCreated, "Rating created or updated successfully", ratingJSON(r))
}

func (h *RatingHandler) ListByMovie(c *gin.Context) {
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	var score *int
	if raw := c.Query("rating_score"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 5 {
			response.ValidationError(c, "invalid payload", map[string]string{"rating_score": "rating_score must be an integer between 1 and 5"})
			return
		}
		score = &n
	}
	page, err := h.Svc.List(c.Request.Context(), c.Param("movie_id"), skip, limit, score)
	if err != nil {
		if errors.Is(err, application.ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found")
			return
		}
		h.Logger.WithError(err).Error("list ratings failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, "Ratings retrieved successfully", gin.H{
		"ratings":           ratingsJSON(page.Ratings),
		"aggregated_rating": gin.H{"average_score": page.AverageScore},
	})
}
