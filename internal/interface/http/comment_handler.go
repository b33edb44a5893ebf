package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/application"
	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
	"github.com/screenlog/movie-catalog-api/pkg/response"
	"github.com/screenlog/movie-catalog-api/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type commentCreateRequest struct {
	MovieID string `json:"movie_id" binding:"required,uuid"`
	Content string `json:"content" binding:"required,max=1000"`
}

type nestedCommentCreateRequest struct {
	ParentCommentID string `json:"parent_comment_id" binding:"required,uuid"`
	Content         string `json:"content" binding:"required,max=1000"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req commentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.CreateTopLevel(c.Request.Context(), req.MovieID, u.ID, req.Content)
	if err != nil {
		if errors.Is(err, application.ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found")
			return
		}
		h.Logger.WithError(err).Error("create comment failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusCreated, "Comment created successfully", []gin.H{commentJSON(cm)})
}

func (h *CommentHandler) CreateNested(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req nestedCommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.CreateReply(c.Request.Context(), req.ParentCommentID, u.ID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrCommentNotFound):
			response.Error(c, http.StatusNotFound, "Comment not found")
		case errors.Is(err, application.ErrReplyToReply):
			response.Error(c, http.StatusBadRequest, "Replies to replies are not allowed")
		default:
			h.Logger.WithError(err).Error("create nested comment failed")
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	response.Success(c, http.StatusCreated, "Nested comment created successfully", []gin.H{commentJSON(cm)})
}

func (h *CommentHandler) ListByMovie(c *gin.Context) {
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}
	sortOrder := c.DefaultQuery("sort_order", "most_recent")
	switch sortOrder {
	case "most_recent", "from_oldest":
	default:
		response.ValidationError(c, "invalid payload", map[string]string{"sort_order": "sort_order must be one of most_recent, from_oldest"})
		return
	}
	comments, err := h.Svc.List(c.Request.Context(), c.Param("movie_id"), skip, limit, sortOrder == "most_recent")
	if err != nil {
		if errors.Is(err, application.ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found")
			return
		}
		h.Logger.WithError(err).Error("list comments failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, "Comments retrieved successfully", commentsJSON(comments))
}
