package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/interface/middleware"
	"github.com/screenlog/movie-catalog-api/pkg/response"
)

type UserHandler struct {
	Logger *logrus.Logger
}

func NewUserHandler(logger *logrus.Logger) *UserHandler {
	return &UserHandler{Logger: logger}
}

func (h *UserHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	response.Success(c, http.StatusOK, "User data fetched successfully", userJSON(u))
}
