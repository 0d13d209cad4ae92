package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keystone-server/shared/models"
)

// handleServiceError maps service errors onto HTTP statuses. Anything
// unrecognized becomes a 500 with a generic message; detail stays in the
// log only.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrStoryNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Message: "No active story found"}
	case errors.Is(err, models.ErrProgressNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Message: "User progress not found"}
	case errors.Is(err, models.ErrChoiceNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Message: "Choice not found"}
	case errors.Is(err, models.ErrCharacterNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Message: "Character not found"}
	case errors.Is(err, models.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Message: "User not found"}
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Message: "Resource not found"}
	case errors.Is(err, models.ErrUserAlreadyExists):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Message: "Username already exists"}
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Message: "Invalid input data"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
