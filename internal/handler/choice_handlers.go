package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keystone-server/shared/models"
)

// submitChoice records a reader's selection and accumulates its
// consequence deltas into their progress. Returns the created log entry
// with 201.
func (h *APIHandler) submitChoice(c *gin.Context) {
	var req submitChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid choice data: " + err.Error()})
		return
	}

	userChoice, err := h.progress.SubmitChoice(c.Request.Context(), req.UserID, req.ChoiceID, req.StoryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	choiceSubmissionsTotal.Inc()
	c.JSON(http.StatusCreated, userChoice)
}
