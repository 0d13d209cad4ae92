package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keystone-server/shared/models"
)

// getUserProgress returns the reader's progress record. The demo
// identity is auto-provisioned by the store; everyone else unknown gets
// a 404.
func (h *APIHandler) getUserProgress(c *gin.Context) {
	userID := c.Param("userId")

	progress, err := h.progress.GetProgress(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// upsertUserProgress creates or patches the reader's progress from a
// partial body. Fields absent from the body are preserved.
func (h *APIHandler) upsertUserProgress(c *gin.Context) {
	userID := c.Param("userId")

	var patch models.UserProgressPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid progress data: " + err.Error()})
		return
	}

	progress, err := h.progress.UpsertProgress(c.Request.Context(), userID, patch)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	progressUpdatesTotal.Inc()
	c.JSON(http.StatusOK, progress)
}

// getUserStoryChoices lists the reader's logged selections for a story.
func (h *APIHandler) getUserStoryChoices(c *gin.Context) {
	userID := c.Param("userId")
	storyID := c.Param("storyId")

	choices, err := h.progress.GetStoryChoices(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, choices)
}
