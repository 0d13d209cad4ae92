package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"keystone-server/internal/service"
	"keystone-server/shared/constants"
)

// APIHandler translates HTTP requests into service calls and shapes the
// JSON responses.
type APIHandler struct {
	stories    service.StoryService
	progress   service.ProgressService
	characters service.CharacterService
	users      service.UserService
	logger     *zap.Logger
}

// NewAPIHandler creates the handler with its service dependencies.
func NewAPIHandler(
	stories service.StoryService,
	progress service.ProgressService,
	characters service.CharacterService,
	users service.UserService,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		stories:    stories,
		progress:   progress,
		characters: characters,
		users:      users,
		logger:     logger.Named("APIHandler"),
	}
}

// RegisterRoutes mounts the API under /api. submitLimiter, when non-nil,
// is applied to the choice submission route only.
func (h *APIHandler) RegisterRoutes(router *gin.Engine, submitLimiter gin.HandlerFunc) {
	api := router.Group(constants.APIBasePath)

	api.GET("/stories/current", h.getCurrentStory)

	api.POST("/users", h.register)
	api.GET("/users/:userId/progress", h.getUserProgress)
	api.POST("/users/:userId/progress", h.upsertUserProgress)
	api.GET("/users/:userId/choices/:storyId", h.getUserStoryChoices)

	if submitLimiter != nil {
		api.POST("/choices", submitLimiter, h.submitChoice)
	} else {
		api.POST("/choices", h.submitChoice)
	}

	api.GET("/characters", h.listCharacters)
	api.GET("/characters/:id", h.getCharacter)
}

// getCurrentStory returns the active story with its choices, each
// augmented with community vote numbers.
func (h *APIHandler) getCurrentStory(c *gin.Context) {
	detail, err := h.stories.GetCurrentStory(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
