package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Character responses carry Cache-Control: no-store so a static host or
// proxy never serves a stale roster.

func (h *APIHandler) listCharacters(c *gin.Context) {
	characters, err := h.characters.ListCharacters(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, characters)
}

func (h *APIHandler) getCharacter(c *gin.Context) {
	id := c.Param("id")

	character, err := h.characters.GetCharacter(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, character)
}
