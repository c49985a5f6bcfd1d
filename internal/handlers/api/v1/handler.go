// Package v1 exposes the character service over HTTP/JSON.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vttbridge/sheet-api/internal/entities/sheet"
	"github.com/vttbridge/sheet-api/internal/errors"
	"github.com/vttbridge/sheet-api/internal/services/character"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler serves the v1 character routes
type Handler struct {
	characterService character.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
	}, nil
}

// RegisterRoutes mounts the v1 routes on the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/v1")

	v1.POST("/characters/normalize", h.NormalizeCharacter)
	v1.GET("/characters/:id", h.GetCharacter)
	v1.POST("/characters/:id/refresh", h.RefreshCharacter)
	v1.DELETE("/characters/:id", h.DeleteCharacter)
	v1.GET("/players/:playerId/characters", h.ListCharacters)
}

// normalizeRequest mirrors the sheet service's export shape so clients can
// post a raw creature dump unmodified.
type normalizeRequest struct {
	Creature   *sheet.Creature      `json:"creature"`
	Variables  sheet.VariableMap    `json:"variables"`
	Properties []sheet.PropertyNode `json:"properties"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NormalizeCharacter runs the pipeline on a caller-supplied payload without
// touching the snapshot store.
func (h *Handler) NormalizeCharacter(c *gin.Context) {
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	output, err := h.characterService.NormalizeCharacter(c.Request.Context(), &character.NormalizeCharacterInput{
		Creature:   req.Creature,
		Variables:  req.Variables,
		Properties: req.Properties,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"character": output.Character})
}

// GetCharacter returns the stored snapshot, fetching from the sheet
// service on a miss.
func (h *Handler) GetCharacter(c *gin.Context) {
	output, err := h.characterService.GetCharacter(c.Request.Context(), &character.GetCharacterInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": output.Snapshot})
}

// RefreshCharacter re-fetches and re-normalizes, replacing any stored
// snapshot.
func (h *Handler) RefreshCharacter(c *gin.Context) {
	output, err := h.characterService.RefreshCharacter(c.Request.Context(), &character.RefreshCharacterInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": output.Snapshot})
}

// ListCharacters returns the snapshots owned by a player.
func (h *Handler) ListCharacters(c *gin.Context) {
	output, err := h.characterService.ListCharacters(c.Request.Context(), &character.ListCharactersInput{
		PlayerID: c.Param("playerId"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": output.Snapshots})
}

// DeleteCharacter drops the stored snapshot.
func (h *Handler) DeleteCharacter(c *gin.Context) {
	output, err := h.characterService.DeleteCharacter(c.Request.Context(), &character.DeleteCharacterInput{
		CharacterID: c.Param("id"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": output.Message})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := errors.GetCode(err).HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"error", err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
