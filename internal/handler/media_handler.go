package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/igs-backend-go/internal/floorplan"
	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/service"
	"github.com/jengzang/igs-backend-go/pkg/response"
)

// MediaHandler handles floor plan and video requests
type MediaHandler struct {
	sessionService *service.SessionService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(sessionService *service.SessionService) *MediaHandler {
	return &MediaHandler{sessionService: sessionService}
}

// GetFloorplan handles GET /api/v1/sessions/:id/floorplan. With width and
// height query parameters the reply includes the fit into that viewport.
func (h *MediaHandler) GetFloorplan(c *gin.Context) {
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	fp := store.Floorplan()
	if fp == nil {
		response.NotFound(c, "No floor plan loaded")
		return
	}

	result := gin.H{"floorplan": fp}
	if qw, qh := c.Query("width"), c.Query("height"); qw != "" && qh != "" {
		width, errW := strconv.ParseFloat(qw, 64)
		height, errH := strconv.ParseFloat(qh, 64)
		if errW != nil || errH != nil {
			response.BadRequest(c, "Invalid viewport size")
			return
		}
		result["fit"] = floorplan.FitTo(fp, width, height)
	}
	response.Success(c, result)
}

// GetVideo handles GET /api/v1/sessions/:id/video
func (h *MediaHandler) GetVideo(c *gin.Context) {
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	state := store.Video()
	if state == nil {
		response.NotFound(c, "No video loaded")
		return
	}
	response.Success(c, state)
}

// ControlVideo handles POST /api/v1/sessions/:id/video
func (h *MediaHandler) ControlVideo(c *gin.Context) {
	var cmd models.VideoCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	state, err := h.sessionService.Video(c.Param("id"), cmd)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, state)
}
