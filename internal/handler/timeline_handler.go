package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/service"
	"github.com/jengzang/igs-backend-go/pkg/response"
)

// TimelineHandler handles HTTP requests for the session timeline
type TimelineHandler struct {
	sessionService *service.SessionService
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(sessionService *service.SessionService) *TimelineHandler {
	return &TimelineHandler{sessionService: sessionService}
}

// GetTimeline handles GET /api/v1/sessions/:id/timeline
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, store.Timeline())
}

// UpdateTimeline handles PUT /api/v1/sessions/:id/timeline
func (h *TimelineHandler) UpdateTimeline(c *gin.Context) {
	var upd models.TimelineUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	info, err := store.UpdateTimeline(upd)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, info)
}
