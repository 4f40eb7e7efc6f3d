package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/service"
	"github.com/jengzang/igs-backend-go/pkg/response"
)

// UserHandler handles HTTP requests for users and their data trails
type UserHandler struct {
	sessionService *service.SessionService
}

// NewUserHandler creates a new user handler
func NewUserHandler(sessionService *service.SessionService) *UserHandler {
	return &UserHandler{sessionService: sessionService}
}

// ListUsers handles GET /api/v1/sessions/:id/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, store.Users())
}

// GetUser handles GET /api/v1/sessions/:id/users/:name
func (h *UserHandler) GetUser(c *gin.Context) {
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	user, err := store.User(c.Param("name"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, user)
}

// UpdateUser handles PATCH /api/v1/sessions/:id/users/:name
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	info, err := store.UpdateUser(c.Param("name"), upd)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, info)
}

// GetTrail handles GET /api/v1/sessions/:id/users/:name/trail
func (h *UserHandler) GetTrail(c *gin.Context) {
	var filter models.TrailFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	points, err := store.Trail(c.Param("name"), filter)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, gin.H{
		"data":  points,
		"count": len(points),
	})
}

// GetSummary handles GET /api/v1/sessions/:id/users/:name/summary
func (h *UserHandler) GetSummary(c *gin.Context) {
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	summary, err := store.Summary(c.Param("name"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, summary)
}
