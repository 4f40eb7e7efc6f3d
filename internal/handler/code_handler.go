package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/service"
	"github.com/jengzang/igs-backend-go/pkg/response"
)

// CodeHandler handles HTTP requests for code tables
type CodeHandler struct {
	sessionService *service.SessionService
}

// NewCodeHandler creates a new code handler
func NewCodeHandler(sessionService *service.SessionService) *CodeHandler {
	return &CodeHandler{sessionService: sessionService}
}

// ListCodes handles GET /api/v1/sessions/:id/codes
func (h *CodeHandler) ListCodes(c *gin.Context) {
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, gin.H{
		"data":         store.Codes(),
		"dataHasCodes": store.DataHasCodes(),
	})
}

// UpdateCode handles PATCH /api/v1/sessions/:id/codes/:code
func (h *CodeHandler) UpdateCode(c *gin.Context) {
	var upd models.CodeUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	info, err := store.UpdateCode(c.Param("code"), upd)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, info)
}

// GetCodeColor handles GET /api/v1/sessions/:id/codes/color?time=
func (h *CodeHandler) GetCodeColor(c *gin.Context) {
	t, err := strconv.ParseFloat(c.Query("time"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid time parameter")
		return
	}
	store, err := h.sessionService.Store(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, store.CodeColorAt(t))
}
