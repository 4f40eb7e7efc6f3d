package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/service"
	"github.com/jengzang/igs-backend-go/pkg/response"
)

// SessionHandler handles session lifecycle, file upload and example requests
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type createSessionRequest struct {
	Name string `json:"name"`
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	sess, err := h.sessionService.Create(req.Name)
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Created(c, sess)
}

// ListSessions handles GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.List()
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, gin.H{
		"data":  sessions,
		"count": len(sessions),
	})
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	state, err := h.sessionService.State(c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, state)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessionService.Delete(c.Param("id")); err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, nil)
}

// UploadFiles handles POST /api/v1/sessions/:id/files. Every "file" part is
// ingested in order; a failing file does not stop the ones after it.
func (h *SessionHandler) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Expected a multipart form")
		return
	}
	headers := form.File["file"]
	if len(headers) == 0 {
		response.BadRequest(c, "No file provided")
		return
	}

	id := c.Param("id")
	reports := []models.IngestReport{}
	failures := []models.FileError{}
	var firstErr error
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			failures = append(failures, models.FileError{File: fh.Filename, Message: err.Error()})
			continue
		}
		report, err := h.sessionService.Upload(id, fh.Filename, f)
		f.Close()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			_ = c.Error(err)
			failures = append(failures, models.FileError{File: fh.Filename, Message: err.Error()})
			continue
		}
		reports = append(reports, report)
	}

	if len(reports) == 0 && firstErr != nil {
		writeError(c, firstErr, http.StatusInternalServerError)
		return
	}
	response.Success(c, models.LoadResult{Reports: reports, Errors: failures})
}

// ClearSession handles POST /api/v1/sessions/:id/clear
func (h *SessionHandler) ClearSession(c *gin.Context) {
	if err := h.sessionService.Clear(c.Param("id")); err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, nil)
}

// ListExamples handles GET /api/v1/sessions/:id/examples
func (h *SessionHandler) ListExamples(c *gin.Context) {
	examples, err := h.sessionService.Examples(c.Request.Context())
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	response.Success(c, examples)
}

// LoadExample handles POST /api/v1/sessions/:id/examples/:name
func (h *SessionHandler) LoadExample(c *gin.Context) {
	result, err := h.sessionService.LoadExample(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	for _, fe := range result.Errors {
		_ = c.Error(fmt.Errorf("%s: %s", fe.File, fe.Message))
	}
	response.Success(c, result)
}
