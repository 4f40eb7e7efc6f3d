package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/igs-backend-go/internal/csvdata"
	"github.com/jengzang/igs-backend-go/internal/floorplan"
	"github.com/jengzang/igs-backend-go/internal/service"
	"github.com/jengzang/igs-backend-go/internal/session"
	"github.com/jengzang/igs-backend-go/internal/video"
	"github.com/jengzang/igs-backend-go/pkg/response"
)

// errorStatus maps domain errors to HTTP statuses. Errors without a known
// sentinel get fallback.
func errorStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrExampleNotFound),
		errors.Is(err, session.ErrUserNotFound),
		errors.Is(err, session.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, csvdata.ErrUnrecognizedFormat),
		errors.Is(err, floorplan.ErrImageLoad):
		return http.StatusUnprocessableEntity
	case errors.Is(err, floorplan.ErrNetworkFetch):
		return http.StatusBadGateway
	case errors.Is(err, video.ErrNoVideo):
		return http.StatusConflict
	case errors.Is(err, video.ErrUnknownAction):
		return http.StatusBadRequest
	}
	return fallback
}

func writeError(c *gin.Context, err error, fallback int) {
	_ = c.Error(err)
	response.Error(c, errorStatus(err, fallback), err.Error())
}
