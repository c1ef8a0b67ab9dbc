package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

// envelope is the wire shape of every response: {success, message, data|error}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message})
}

// respondError maps the error taxonomy to HTTP statuses in one place.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
		message = apperr.MessageOf(err)
	case apperr.KindInvalidInput:
		status = http.StatusBadRequest
		message = apperr.MessageOf(err)
	case apperr.KindUnauthorized:
		status = http.StatusForbidden
		message = apperr.MessageOf(err)
	case apperr.KindInvalidState, apperr.KindConflict:
		status = http.StatusConflict
		message = apperr.MessageOf(err)
	case apperr.KindExternal:
		status = http.StatusBadGateway
		message = apperr.MessageOf(err)
	}
	c.AbortWithStatusJSON(status, envelope{Success: false, Error: message})
}

func respondBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
}
