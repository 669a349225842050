package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// StatusFor maps a taxonomy code onto an HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeValidation, CodeMalformedEvent:
		return http.StatusBadRequest
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeFetchFailed, CodeTransient:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// FromError writes a classified error.
func FromError(c *gin.Context, err error) {
	code := CodeOf(err)
	Write(c, StatusFor(code), code, MessageOf(err))
}
