package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-contacts/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

// SuccessEnvelope wraps every successful JSON response.
type SuccessEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// ErrorEnvelope wraps every failed JSON response.
type ErrorEnvelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Details    any    `json:"details,omitempty"`
}

type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (h *handlers) ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SuccessEnvelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: h.stamp(),
		Path:      c.Request.URL.Path,
	})
}

func (h *handlers) fail(c *gin.Context, err error) {
	status, code, message, details := describeError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("go-contacts: request failed", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Success:    false,
		Message:    message,
		Error:      code,
		StatusCode: status,
		Timestamp:  h.stamp(),
		Path:       c.Request.URL.Path,
		Details:    details,
	})
}

func (h *handlers) stamp() string {
	return h.clock.Now().UTC().Format(time.RFC3339Nano)
}

// describeError maps categorized errors onto HTTP statuses. Anything
// uncategorized is reported as a generic 500 so internals never leak.
func describeError(err error) (int, string, string, any) {
	var rich *goerrors.Error
	if err == nil || !goerrors.As(err, &rich) {
		return http.StatusInternalServerError, types.TextCodeUnexpected, "Internal server error", nil
	}
	status := statusFor(rich)
	if status >= http.StatusInternalServerError {
		return status, types.TextCodeUnexpected, "Internal server error", nil
	}
	code := rich.TextCode
	if code == "" {
		code = textCodeFor(status)
	}
	var details any
	if len(rich.ValidationErrors) > 0 {
		fields := make([]fieldDetail, 0, len(rich.ValidationErrors))
		for _, fe := range rich.ValidationErrors {
			fields = append(fields, fieldDetail{Field: fe.Field, Message: fe.Message})
		}
		details = fields
	}
	return status, code, rich.Message, details
}

func statusFor(rich *goerrors.Error) int {
	if rich.Code >= 400 && rich.Code < 600 {
		return rich.Code
	}
	switch rich.Category {
	case goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func textCodeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return types.TextCodeInvalidArgument
	case http.StatusUnauthorized:
		return types.TextCodeUnauthorized
	case http.StatusForbidden:
		return types.TextCodeForbidden
	case http.StatusNotFound:
		return types.TextCodeNotFound
	case http.StatusConflict:
		return types.TextCodeConflict
	default:
		return types.TextCodeUnexpected
	}
}
