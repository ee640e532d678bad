package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		// Latest public error wins
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.NewResponse(c, http.StatusInternalServerError, internalErrorMessage, nil))
	}
}

// CustomRecovery turns a panic into a 500. Strict pricing mode panics with
// ErrUnreachableNights, which is logged separately so it stands out.
func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				attrs := []any{
					"error", rec,
					"path", c.Request.URL.Path,
					"request_id", c.GetString("request_id"),
				}
				if err, ok := rec.(error); ok && errors.Is(err, booking.ErrUnreachableNights) {
					logger.Error("pricing invariant violated", attrs...)
				} else {
					logger.Error("recovered from panic", append(attrs, "stack", string(debug.Stack()))...)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.NewResponse(c, http.StatusInternalServerError, internalErrorMessage, nil))
			}
		}()
		c.Next()
	}
}
