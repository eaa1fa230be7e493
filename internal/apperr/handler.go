package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GlobalErrorHandler renders every handler error as {"error": ...}. Unknown
// errors are logged and hidden behind a generic 500.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			respond(c, http.StatusBadRequest, map[string]string{"error": ve.Error(), "title": "validation error"})
			return
		}

		var nf *NotFoundError
		if errors.As(err, &nf) {
			respond(c, http.StatusNotFound, map[string]string{"error": nf.Error()})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			respond(c, he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "uri", c.Request().RequestURI, "error", err)
		respond(c, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func respond(c echo.Context, status int, body map[string]string) {
	if err := c.JSON(status, body); err != nil {
		slog.Error("Failed to write error response", "error", err)
	}
}
