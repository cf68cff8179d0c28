package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
)

// errorHandler translates every error into the response envelope. Internal
// causes are logged but never sent to the client.
func errorHandler(err error, ctx echo.Context) {
	// do the logging straight inside the error handler
	// this keeps controller methods clean
	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = shared.NewUnexpectedError(err)
	}

	if he.Code >= http.StatusInternalServerError {
		slog.Error(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL.Path, "internal", he.Internal)
	} else {
		slog.Warn(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL.Path, "internal", he.Internal)
	}

	if ctx.Response().Committed {
		return
	}

	if ctx.Request().Method == http.MethodHead {
		if err := ctx.NoContent(he.Code); err != nil {
			slog.Error("could not send error response", "error", err)
		}
		return
	}

	if err := ctx.JSON(he.Code, shared.ErrorResponse(errorMessage(he))); err != nil {
		slog.Error("could not send error response", "error", err)
	}
}

func errorMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
