package middleware

import (
	"fmt"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stembank/stembank/internal/apperr"
)

// Recovery turns a handler panic into the same query-kind failure every
// database error maps to: the client gets the generic 500 message, the
// panic value and stack go to the log under the request's correlation id.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := make([]byte, 4096)
					n := runtime.Stack(stack, false)

					rid, _ := c.Get("request_id").(string)
					logger.Error().
						Str("request_id", rid).
						Str("method", c.Request().Method).
						Str("path", c.Request().URL.Path).
						Str("panic", fmt.Sprintf("%v", r)).
						Str("stack", string(stack[:n])).
						Msg("panic recovered")

					failure := apperr.Query("internal error", fmt.Errorf("panic: %v", r))
					err = echo.NewHTTPError(apperr.HTTPStatus(failure), apperr.Message(failure))
				}
			}()
			return next(c)
		}
	}
}
