package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestTimeout puts a deadline on each request context. The handler runs
// on the request goroutine and must honor the context; a deadline error it
// returns becomes a 504. A zero timeout disables the deadline.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	if timeout <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: timeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return timedOut()
			}
			return err
		},
	})
}

func timedOut() error {
	return echo.NewHTTPError(http.StatusGatewayTimeout, "request timed out")
}
