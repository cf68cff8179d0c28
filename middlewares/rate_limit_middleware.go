package middlewares

import (
	"net/http"
	"time"

	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	authRequestsPerMinute = 20
	authBurst             = 10
)

// AuthRateLimiter limits the unauthenticated auth endpoints per client ip.
func AuthRateLimiter() echo.MiddlewareFunc {
	return RateLimiter(rate.Every(time.Minute/authRequestsPerMinute), authBurst)
}

func RateLimiter(limit rate.Limit, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later").WithInternal(err)
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			return shared.NewForbiddenError("could not identify client", err)
		},
	})
}
