package middlewares

import (
	"log/slog"

	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
)

// AccessControlFactory returns a middleware factory checking the role of the
// session user. It has to run after the session middleware.
func AccessControlFactory(rbac shared.AccessControl) shared.RBACMiddleware {
	return func(obj shared.Object, act shared.Action) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(ctx echo.Context) error {
				user, ok := shared.MaybeGetSession(ctx)
				if !ok {
					return shared.NewUnauthorizedError("missing token", nil)
				}

				allowed, err := rbac.IsAllowed(shared.Role(user.Role), obj, act)
				if err != nil {
					return shared.NewUnexpectedError(err)
				}
				if !allowed {
					slog.Warn("access denied", "user", user.ID, "object", obj, "action", act)
					return shared.NewForbiddenError("insufficient permissions", nil)
				}
				return next(ctx)
			}
		}
	}
}
