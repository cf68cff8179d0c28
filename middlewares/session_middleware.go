// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package middlewares

import (
	"strings"

	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
)

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// SessionMiddleware requires a valid bearer token and stores the resolved user
// as session. The user is read from storage on every request.
func SessionMiddleware(authService shared.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx)
			if token == "" {
				return shared.NewUnauthorizedError("missing token", nil)
			}

			user, err := authService.VerifyToken(token)
			if err != nil {
				return err
			}
			shared.SetSession(ctx, user)
			return next(ctx)
		}
	}
}

// OptionalSessionMiddleware sets the session when a valid token is present and
// continues without one otherwise.
func OptionalSessionMiddleware(authService shared.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if token := bearerToken(ctx); token != "" {
				if user, err := authService.VerifyToken(token); err == nil {
					shared.SetSession(ctx, user)
				}
			}
			return next(ctx)
		}
	}
}
