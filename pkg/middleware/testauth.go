package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/context"
)

// TestAuth middleware extracts the caller identity from headers when auth is
// disabled. This allows testing the API without a real JWT auth system.
// Headers:
//   - X-Agency-ID: The agency (tenant) ID
//   - X-User-ID: The user ID
//   - X-Role: The user role
//
// WARNING: Only use this when AUTH_ENABLED=false. Do not enable in production.
func TestAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			agencyID := c.Request().Header.Get("X-Agency-ID")
			if agencyID != "" {
				ctx = context.SetAgencyID(ctx, agencyID)
			}

			userID := c.Request().Header.Get("X-User-ID")
			if userID != "" {
				ctx = context.SetUserID(ctx, userID)
			}

			role := c.Request().Header.Get("X-Role")
			if role != "" {
				ctx = context.SetRole(ctx, role)
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
