package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/account"
)

// activeMiddleware restricts access to accounts in active status.
// A pending or blocked account holds a valid token but cannot use the portal yet.
func activeMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.Status != string(account.StatusActive) {
				return errHTTPForbidden
			}
			return next(ctx)
		}
	}
}

// adminMiddleware restricts access to active admin accounts.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if !(claims.IsAdmin && claims.Status == string(account.StatusActive)) {
				return errHTTPForbidden
			}
			return next(ctx)
		}
	}
}
