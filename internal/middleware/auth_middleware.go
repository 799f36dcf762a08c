package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"dealsHub/internal/session"
	"dealsHub/pkg/logger"
	"dealsHub/pkg/utils"

	jsonres "dealsHub/pkg/response"

	"github.com/labstack/echo/v4"
)

// AdminTokenCookie is the cookie the login handler sets for browser clients.
const AdminTokenCookie = "admin_token"

// SessionValidator checks a token against the session store so logout can
// actually revoke it.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*session.Data, error)
}

// extractToken pulls the admin token from the Authorization header, falling
// back to the login cookie for browser clients.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
			return tokenParts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(AdminTokenCookie)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func authenticate(c echo.Context, validator SessionValidator) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Missing credentials", nil,
		))
	}

	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid token", nil,
		))
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || expAt == nil || time.Now().After(expAt.Time) {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Token expired", nil,
		))
	}

	if claims.Role != "admin" {
		return c.JSON(http.StatusForbidden, jsonres.Error(
			"FORBIDDEN", "Admin access required", nil,
		))
	}

	if validator != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if _, err := validator.Validate(ctx, tokenString); err != nil {
			logger.Error("Session token not found in store", err)
			return c.JSON(http.StatusUnauthorized, jsonres.Error(
				"UNAUTHORIZED", "Session expired or revoked", nil,
			))
		}
	}

	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
	c.Set("token", tokenString)

	return nil
}

// AdminMiddleware gates a route group on a valid admin JWT, stateless.
func AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authenticate(c, nil); err != nil || c.Response().Committed {
				return err
			}
			return next(c)
		}
	}
}

// AdminMiddlewareWithSession additionally requires the token to still be
// registered in the session store, so a logged-out token stops working
// before its JWT expiry.
func AdminMiddlewareWithSession(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authenticate(c, validator); err != nil || c.Response().Committed {
				return err
			}
			return next(c)
		}
	}
}
