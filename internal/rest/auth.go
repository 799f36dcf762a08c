package rest

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"dealsHub/internal/middleware"
	"dealsHub/internal/session"
	"dealsHub/pkg/config"
	"dealsHub/pkg/logger"
	"dealsHub/pkg/utils"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// SessionStore registers issued tokens so logout can revoke them. Nil when
// redis is not configured: logins then run stateless.
type SessionStore interface {
	Store(ctx context.Context, token string, data session.Data, ttl time.Duration) error
	Revoke(ctx context.Context, token string) error
}

type AuthHandler struct {
	admin     config.AdminConfig
	sessions  SessionStore
	validator *validator.Validate
	timeout   time.Duration
}

func NewAuthHandler(admin config.AdminConfig, sessions SessionStore) *AuthHandler {
	return &AuthHandler{
		admin:     admin,
		sessions:  sessions,
		validator: validator.New(),
		timeout:   10 * time.Second,
	}
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (h *AuthHandler) checkCredentials(req LoginRequest) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.admin.Username)) == 1

	var passwordOK bool
	if h.admin.PasswordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.admin.Password)) == 1
	}

	return usernameOK && passwordOK
}

// LoginForm is the GET side of the login route. The UI is external, so it
// just describes the credential POST.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "POST username and password to this route to obtain an admin token",
		"fields":  []string{"username", "password"},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind login request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate login request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if !h.checkCredentials(req) {
		logger.Warn("Admin login rejected", "username", req.Username)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid username or password"})
	}

	token, err := utils.GenerateJWT(req.Username, "admin")
	if err != nil {
		logger.Error("Failed to generate token", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "internal server error"})
	}

	if h.sessions != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		defer cancel()

		now := time.Now()
		data := session.Data{
			Username:  req.Username,
			IssuedAt:  now,
			ExpiresAt: now.Add(tokenTTL),
		}
		if err := h.sessions.Store(ctx, token, data, tokenTTL); err != nil {
			logger.Error("Failed to register session token", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: "internal server error"})
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AdminTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("Admin logged in", "username", req.Username)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"token": token,
	}))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if h.sessions != nil {
		token := ""
		if cookie, err := c.Cookie(middleware.AdminTokenCookie); err == nil {
			token = cookie.Value
		}
		if token == "" {
			if v, ok := c.Get("token").(string); ok {
				token = v
			}
		}

		if token != "" {
			ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
			defer cancel()

			if err := h.sessions.Revoke(ctx, token); err != nil {
				logger.Error("Failed to revoke session token", err)
			}
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AdminTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, fres.Response.StatusOK("logged out"))
}

// Status reports the authenticated admin identity. It sits behind the admin
// middleware, so reaching it at all means the token checked out.
func (h *AuthHandler) Status(c echo.Context) error {
	username, _ := c.Get("username").(string)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "authenticated",
		"username": username,
	})
}
