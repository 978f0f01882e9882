package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookmarket/backend/internal/logging"
	"github.com/bookmarket/backend/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

// Token exchanges email/password for an access + refresh token pair.
func (h *AuthHandler) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_token")

	var req PostAuthenticationRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found!")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "Bad credentials")
		default:
			return writeError(c, err)
		}
	}

	l.Info("login successful")
	return c.JSON(http.StatusOK, AuthenticationResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// Refresh rotates a refresh token into a fresh pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req PostRefreshRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	res, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found!")
		case errors.Is(err, service.ErrInvalidCredentials),
			errors.Is(err, service.ErrTokenExpired),
			errors.Is(err, service.ErrTokenSignature),
			errors.Is(err, service.ErrTokenInvalid):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		default:
			return writeError(c, err)
		}
	}

	return c.JSON(http.StatusOK, AuthenticationResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}
