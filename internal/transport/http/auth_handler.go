package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/service"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

// RegisterAuth mounts the credential and password reset routes. limiter
// guards every unauthenticated route; nil disables it.
func RegisterAuth(e *echo.Echo, auth *service.AuthService, limiter middleware.RateLimiterStore) {
	h := &AuthHandler{auth: auth}

	var guards []echo.MiddlewareFunc
	if limiter != nil {
		guards = append(guards, AuthRateLimit(limiter))
	}

	public := e.Group("/api", guards...)
	public.POST("/register", h.register)
	public.POST("/login", h.login)
	public.POST("/password-reset", h.requestPasswordReset)
	public.GET("/password-reset/:token", h.validateResetToken)
	public.POST("/password-reset/:token", h.resetPassword)

	me := e.Group("/api/me", RequireAuth(auth))
	me.GET("", h.me)
	me.PUT("/password", h.changePassword)
}

// register handles POST /api/register
func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	if _, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		return respondError(c, "register", err)
	}
	return c.JSON(http.StatusCreated, util.Success("User registered successfully"))
}

// login handles POST /api/login
func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, "login", err)
	}
	return c.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC(),
		User:      toAuthUser(result.User),
	})
}

// requestPasswordReset handles POST /api/password-reset. The answer is the
// same whether or not the address belongs to an account.
func (h *AuthHandler) requestPasswordReset(c echo.Context) error {
	var req PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return respondError(c, "request password reset", err)
	}
	return c.JSON(http.StatusOK, util.Success(service.ResetRequestedMessage))
}

// validateResetToken handles GET /api/password-reset/:token
func (h *AuthHandler) validateResetToken(c echo.Context) error {
	err := h.auth.ValidateResetToken(c.Request().Context(), c.Param("token"))
	if err == nil {
		return c.JSON(http.StatusOK, TokenValidityResponse{Success: true, Valid: true})
	}
	if isResetTokenRejection(err) {
		return c.JSON(http.StatusBadRequest, TokenValidityResponse{
			Valid: false,
			Error: "Invalid or expired reset token",
			Code:  CodeInvalidOrExpired,
		})
	}
	return respondError(c, "validate reset token", err)
}

// resetPassword handles POST /api/password-reset/:token
func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req PasswordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	if err := h.auth.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return respondError(c, "reset password", err)
	}
	return c.JSON(http.StatusOK, util.Success("Password has been reset successfully"))
}

// me handles GET /api/me
func (h *AuthHandler) me(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error(CodeMissingToken, "Access token required"))
	}
	user, err := h.auth.CurrentUser(c.Request().Context(), principal.UserID)
	if err != nil {
		return respondError(c, "current user", err)
	}
	return c.JSON(http.StatusOK, util.Data("data", toAuthUser(user)))
}

// changePassword handles PUT /api/me/password
func (h *AuthHandler) changePassword(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error(CodeMissingToken, "Access token required"))
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	if err := h.auth.ChangePassword(c.Request().Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, "change password", err)
	}
	return c.JSON(http.StatusOK, util.Success("Password updated"))
}

func isResetTokenRejection(err error) bool {
	return errors.Is(err, service.ErrResetTokenInvalid)
}

func toAuthUser(user *domain.User) AuthUser {
	if user == nil {
		return AuthUser{}
	}
	return AuthUser{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
