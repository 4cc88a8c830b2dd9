package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/metrics"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

const (
	contextUserKey  = "auth.principal"
	contextTokenKey = "auth.token"
)

// TokenVerifier resolves a bearer token to the caller identity.
type TokenVerifier interface {
	VerifyToken(token string) (domain.Principal, error)
}

// RequireAuth rejects requests without a valid bearer token. A missing or
// malformed header is 401; a token that fails verification is 403.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, util.Error(CodeMissingToken, "Access token required"))
			}
			principal, err := verifier.VerifyToken(token)
			if err != nil {
				metrics.RecordAuthEvent("token_verify", metrics.OutcomeRejected)
				return c.JSON(http.StatusForbidden, util.Error(CodeInvalidToken, "Invalid or expired token"))
			}
			c.Set(contextUserKey, principal)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// RequireRole admits principals holding any of roles. It must run after
// RequireAuth.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	code, message := CodeEditorRequired, "Editor or admin access required"
	if len(roles) == 1 && roles[0] == domain.RoleAdmin {
		code, message = CodeAdminRequired, "Admin access required"
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := CurrentPrincipal(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, util.Error(CodeMissingToken, "Access token required"))
			}
			if !principal.HasRole(roles...) {
				return c.JSON(http.StatusForbidden, util.Error(code, message))
			}
			return next(c)
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin)
}

func RequireEditor() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleEditor)
}

func CurrentPrincipal(c echo.Context) (domain.Principal, bool) {
	principal, ok := c.Get(contextUserKey).(domain.Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
