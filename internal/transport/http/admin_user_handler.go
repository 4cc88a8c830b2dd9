package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/service"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

type AdminUserHandler struct {
	users *service.UserAdminService
}

func RegisterAdminUsers(e *echo.Echo, verifier TokenVerifier, users *service.UserAdminService) {
	h := &AdminUserHandler{users: users}

	g := e.Group("/api/admin/users", RequireAuth(verifier), RequireAdmin())
	g.GET("", h.listUsers)
	g.PUT("/:id", h.updateRole)
	g.DELETE("/:id", h.deleteUser)
}

// listUsers handles GET /api/admin/users?limit=&offset=&role=
func (h *AdminUserHandler) listUsers(c echo.Context) error {
	limit, offset := parsePagination(c, 20, 0)
	filter := service.UserListFilter{
		Roles:  parseRoles(c.QueryParams()["role"]),
		Limit:  limit,
		Offset: offset,
	}

	result, err := h.users.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, "list users", err)
	}

	users := make([]AuthUser, 0, len(result.Users))
	for i := range result.Users {
		users = append(users, toAuthUser(&result.Users[i]))
	}
	return c.JSON(http.StatusOK, util.Data("data", users).With("meta", PageMeta{
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	}))
}

// updateRole handles PUT /api/admin/users/:id
func (h *AdminUserHandler) updateRole(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error(CodeMissingToken, "Access token required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidID, "Invalid user id"))
	}
	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}

	user, err := h.users.UpdateRole(c.Request().Context(), principal.UserID, id, req.Role)
	if err != nil {
		return respondError(c, "update role", err)
	}
	return c.JSON(http.StatusOK, util.Data("data", toAuthUser(user)).With("message", "User role updated"))
}

// deleteUser handles DELETE /api/admin/users/:id
func (h *AdminUserHandler) deleteUser(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error(CodeMissingToken, "Access token required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidID, "Invalid user id"))
	}
	if err := h.users.DeleteUser(c.Request().Context(), principal.UserID, id); err != nil {
		return respondError(c, "delete user", err)
	}
	return c.JSON(http.StatusOK, util.Success("User deleted"))
}

func parsePagination(c echo.Context, defaultLimit, defaultOffset int) (int, int) {
	limit := defaultLimit
	offset := defaultOffset
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := strings.TrimSpace(c.QueryParam("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

// parseRoles accepts both repeated and comma separated role parameters.
func parseRoles(values []string) []string {
	var roles []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				roles = append(roles, part)
			}
		}
	}
	return roles
}
