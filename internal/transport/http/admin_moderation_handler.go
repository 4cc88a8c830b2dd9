package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/service"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

type AdminRecommendationHandler struct {
	recs *service.RecommendationService
}

// RegisterAdminRecommendations mounts the recommendation moderation routes.
func RegisterAdminRecommendations(e *echo.Echo, verifier TokenVerifier, recs *service.RecommendationService) {
	h := &AdminRecommendationHandler{recs: recs}

	g := e.Group("/api/admin/recommendations", RequireAuth(verifier), RequireAdmin())
	g.GET("", h.listRecommendations)
	g.PUT("/:id", h.updateRecommendation)
	g.DELETE("/:id", h.deleteRecommendation)
}

// listRecommendations handles GET /api/admin/recommendations?approved=&limit=&offset=
func (h *AdminRecommendationHandler) listRecommendations(c echo.Context) error {
	filter := service.RecommendationListFilter{}
	if raw := strings.TrimSpace(c.QueryParam("approved")); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error(CodeValidation, "approved must be true or false"))
		}
		filter.Approved = &approved
	}
	filter.Limit, filter.Offset = parsePagination(c, 50, 0)

	result, err := h.recs.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, "list recommendations", err)
	}
	return c.JSON(http.StatusOK, util.Data("data", result.Items).With("meta", PageMeta{
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	}))
}

// updateRecommendation handles PUT /api/admin/recommendations/:id
func (h *AdminRecommendationHandler) updateRecommendation(c echo.Context) error {
	id, ok := parseNumericID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidID, "Invalid recommendation id"))
	}
	var req RecommendationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	item, err := h.recs.Update(c.Request().Context(), id, service.RecommendationInput{
		Name:           req.Name,
		Position:       req.Position,
		Company:        req.Company,
		Recommendation: req.Recommendation,
		Approved:       req.Approved,
	})
	if err != nil {
		return respondError(c, "update recommendation", err)
	}
	return c.JSON(http.StatusOK, util.Data("data", item).With("message", "Recommendation updated"))
}

// deleteRecommendation handles DELETE /api/admin/recommendations/:id
func (h *AdminRecommendationHandler) deleteRecommendation(c echo.Context) error {
	id, ok := parseNumericID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidID, "Invalid recommendation id"))
	}
	if err := h.recs.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, "delete recommendation", err)
	}
	return c.JSON(http.StatusOK, util.Success("Recommendation deleted"))
}

type AdminContactHandler struct {
	contacts *service.ContactService
}

// RegisterAdminContacts mounts the contact inbox routes.
func RegisterAdminContacts(e *echo.Echo, verifier TokenVerifier, contacts *service.ContactService) {
	h := &AdminContactHandler{contacts: contacts}

	g := e.Group("/api/admin/contacts", RequireAuth(verifier), RequireAdmin())
	g.GET("", h.listContacts)
	g.PUT("/:id", h.updateContactRole)
	g.DELETE("/:id", h.deleteContact)
}

// listContacts handles GET /api/admin/contacts?limit=&offset=
func (h *AdminContactHandler) listContacts(c echo.Context) error {
	limit, offset := parsePagination(c, 50, 0)
	result, err := h.contacts.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, "list contacts", err)
	}
	return c.JSON(http.StatusOK, util.Data("data", result.Items).With("meta", PageMeta{
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	}))
}

// updateContactRole handles PUT /api/admin/contacts/:id
func (h *AdminContactHandler) updateContactRole(c echo.Context) error {
	id, ok := parseNumericID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidID, "Invalid contact id"))
	}
	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidBody, "Invalid request body"))
	}
	item, err := h.contacts.UpdateRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return respondError(c, "update contact role", err)
	}
	return c.JSON(http.StatusOK, util.Data("data", item).
		With("message", "Contact role updated successfully").
		With("role", item.Role))
}

// deleteContact handles DELETE /api/admin/contacts/:id
func (h *AdminContactHandler) deleteContact(c echo.Context) error {
	id, ok := parseNumericID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error(CodeInvalidID, "Invalid contact id"))
	}
	if err := h.contacts.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, "delete contact", err)
	}
	return c.JSON(http.StatusOK, util.Success("Contact deleted"))
}
