package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/service"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

// Machine-readable codes carried in every error envelope.
const (
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeAdminRequired      = "ADMIN_REQUIRED"
	CodeEditorRequired     = "EDITOR_REQUIRED"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodeInvalidOrExpired   = "INVALID_OR_EXPIRED"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeInvalidID          = "INVALID_ID"
	CodeSelfModification   = "SELF_MODIFICATION"
	CodeUserHasContent     = "USER_HAS_CONTENT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidBody        = "INVALID_BODY"
	CodeInvalidMedia       = "INVALID_MEDIA"
	CodeMediaUnavailable   = "MEDIA_UNAVAILABLE"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeDBError            = "DB_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// serviceErrors lists known service failures. An empty message means the
// returned error text is shown, including any wrapped detail.
var serviceErrors = []errorMapping{
	{service.ErrMissingFields, http.StatusBadRequest, CodeMissingFields, ""},
	{service.ErrInvalidEmail, http.StatusBadRequest, CodeInvalidEmail, "Invalid email format"},
	{service.ErrPasswordTooWeak, http.StatusBadRequest, CodeWeakPassword, "Password must be at least 8 characters long"},
	{service.ErrEmailAlreadyUsed, http.StatusConflict, CodeEmailExists, "Email already registered"},
	{service.ErrMissingCredentials, http.StatusBadRequest, CodeMissingCredentials, ""},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password"},
	{service.ErrPasswordMismatch, http.StatusUnauthorized, CodePasswordMismatch, ""},
	{service.ErrResetTokenInvalid, http.StatusBadRequest, CodeInvalidOrExpired, "Invalid or expired reset token"},
	{service.ErrUserNotFound, http.StatusNotFound, CodeNotFound, "User not found"},
	{service.ErrInvalidRole, http.StatusBadRequest, CodeInvalidRole, "Role must be admin, editor or viewer"},
	{service.ErrSelfModification, http.StatusBadRequest, CodeSelfModification, ""},
	{service.ErrUserHasContent, http.StatusConflict, CodeUserHasContent, ""},
	{service.ErrBlogValidation, http.StatusBadRequest, CodeValidation, ""},
	{service.ErrBlogContentType, http.StatusBadRequest, CodeValidation, ""},
	{service.ErrBlogNotFound, http.StatusNotFound, CodeNotFound, "Blog not found"},
	{service.ErrBlogForbidden, http.StatusForbidden, CodeForbidden, "You can only manage your own posts"},
	{service.ErrMediaInvalid, http.StatusBadRequest, CodeInvalidMedia, ""},
	{service.ErrMediaUnavailable, http.StatusServiceUnavailable, CodeMediaUnavailable, ""},
	{service.ErrRecommendationValidation, http.StatusBadRequest, CodeValidation, ""},
	{service.ErrRecommendationNotFound, http.StatusNotFound, CodeNotFound, "Recommendation not found"},
	{service.ErrInvalidContactRole, http.StatusBadRequest, CodeInvalidRole, "Invalid role value. Allowed values: 'editor', 'viewer'"},
	{service.ErrContactNotFound, http.StatusNotFound, CodeNotFound, "Contact not found"},
}

// respondError maps a service error to its envelope. Unknown errors are
// logged and reported as a database failure without details.
func respondError(c echo.Context, op string, err error) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			message := m.message
			switch {
			case errors.Is(err, util.ErrPasswordTooLong):
				message = util.ErrPasswordTooLong.Error()
			case message == "":
				message = err.Error()
			}
			return c.JSON(m.status, util.Error(m.code, message))
		}
	}
	log.Printf("%s: %v", op, err)
	return c.JSON(http.StatusInternalServerError, util.Error(CodeDBError, "Internal server error"))
}
