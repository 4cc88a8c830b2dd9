package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooWeak    = errors.New("password must be at least 8 characters long")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfModification   = errors.New("admins cannot change or delete their own account here")
	ErrUserHasContent     = errors.New("user still owns blog posts")
	ErrForbidden          = errors.New("forbidden")

	ErrRecommendationNotFound   = errors.New("recommendation not found")
	ErrRecommendationValidation = errors.New("name, position, company and recommendation are required")
	ErrContactNotFound          = errors.New("contact not found")
	ErrInvalidContactRole       = errors.New("invalid role value, allowed values: editor, viewer")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
