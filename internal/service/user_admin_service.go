package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

const (
	defaultUserListLimit = 20
	maxUserListLimit     = 100
)

type UserListFilter struct {
	Roles  []string
	Limit  int
	Offset int
}

type UserListResult struct {
	Users  []domain.User `json:"users"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type UserAdminService struct {
	users ports.UserRepository
}

func NewUserAdminService(users ports.UserRepository) *UserAdminService {
	return &UserAdminService{users: users}
}

func (s *UserAdminService) ListUsers(ctx context.Context, filter UserListFilter) (*UserListResult, error) {
	roles := make([]domain.Role, 0, len(filter.Roles))
	for _, raw := range filter.Roles {
		role, ok := domain.ParseRole(raw)
		if !ok {
			return nil, ErrInvalidRole
		}
		roles = append(roles, role)
	}
	limit, offset := clampPage(filter.Limit, filter.Offset, defaultUserListLimit, maxUserListLimit)

	users, err := s.users.List(ctx, roles, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx, roles)
	if err != nil {
		return nil, err
	}
	return &UserListResult{Users: users, Total: total, Limit: limit, Offset: offset}, nil
}

// clampPage applies the default and ceiling to limit and floors offset at 0.
func clampPage(limit, offset, defaultLimit, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *UserAdminService) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, rawRole string) (*domain.User, error) {
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return nil, ErrInvalidRole
	}
	if actorID == userID && role != domain.RoleAdmin {
		return nil, ErrSelfModification
	}
	user, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserAdminService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return ErrSelfModification
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		switch {
		case isNotFound(err):
			return ErrUserNotFound
		case isForeignKeyViolation(err):
			return ErrUserHasContent
		}
		return err
	}
	return nil
}
