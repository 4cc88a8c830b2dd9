package service

import (
	"context"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

type ContactListResult struct {
	Items  []domain.ContactSubmission `json:"items"`
	Total  int                        `json:"total"`
	Limit  int                        `json:"limit"`
	Offset int                        `json:"offset"`
}

type ContactService struct {
	contacts ports.ContactRepository
}

func NewContactService(contacts ports.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) List(ctx context.Context, limit, offset int) (*ContactListResult, error) {
	limit, offset = clampPage(limit, offset, defaultModerationListLimit, maxModerationListLimit)
	items, err := s.contacts.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.contacts.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ContactListResult{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// UpdateRole tags a contact as editor or viewer.
func (s *ContactService) UpdateRole(ctx context.Context, id int64, rawRole string) (*domain.ContactSubmission, error) {
	role, ok := domain.ParseContactRole(rawRole)
	if !ok {
		return nil, ErrInvalidContactRole
	}
	item, err := s.contacts.UpdateRole(ctx, id, role)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}
