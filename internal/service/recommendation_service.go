package service

import (
	"context"
	"strings"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
)

const (
	defaultModerationListLimit = 50
	maxModerationListLimit     = 200
)

type RecommendationListFilter struct {
	Approved *bool
	Limit    int
	Offset   int
}

type RecommendationListResult struct {
	Items  []domain.Recommendation `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

type RecommendationInput struct {
	Name           string
	Position       string
	Company        string
	Recommendation string
	Approved       *bool
}

// RecommendationService backs the admin moderation queue for testimonials.
type RecommendationService struct {
	recs ports.RecommendationRepository
}

func NewRecommendationService(recs ports.RecommendationRepository) *RecommendationService {
	return &RecommendationService{recs: recs}
}

func (s *RecommendationService) List(ctx context.Context, filter RecommendationListFilter) (*RecommendationListResult, error) {
	limit, offset := clampPage(filter.Limit, filter.Offset, defaultModerationListLimit, maxModerationListLimit)
	items, err := s.recs.List(ctx, filter.Approved, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.recs.Count(ctx, filter.Approved)
	if err != nil {
		return nil, err
	}
	return &RecommendationListResult{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *RecommendationService) Update(ctx context.Context, id int64, input RecommendationInput) (*domain.Recommendation, error) {
	edit := domain.RecommendationEdit{
		Name:           strings.TrimSpace(input.Name),
		Position:       strings.TrimSpace(input.Position),
		Company:        strings.TrimSpace(input.Company),
		Recommendation: strings.TrimSpace(input.Recommendation),
		Approved:       input.Approved,
	}
	if edit.Name == "" || edit.Position == "" || edit.Company == "" || edit.Recommendation == "" {
		return nil, ErrRecommendationValidation
	}
	item, err := s.recs.Update(ctx, id, edit)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *RecommendationService) Delete(ctx context.Context, id int64) error {
	if err := s.recs.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrRecommendationNotFound
		}
		return err
	}
	return nil
}
