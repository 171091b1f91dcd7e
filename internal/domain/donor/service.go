package donor

import (
	"context"

	"github.com/stembank/stembank/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) PhoneNumbers(ctx context.Context) ([]PhoneEntry, error) {
	entries, err := s.repo.PhoneNumbers(ctx)
	if err != nil {
		return nil, apperr.Query("error fetching phone numbers", err)
	}
	if entries == nil {
		entries = []PhoneEntry{}
	}
	return entries, nil
}
