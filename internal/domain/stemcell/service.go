package stemcell

import (
	"context"
	"errors"

	"github.com/stembank/stembank/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Assign reserves stemCellID for patientID. An ineligible cell yields an
// AssignmentConflict; anything else from the database is a query failure.
func (s *Service) Assign(ctx context.Context, patientID, stemCellID int64) (*Assignment, error) {
	if patientID <= 0 || stemCellID <= 0 {
		return nil, apperr.Validation("patientId and stemCellId are required")
	}

	a, err := s.repo.Assign(ctx, patientID, stemCellID)
	if err != nil {
		if errors.Is(err, ErrNotAvailable) {
			return nil, apperr.Conflict("stem cell is not available")
		}
		return nil, apperr.Query("error assigning stem cell", err)
	}
	return a, nil
}
