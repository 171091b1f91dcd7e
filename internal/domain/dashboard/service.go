package dashboard

import (
	"context"

	"github.com/stembank/stembank/internal/apperr"
)

const (
	recentPerRole = 2
	recentCap     = 4
	storageCap    = 4
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Snapshot assembles the full dashboard. There is no partial dashboard: the
// first failing sub-query fails the call.
func (s *Service) Snapshot(ctx context.Context) (*Dashboard, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, apperr.Query("error fetching dashboard data", err)
	}

	recent, err := s.repo.RecentUsers(ctx, recentPerRole, recentCap)
	if err != nil {
		return nil, apperr.Query("error fetching dashboard data", err)
	}

	storage, err := s.repo.StorageByHospital(ctx, storageCap)
	if err != nil {
		return nil, apperr.Query("error fetching dashboard data", err)
	}

	if recent == nil {
		recent = []RecentUser{}
	}
	if storage == nil {
		storage = []StorageData{}
	}

	return &Dashboard{
		OverviewCards: []OverviewCard{
			{Title: "Total Users", Value: counts.TotalUsers, Change: "+5%"},
			{Title: "Total Hospitals", Value: counts.TotalHospitals, Change: "+2%"},
			{Title: "Storage Units", Value: counts.StorageUnits, Change: "0%"},
			{Title: "Pending Requests", Value: counts.PendingRequests, Change: "-10%"},
			{Title: "Available Stem Cells", Value: counts.TotalStemCells, Change: "+15%"},
		},
		RecentUsers: recent,
		StorageData: storage,
	}, nil
}
