package dashboard

import "context"

// Counts holds the overview totals gathered in one pass.
type Counts struct {
	TotalUsers      int // doctors + donors
	TotalHospitals  int
	StorageUnits    int
	PendingRequests int
	TotalStemCells  int
}

type Repository interface {
	Counts(ctx context.Context) (*Counts, error)
	RecentUsers(ctx context.Context, perRole, cap int) ([]RecentUser, error)
	StorageByHospital(ctx context.Context, cap int) ([]StorageData, error)
}
