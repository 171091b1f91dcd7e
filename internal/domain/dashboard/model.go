// Package dashboard produces the read-only summary snapshot: overview
// counts, the most recent doctors and donors, and per-hospital storage
// utilisation. It never mutates state, and any sub-query failure fails the
// whole snapshot.
package dashboard

// OverviewCard is one headline figure.
type OverviewCard struct {
	Title  string `json:"title"`
	Value  int    `json:"value"`
	Change string `json:"change"`
}

// RecentUser is a doctor or donor ranked by recency.
type RecentUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Hospital string `json:"hospital"`
}

// StorageData is one hospital's aggregate storage capacity and load.
type StorageData struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
	Used  int64  `json:"used"`
}

// Dashboard is the composite snapshot returned by GET /api/dashboard.
type Dashboard struct {
	OverviewCards []OverviewCard `json:"overviewCards"`
	RecentUsers   []RecentUser   `json:"recentUsers"`
	StorageData   []StorageData  `json:"storageData"`
}
