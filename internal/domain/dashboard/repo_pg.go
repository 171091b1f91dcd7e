package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM "Doctors") + (SELECT COUNT(*) FROM "Donors"),
			(SELECT COUNT(*) FROM "Hospitals"),
			(SELECT COUNT(*) FROM "StorageUnits"),
			(SELECT COUNT(*) FROM "MarketplaceRequests" WHERE "Status" = 'pending'),
			(SELECT COUNT(*) FROM "StemCells")`).
		Scan(&c.TotalUsers, &c.TotalHospitals, &c.StorageUnits, &c.PendingRequests, &c.TotalStemCells)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &c, nil
}

// RecentUsers interleaves the perRole newest doctors and donors, newest
// first, capped at cap. Recency ranks by identity value, matching the
// auto-assigned key order.
func (r *repoPG) RecentUsers(ctx context.Context, perRole, cap int) ([]RecentUser, error) {
	rows, err := r.pool.Query(ctx, `
		(SELECT d."DoctorID" AS id,
		        d."FirstName" || ' ' || d."LastName" AS name,
		        'Doctor' AS role,
		        COALESCE(h."Name", 'N/A') AS hospital
		 FROM "Doctors" d
		 LEFT JOIN "Hospitals" h ON d."HospitalID" = h."HospitalID"
		 ORDER BY d."DoctorID" DESC
		 LIMIT $1)
		UNION ALL
		(SELECT "DonorID" AS id,
		        "FirstName" || ' ' || "LastName" AS name,
		        'Donor' AS role,
		        'N/A' AS hospital
		 FROM "Donors"
		 ORDER BY "DonorID" DESC
		 LIMIT $1)
		ORDER BY id DESC
		LIMIT $2`, perRole, cap)
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	defer rows.Close()

	var users []RecentUser
	for rows.Next() {
		var u RecentUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.Hospital); err != nil {
			return nil, fmt.Errorf("scan recent user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent users: %w", err)
	}
	return users, nil
}

func (r *repoPG) StorageByHospital(ctx context.Context, cap int) ([]StorageData, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT h."Name",
		       COALESCE(SUM(s."Capacity"), 0),
		       COALESCE(SUM(s."CurrentLoad"), 0)
		FROM "Hospitals" h
		JOIN "StorageUnits" s ON h."HospitalID" = s."HospitalID"
		GROUP BY h."HospitalID", h."Name"
		LIMIT $1`, cap)
	if err != nil {
		return nil, fmt.Errorf("storage by hospital: %w", err)
	}
	defer rows.Close()

	var data []StorageData
	for rows.Next() {
		var d StorageData
		if err := rows.Scan(&d.Name, &d.Total, &d.Used); err != nil {
			return nil, fmt.Errorf("scan storage data: %w", err)
		}
		data = append(data, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate storage data: %w", err)
	}
	return data, nil
}
