package donor

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) PhoneNumbers(ctx context.Context) ([]PhoneEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT "DonorID",
		       "FirstName" || ' ' || "LastName",
		       COALESCE("ContactInformation", '')
		FROM "Donors"`)
	if err != nil {
		return nil, fmt.Errorf("donor phone numbers: %w", err)
	}
	defer rows.Close()

	var entries []PhoneEntry
	for rows.Next() {
		var e PhoneEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scan donor phone entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donor phone entries: %w", err)
	}
	return entries, nil
}
