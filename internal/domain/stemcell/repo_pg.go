package stemcell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stembank/stembank/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// Assign locks the stem-cell row, checks eligibility, reserves it for the
// patient, and appends the Treatment row — all in one transaction. The row
// lock makes concurrent assignments of the same cell first-committer-wins:
// the loser blocks on FOR UPDATE, then observes Status = 'Reserved' and gets
// ErrNotAvailable.
func (r *repoPG) Assign(ctx context.Context, patientID, stemCellID int64) (*Assignment, error) {
	var result *Assignment

	err := db.WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		var status *string
		var overdue bool
		err := tx.QueryRow(txCtx, `
			SELECT "Status",
			       ("ExpiryDate" IS NOT NULL AND "ExpiryDate" < CURRENT_DATE)
			FROM "StemCells"
			WHERE "StemCellID" = $1
			FOR UPDATE`, stemCellID).Scan(&status, &overdue)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotAvailable
		}
		if err != nil {
			return fmt.Errorf("lock stem cell %d: %w", stemCellID, err)
		}

		if overdue || status == nil || *status != StatusAvailable {
			return ErrNotAvailable
		}

		if _, err := tx.Exec(txCtx, `
			UPDATE "StemCells"
			SET "PatientID" = $1, "Status" = $2
			WHERE "StemCellID" = $3`,
			patientID, StatusReserved, stemCellID); err != nil {
			return fmt.Errorf("reserve stem cell %d: %w", stemCellID, err)
		}

		var treatmentID int64
		var treatmentDate time.Time
		if err := tx.QueryRow(txCtx, `
			INSERT INTO "Treatments" ("PatientID", "StemCellID", "TreatmentDate")
			VALUES ($1, $2, CURRENT_DATE)
			RETURNING "TreatmentID", "TreatmentDate"`,
			patientID, stemCellID).Scan(&treatmentID, &treatmentDate); err != nil {
			return fmt.Errorf("record treatment: %w", err)
		}

		result = &Assignment{
			StemCellID:    stemCellID,
			PatientID:     patientID,
			TreatmentID:   treatmentID,
			TreatmentDate: treatmentDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
