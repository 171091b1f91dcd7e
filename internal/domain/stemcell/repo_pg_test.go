package stemcell

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stembank/stembank/internal/platform/db"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, url, 8, 1)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := db.NewMigrator(pool, "../../../migrations").Up(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func insertPatient(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO "Patients" ("FirstName", "LastName")
		VALUES ('Test', 'Patient')
		RETURNING "PatientID"`).Scan(&id)
	if err != nil {
		t.Fatalf("insert patient: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM "Patients" WHERE "PatientID" = $1`, id)
	})
	return id
}

func insertStemCell(t *testing.T, pool *pgxpool.Pool, status string, expiry time.Time) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO "StemCells" ("Type", "ExpiryDate", "Status")
		VALUES ('Cord Blood', $1, $2)
		RETURNING "StemCellID"`, expiry, status).Scan(&id)
	if err != nil {
		t.Fatalf("insert stem cell: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = pool.Exec(ctx, `DELETE FROM "Treatments" WHERE "StemCellID" = $1`, id)
		_, _ = pool.Exec(ctx, `DELETE FROM "StemCells" WHERE "StemCellID" = $1`, id)
	})
	return id
}

func TestRepoAssign_ConcurrentAttemptsProduceOneTreatment(t *testing.T) {
	pool := testPool(t)
	repo := NewRepoPG(pool)
	ctx := context.Background()

	patientID := insertPatient(t, pool)
	cellID := insertStemCell(t, pool, StatusAvailable, time.Now().AddDate(0, 1, 0))

	const attempts = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	losses := 0
	var unexpected error
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Assign(ctx, patientID, cellID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrNotAvailable):
				losses++
			default:
				if unexpected == nil {
					unexpected = err
				}
			}
		}()
	}
	wg.Wait()

	if unexpected != nil {
		t.Fatalf("assign failed: %v", unexpected)
	}
	if wins != 1 {
		t.Errorf("winners = %d, want exactly 1", wins)
	}
	if losses != attempts-1 {
		t.Errorf("losers = %d, want %d", losses, attempts-1)
	}

	var treatments int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM "Treatments" WHERE "StemCellID" = $1`, cellID).Scan(&treatments); err != nil {
		t.Fatalf("count treatments: %v", err)
	}
	if treatments != 1 {
		t.Errorf("treatment rows = %d, want 1", treatments)
	}

	var status string
	var assignedTo *int64
	if err := pool.QueryRow(ctx,
		`SELECT "Status", "PatientID" FROM "StemCells" WHERE "StemCellID" = $1`, cellID).
		Scan(&status, &assignedTo); err != nil {
		t.Fatalf("read stem cell: %v", err)
	}
	if status != StatusReserved {
		t.Errorf("status = %q, want Reserved", status)
	}
	if assignedTo == nil || *assignedTo != patientID {
		t.Errorf("assigned patient = %v, want %d", assignedTo, patientID)
	}
}

func TestRepoAssign_ExpiredCellLeavesNoStateChange(t *testing.T) {
	pool := testPool(t)
	repo := NewRepoPG(pool)
	ctx := context.Background()

	patientID := insertPatient(t, pool)
	cellID := insertStemCell(t, pool, StatusAvailable, time.Now().AddDate(0, 0, -1))

	_, err := repo.Assign(ctx, patientID, cellID)
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("err = %v, want ErrNotAvailable", err)
	}

	var status string
	var assignedTo *int64
	if err := pool.QueryRow(ctx,
		`SELECT "Status", "PatientID" FROM "StemCells" WHERE "StemCellID" = $1`, cellID).
		Scan(&status, &assignedTo); err != nil {
		t.Fatalf("read stem cell: %v", err)
	}
	if status != StatusAvailable || assignedTo != nil {
		t.Errorf("row changed after failed assign: status=%q patient=%v", status, assignedTo)
	}

	var treatments int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM "Treatments" WHERE "StemCellID" = $1`, cellID).Scan(&treatments); err != nil {
		t.Fatalf("count treatments: %v", err)
	}
	if treatments != 0 {
		t.Errorf("treatment rows = %d, want 0", treatments)
	}
}

func TestRepoAssign_MissingCell(t *testing.T) {
	pool := testPool(t)
	repo := NewRepoPG(pool)

	patientID := insertPatient(t, pool)

	// An id the identity column cannot plausibly have reached.
	_, err := repo.Assign(context.Background(), patientID, 2000000000)
	if !errors.Is(err, ErrNotAvailable) {
		t.Errorf("err = %v, want ErrNotAvailable", err)
	}
}
