package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stembank/stembank/internal/catalog"
	"github.com/stembank/stembank/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// quoteIdent double-quotes an already-validated identifier so that the
// mixed-case column names from the schema resolve correctly in Postgres.
// It must never be called with caller-supplied text that has not passed the
// catalog allowlist.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

func (r *repoPG) ListAll(ctx context.Context, t *catalog.Table) ([]Record, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT * FROM `+quoteIdent(t.Name))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.Name, err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *repoPG) GetByID(ctx context.Context, t *catalog.Table, idField string, id int64) (Record, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = $1 LIMIT 1`,
		quoteIdent(t.Name), quoteIdent(idField))
	rows, err := r.conn(ctx).Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get %s by %s: %w", t.Name, idField, err)
	}
	defer rows.Close()

	recs, err := collectRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		// Absent rows are not an error.
		return nil, nil
	}
	return recs[0], nil
}

func (r *repoPG) Insert(ctx context.Context, t *catalog.Table, columns []string, values []interface{}) (int64, error) {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		quoteIdent(t.Name),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
		quoteIdent(t.IDColumn))

	var id int64
	if err := r.conn(ctx).QueryRow(ctx, query, values...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", t.Name, err)
	}
	return id, nil
}

func (r *repoPG) Update(ctx context.Context, t *catalog.Table, idField string, id int64, columns []string, values []interface{}) error {
	// Writes to StemCells run inside a transaction so the expiry override
	// commits atomically with the caller's update. A transaction already
	// carried in ctx is joined rather than shadowed by a fresh one.
	if t.Name == catalog.TableStemCells {
		if tx := db.TxFromContext(ctx); tx != nil {
			if err := execUpdate(ctx, tx, t, idField, id, columns, values); err != nil {
				return err
			}
			return expireIfOverdue(ctx, tx, idField, id)
		}
		return db.WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
			if err := execUpdate(txCtx, tx, t, idField, id, columns, values); err != nil {
				return err
			}
			return expireIfOverdue(txCtx, tx, idField, id)
		})
	}
	return execUpdate(ctx, r.conn(ctx), t, idField, id, columns, values)
}

func execUpdate(ctx context.Context, q queryable, t *catalog.Table, idField string, id int64, columns []string, values []interface{}) error {
	assignments := make([]string, len(columns))
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", quoteIdent(col), i+1)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`,
		quoteIdent(t.Name),
		strings.Join(assignments, ", "),
		quoteIdent(idField),
		len(columns)+1)

	args := append(append([]interface{}{}, values...), id)
	// Zero rows affected is a no-op success.
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", t.Name, err)
	}
	return nil
}

// expireIfOverdue forces Status to 'Expired' on a stem-cell row whose
// ExpiryDate has passed, overriding whatever status the caller just wrote.
func expireIfOverdue(ctx context.Context, q queryable, idField string, id int64) error {
	query := fmt.Sprintf(`UPDATE "StemCells" SET "Status" = 'Expired'
		WHERE %s = $1 AND "ExpiryDate" IS NOT NULL AND "ExpiryDate" < CURRENT_DATE`,
		quoteIdent(idField))
	if _, err := q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("enforce stem cell expiry: %w", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, t *catalog.Table, idField string, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		quoteIdent(t.Name), quoteIdent(idField))
	if _, err := r.conn(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete from %s: %w", t.Name, err)
	}
	return nil
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	fields := rows.FieldDescriptions()
	var recs []Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		rec := make(Record, len(fields))
		for i, fd := range fields {
			rec[string(fd.Name)] = values[i]
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return recs, nil
}
