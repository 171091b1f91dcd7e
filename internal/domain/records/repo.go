package records

import (
	"context"

	"github.com/stembank/stembank/internal/catalog"
)

// Record is one table row, keyed by column name.
type Record map[string]interface{}

// Repository executes catalog-validated CRUD against a named table. Callers
// are responsible for resolving the table and id field through the catalog
// before invoking it; the repository only ever sees allowlisted identifiers.
type Repository interface {
	ListAll(ctx context.Context, t *catalog.Table) ([]Record, error)
	GetByID(ctx context.Context, t *catalog.Table, idField string, id int64) (Record, error)
	Insert(ctx context.Context, t *catalog.Table, columns []string, values []interface{}) (int64, error)
	Update(ctx context.Context, t *catalog.Table, idField string, id int64, columns []string, values []interface{}) error
	Delete(ctx context.Context, t *catalog.Table, idField string, id int64) error
}
