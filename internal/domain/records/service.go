package records

import (
	"context"
	"sort"

	"github.com/stembank/stembank/internal/apperr"
	"github.com/stembank/stembank/internal/catalog"
)

// Service validates every identifier against the catalog before any query is
// built, then delegates to the repository. Table names, id fields, and field
// keys come straight from HTTP input, so nothing passes through unchecked.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// resolveTable maps a caller-supplied table name to its catalog descriptor.
// Malformed names are validation errors; well-formed names that are not in
// the catalog are query errors, matching what the database itself would
// report for a missing table.
func resolveTable(table string) (*catalog.Table, error) {
	if !catalog.ValidIdentifier(table) {
		return nil, apperr.Validation("invalid table name %q", table)
	}
	t, ok := catalog.Lookup(table)
	if !ok {
		return nil, apperr.Query("unknown table "+table, nil)
	}
	return t, nil
}

// resolveIDField validates an optional caller-supplied id field, defaulting
// to the table's key column.
func resolveIDField(t *catalog.Table, idField string) (string, error) {
	if idField == "" || idField == "id" {
		return t.IDColumn, nil
	}
	if !catalog.ValidIdentifier(idField) {
		return "", apperr.Validation("invalid id field %q", idField)
	}
	if !t.HasColumn(idField) {
		return "", apperr.Query("unknown column "+idField+" in "+t.Name, nil)
	}
	return idField, nil
}

// splitFields validates field keys and returns parallel column/value slices
// in a stable order.
func splitFields(t *catalog.Table, fields map[string]interface{}) ([]string, []interface{}, error) {
	if len(fields) == 0 {
		return nil, nil, apperr.Validation("at least one field is required")
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		if !catalog.ValidIdentifier(col) {
			return nil, nil, apperr.Validation("invalid column name %q", col)
		}
		if !t.HasColumn(col) {
			return nil, nil, apperr.Query("unknown column "+col+" in "+t.Name, nil)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	values := make([]interface{}, len(columns))
	for i, col := range columns {
		values[i] = fields[col]
	}
	return columns, values, nil
}

// List returns all rows of table in storage order.
func (s *Service) List(ctx context.Context, table string) ([]Record, error) {
	t, err := resolveTable(table)
	if err != nil {
		return nil, err
	}
	recs, err := s.repo.ListAll(ctx, t)
	if err != nil {
		return nil, apperr.Query("error fetching data", err)
	}
	return recs, nil
}

// Get returns the first row where idField = id, or nil when absent.
func (s *Service) Get(ctx context.Context, table, idField string, id int64) (Record, error) {
	t, err := resolveTable(table)
	if err != nil {
		return nil, err
	}
	col, err := resolveIDField(t, idField)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.GetByID(ctx, t, col, id)
	if err != nil {
		return nil, apperr.Query("error fetching data", err)
	}
	return rec, nil
}

// Create inserts a row whose columns are exactly the keys of fields and
// returns the new row's key value.
func (s *Service) Create(ctx context.Context, table string, fields map[string]interface{}) (int64, error) {
	t, err := resolveTable(table)
	if err != nil {
		return 0, err
	}
	columns, values, err := splitFields(t, fields)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.Insert(ctx, t, columns, values)
	if err != nil {
		return 0, apperr.Query("error creating data", err)
	}
	return id, nil
}

// Update sets each column of fields on the row where idField = id. A missing
// row is a no-op success.
func (s *Service) Update(ctx context.Context, table, idField string, id int64, fields map[string]interface{}) error {
	t, err := resolveTable(table)
	if err != nil {
		return err
	}
	col, err := resolveIDField(t, idField)
	if err != nil {
		return err
	}
	columns, values, err := splitFields(t, fields)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, t, col, id, columns, values); err != nil {
		return apperr.Query("error updating data", err)
	}
	return nil
}

// Delete removes the row where idField = id. A missing row is a no-op
// success.
func (s *Service) Delete(ctx context.Context, table, idField string, id int64) error {
	t, err := resolveTable(table)
	if err != nil {
		return err
	}
	col, err := resolveIDField(t, idField)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, t, col, id); err != nil {
		return apperr.Query("error deleting data", err)
	}
	return nil
}
