package records

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stembank/stembank/internal/apperr"
	"github.com/stembank/stembank/internal/catalog"
)

type mockRepo struct {
	records []Record
	byID    Record
	failErr error

	lastTable   string
	lastIDField string
	lastID      int64
	lastColumns []string
	lastValues  []interface{}
	insertID    int64
}

func (m *mockRepo) ListAll(ctx context.Context, t *catalog.Table) ([]Record, error) {
	m.lastTable = t.Name
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.records, nil
}

func (m *mockRepo) GetByID(ctx context.Context, t *catalog.Table, idField string, id int64) (Record, error) {
	m.lastTable, m.lastIDField, m.lastID = t.Name, idField, id
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.byID, nil
}

func (m *mockRepo) Insert(ctx context.Context, t *catalog.Table, columns []string, values []interface{}) (int64, error) {
	m.lastTable, m.lastColumns, m.lastValues = t.Name, columns, values
	if m.failErr != nil {
		return 0, m.failErr
	}
	return m.insertID, nil
}

func (m *mockRepo) Update(ctx context.Context, t *catalog.Table, idField string, id int64, columns []string, values []interface{}) error {
	m.lastTable, m.lastIDField, m.lastID = t.Name, idField, id
	m.lastColumns, m.lastValues = columns, values
	return m.failErr
}

func (m *mockRepo) Delete(ctx context.Context, t *catalog.Table, idField string, id int64) error {
	m.lastTable, m.lastIDField, m.lastID = t.Name, idField, id
	return m.failErr
}

func TestList(t *testing.T) {
	repo := &mockRepo{records: []Record{{"HospitalID": int64(1), "Name": "Central"}}}
	svc := NewService(repo)

	recs, err := svc.List(context.Background(), "hospitals")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 || recs[0]["Name"] != "Central" {
		t.Errorf("unexpected records: %v", recs)
	}
	if repo.lastTable != catalog.TableHospitals {
		t.Errorf("resolved table = %q, want canonical %q", repo.lastTable, catalog.TableHospitals)
	}
}

func TestList_RejectsMalformedTable(t *testing.T) {
	svc := NewService(&mockRepo{})

	for _, table := range []string{
		"Users; DROP TABLE Users",
		`Hospitals" --`,
		"a b",
		"",
	} {
		_, err := svc.List(context.Background(), table)
		if err == nil {
			t.Fatalf("List(%q) should fail", table)
		}
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("List(%q) kind = %v, want validation", table, apperr.KindOf(err))
		}
	}
}

func TestList_UnknownTableIsQueryError(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.List(context.Background(), "Payments")
	if err == nil {
		t.Fatal("expected error for unregistered table")
	}
	if apperr.KindOf(err) != apperr.KindQuery {
		t.Errorf("kind = %v, want query", apperr.KindOf(err))
	}
}

func TestGet_DefaultIDField(t *testing.T) {
	repo := &mockRepo{byID: Record{"DonorID": int64(7)}}
	svc := NewService(repo)

	tests := []struct {
		idField string
		want    string
	}{
		{"", "DonorID"},
		{"id", "DonorID"},
		{"HospitalID", "HospitalID"},
	}
	for _, tt := range tests {
		if _, err := svc.Get(context.Background(), "patients", tt.idField, 7); err != nil {
			t.Fatalf("Get(idField=%q): %v", tt.idField, err)
		}
		if repo.lastIDField != tt.want {
			t.Errorf("Get(idField=%q) resolved %q, want %q", tt.idField, repo.lastIDField, tt.want)
		}
	}
}

func TestGet_IDFieldValidation(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.Get(context.Background(), "donors", "Name'--", 1)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("malformed id field: kind = %v, want validation", apperr.KindOf(err))
	}

	_, err = svc.Get(context.Background(), "donors", "Salary", 1)
	if err == nil {
		t.Fatal("expected error for column not in table")
	}
	if apperr.KindOf(err) != apperr.KindQuery {
		t.Errorf("unknown column: kind = %v, want query", apperr.KindOf(err))
	}
}

func TestCreate(t *testing.T) {
	repo := &mockRepo{insertID: 42}
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), "hospitals", map[string]interface{}{
		"Name":     "Central",
		"Location": "Amman",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 42 {
		t.Errorf("insert id = %d, want 42", id)
	}
	// Columns arrive in a stable sorted order with values aligned.
	wantCols := []string{"Location", "Name"}
	if !reflect.DeepEqual(repo.lastColumns, wantCols) {
		t.Errorf("columns = %v, want %v", repo.lastColumns, wantCols)
	}
	wantVals := []interface{}{"Amman", "Central"}
	if !reflect.DeepEqual(repo.lastValues, wantVals) {
		t.Errorf("values = %v, want %v", repo.lastValues, wantVals)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.Create(context.Background(), "hospitals", map[string]interface{}{})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("empty fields: kind = %v, want validation", apperr.KindOf(err))
	}

	_, err = svc.Create(context.Background(), "hospitals", map[string]interface{}{
		`Name"; DROP TABLE Users; --`: "x",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("malformed column: kind = %v, want validation", apperr.KindOf(err))
	}

	_, err = svc.Create(context.Background(), "hospitals", map[string]interface{}{
		"Budget": 100,
	})
	if err == nil {
		t.Fatal("expected error for column outside the table")
	}
	if apperr.KindOf(err) != apperr.KindQuery {
		t.Errorf("unknown column: kind = %v, want query", apperr.KindOf(err))
	}
}

func TestUpdate(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	err := svc.Update(context.Background(), "stemcells", "", 3, map[string]interface{}{
		"Status": "Available",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.lastIDField != "StemCellID" || repo.lastID != 3 {
		t.Errorf("update target = %s=%d, want StemCellID=3", repo.lastIDField, repo.lastID)
	}
}

func TestDelete_RepoFailureWrapped(t *testing.T) {
	repo := &mockRepo{failErr: errors.New("pg down")}
	svc := NewService(repo)

	err := svc.Delete(context.Background(), "donors", "", 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if apperr.KindOf(err) != apperr.KindQuery {
		t.Errorf("kind = %v, want query", apperr.KindOf(err))
	}
	if apperr.Message(err) != "error deleting data" {
		t.Errorf("message = %q", apperr.Message(err))
	}
}
