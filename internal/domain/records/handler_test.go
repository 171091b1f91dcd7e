package records

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestHandlerGet_List(t *testing.T) {
	repo := &mockRepo{records: []Record{{"HospitalID": int64(1)}, {"HospitalID": int64(2)}}}
	h := NewHandler(NewService(repo))

	c, rec := newTestContext(http.MethodGet, "/api/hospitals", "")
	c.SetParamNames("table")
	c.SetParamValues("hospitals")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var got []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("rows = %d, want 2", len(got))
	}
}

func TestHandlerGet_EmptyTableIsEmptyArray(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	c, rec := newTestContext(http.MethodGet, "/api/donors", "")
	c.SetParamNames("table")
	c.SetParamValues("donors")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestHandlerGet_ByID(t *testing.T) {
	repo := &mockRepo{byID: Record{"DonorID": int64(5), "FirstName": "Lina"}}
	h := NewHandler(NewService(repo))

	c, rec := newTestContext(http.MethodGet, "/api/donors?id=5", "")
	c.SetParamNames("table")
	c.SetParamValues("donors")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["FirstName"] != "Lina" {
		t.Errorf("record = %v", got)
	}
	if repo.lastID != 5 {
		t.Errorf("queried id = %d, want 5", repo.lastID)
	}
}

func TestHandlerGet_NonNumericID(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	c, _ := newTestContext(http.MethodGet, "/api/donors?id=abc", "")
	c.SetParamNames("table")
	c.SetParamValues("donors")

	err := h.Get(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestHandlerGet_InjectionAttemptRejected(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	c, _ := newTestContext(http.MethodGet, "/api/x", "")
	c.SetParamNames("table")
	c.SetParamValues("Users; DROP TABLE Users")

	err := h.Get(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestHandlerCreate(t *testing.T) {
	repo := &mockRepo{insertID: 11}
	h := NewHandler(NewService(repo))

	c, rec := newTestContext(http.MethodPost, "/api/hospitals", `{"Name":"Central","Location":"Amman"}`)
	c.SetParamNames("table")
	c.SetParamValues("hospitals")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["insertId"] != float64(11) {
		t.Errorf("insertId = %v, want 11", got["insertId"])
	}
}

func TestHandlerCreate_EmptyBody(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	c, _ := newTestContext(http.MethodPost, "/api/hospitals", `{}`)
	c.SetParamNames("table")
	c.SetParamValues("hospitals")

	err := h.Create(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestHandlerUpdate_MissingID(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	c, _ := newTestContext(http.MethodPut, "/api/hospitals", `{"Name":"x"}`)
	c.SetParamNames("table")
	c.SetParamValues("hospitals")

	err := h.Update(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestHandlerUpdate(t *testing.T) {
	repo := &mockRepo{}
	h := NewHandler(NewService(repo))

	c, rec := newTestContext(http.MethodPut, "/api/stemcells?id=3", `{"Status":"Available"}`)
	c.SetParamNames("table")
	c.SetParamValues("stemcells")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if repo.lastID != 3 || repo.lastIDField != "StemCellID" {
		t.Errorf("update target = %s=%d", repo.lastIDField, repo.lastID)
	}
}

func TestHandlerDelete(t *testing.T) {
	repo := &mockRepo{}
	h := NewHandler(NewService(repo))

	c, rec := newTestContext(http.MethodDelete, "/api/donors?id=9", "")
	c.SetParamNames("table")
	c.SetParamValues("donors")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if repo.lastID != 9 {
		t.Errorf("deleted id = %d, want 9", repo.lastID)
	}
}

func TestHandlerDelete_MissingID(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	c, _ := newTestContext(http.MethodDelete, "/api/donors", "")
	c.SetParamNames("table")
	c.SetParamValues("donors")

	err := h.Delete(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}
