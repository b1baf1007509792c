package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"homeplan/internal/store"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(nil, store.NewMemoryRepository(), sensitivity.DefaultSweepConfig(), "test")
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleVersion(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/version = %d, expected 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %s, expected test", resp["version"])
	}
}

func TestHandleSummary(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h, "/api/summary", plan.DefaultInputs())
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/summary = %d, expected 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Summary       plan.Summary `json:"summary"`
		Affordability string       `json:"affordability"`
		AutoBankLoan  float64      `json:"autoBankLoan"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Summary.RegTax != 14000 {
		t.Errorf("summary.regTax = %.2f, expected 14000", resp.Summary.RegTax)
	}
	if resp.Affordability == "" {
		t.Errorf("affordability missing from response")
	}
	if resp.AutoBankLoan != 993000 {
		t.Errorf("autoBankLoan = %.2f, expected 993000", resp.AutoBankLoan)
	}
}

func TestHandleSummaryInvalidBody(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader("{nope"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body = %d, expected 400", w.Code)
	}
}

func TestHandleSchedule(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h, "/api/schedule", map[string]any{
		"principal": 120000,
		"ratePct":   0,
		"termYears": 10,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/schedule = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Monthly float64 `json:"monthly"`
		Rows    []struct {
			Month   int     `json:"month"`
			Balance float64 `json:"balance"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Monthly != 1000 {
		t.Errorf("monthly = %.2f, expected 1000", resp.Monthly)
	}
	if len(resp.Rows) != 120 {
		t.Errorf("rows = %d, expected 120", len(resp.Rows))
	}
	if resp.Rows[len(resp.Rows)-1].Balance != 0 {
		t.Errorf("final balance = %.2f, expected 0", resp.Rows[len(resp.Rows)-1].Balance)
	}
}

func TestHandleSensitivity(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h, "/api/sensitivity", map[string]any{
		"inputs": plan.DefaultInputs(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/sensitivity = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Amounts []float64  `json:"amounts"`
		Rates   []float64  `json:"rates"`
		Tiers   [][]string `json:"tiers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Amounts) != 9 || len(resp.Rates) != 11 {
		t.Errorf("grid dimensions = %dx%d, expected 9x11", len(resp.Amounts), len(resp.Rates))
	}
	if len(resp.Tiers) != len(resp.Amounts) {
		t.Errorf("tiers rows = %d, expected %d", len(resp.Tiers), len(resp.Amounts))
	}
}

func TestHandleSensitivityInvalidSweep(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h, "/api/sensitivity", map[string]any{
		"inputs": plan.DefaultInputs(),
		"sweep": sensitivity.SweepConfig{
			MinAmount: 100, MaxAmount: 50, StepAmount: 10,
			MinRate: 1, MaxRate: 2, StepRate: 0.5,
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid sweep = %d, expected 400: %s", w.Code, w.Body.String())
	}
}

func TestHandleAdvisor(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h, "/api/advisor", plan.DefaultInputs())
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/advisor = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Analysis struct {
			OverallRisk string `json:"overallRisk"`
			Outlooks    []struct {
				Name string `json:"name"`
			} `json:"outlooks"`
		} `json:"analysis"`
		Report string `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Analysis.Outlooks) != 3 {
		t.Errorf("outlooks = %d, expected 3", len(resp.Analysis.Outlooks))
	}
	if resp.Report == "" {
		t.Errorf("report missing from response")
	}
}

func TestPlanLifecycle(t *testing.T) {
	h := newTestHandler(t)

	// Create
	w := postJSON(t, h, "/api/plans/", store.Plan{Name: "baseline", Inputs: plan.DefaultInputs()})
	if w.Code != http.StatusCreated {
		t.Fatalf("create plan = %d: %s", w.Code, w.Body.String())
	}
	var created store.Plan
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created plan has no ID")
	}

	// Get
	req := httptest.NewRequest(http.MethodGet, "/api/plans/"+created.ID, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get plan = %d", rec.Code)
	}

	// Update
	created.Name = "renamed"
	data, _ := json.Marshal(created)
	req = httptest.NewRequest(http.MethodPut, "/api/plans/"+created.ID, bytes.NewReader(data))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update plan = %d: %s", rec.Code, rec.Body.String())
	}

	// Export carries the plan
	req = httptest.NewRequest(http.MethodGet, "/api/plans/export", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export plans = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "renamed") {
		t.Errorf("export missing updated plan name")
	}

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/plans/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete plan = %d", rec.Code)
	}

	// Gone
	req = httptest.NewRequest(http.MethodGet, "/api/plans/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted plan = %d, expected 404", rec.Code)
	}
}

func TestPlanImport(t *testing.T) {
	h := newTestHandler(t)

	doc := fmt.Sprintf("plans:\n  - name: imported\n    inputs:\n      projectName: %q\n      purchasePrice: 500000\n", "Imported project")
	req := httptest.NewRequest(http.MethodPost, "/api/plans/import", strings.NewReader(doc))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import plans = %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["imported"] != 1 {
		t.Errorf("imported = %d, expected 1", resp["imported"])
	}
}
