// Package server exposes the calculation engine and the plan store over a
// JSON HTTP API. All classifications (affordability, color tiers, risk)
// come from the engine; clients must not recompute them with their own
// thresholds.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"homeplan/internal/store"
	"homeplan/pkg/advisor"
	"homeplan/pkg/loans"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

type handler struct {
	logger  *zap.Logger
	repo    store.Repository
	sweep   sensitivity.SweepConfig
	version string
}

// NewHandler constructs the HTTP handler serving the engine API.
func NewHandler(logger *zap.Logger, repo store.Repository, sweep sensitivity.SweepConfig, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if repo == nil {
		repo = store.NewMemoryRepository()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, repo: repo, sweep: sweep, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/version", h.handleVersion)
	r.Post("/api/summary", h.handleSummary)
	r.Post("/api/schedule", h.handleSchedule)
	r.Post("/api/sensitivity", h.handleSensitivity)
	r.Post("/api/advisor", h.handleAdvisor)

	r.Route("/api/plans", func(r chi.Router) {
		r.Get("/", h.handlePlanList)
		r.Post("/", h.handlePlanCreate)
		r.Post("/import", h.handlePlanImport)
		r.Get("/export", h.handlePlanExport)
		r.Get("/{id}", h.handlePlanGet)
		r.Put("/{id}", h.handlePlanUpdate)
		r.Delete("/{id}", h.handlePlanDelete)
	})

	return r
}

type summaryResponse struct {
	Summary       plan.Summary       `json:"summary"`
	Affordability plan.Affordability `json:"affordability"`
	AutoBankLoan  float64            `json:"autoBankLoan"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	var in plan.Inputs
	if !h.decode(w, r, &in) {
		return
	}

	s := plan.Summarize(in)
	h.writeJSON(w, http.StatusOK, summaryResponse{
		Summary:       s,
		Affordability: s.Classify(),
		AutoBankLoan:  plan.AutoBankLoan(in),
	})
}

type scheduleRequest struct {
	Principal float64 `json:"principal"`
	RatePct   float64 `json:"ratePct"`
	TermYears int     `json:"termYears"`
}

type scheduleResponse struct {
	Monthly float64     `json:"monthly"`
	Rows    []loans.Row `json:"rows"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	rate := req.RatePct / 100
	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Monthly: loans.CalculateMonthlyPayment(rate, req.TermYears, req.Principal),
		Rows:    loans.BuildSchedule(req.Principal, rate, req.TermYears),
	})
}

type sensitivityRequest struct {
	Inputs plan.Inputs              `json:"inputs"`
	Sweep  *sensitivity.SweepConfig `json:"sweep,omitempty"`
}

type sensitivityResponse struct {
	Grid       *sensitivity.Grid    `json:"grid"`
	Amounts    []float64            `json:"amounts"`
	Rates      []float64            `json:"rates"`
	MinMonthly float64              `json:"minMonthly"`
	MaxMonthly float64              `json:"maxMonthly"`
	Tiers      [][]sensitivity.Tier `json:"tiers"`
}

func (h *handler) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req sensitivityRequest
	if !h.decode(w, r, &req) {
		return
	}

	sweep := h.sweep
	if req.Sweep != nil {
		sweep = *req.Sweep
	}

	s := plan.Summarize(req.Inputs)
	grid, err := sensitivity.Generate(sweep, req.Inputs.BankTermYears, s.FamilyMonthly, req.Inputs.NetIncomeMonthly)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	min, max := grid.MonthlyRange()
	tiers := make([][]sensitivity.Tier, len(grid.Rows))
	for i, row := range grid.Rows {
		tiers[i] = make([]sensitivity.Tier, len(row))
		for j, cell := range row {
			tiers[i][j] = sensitivity.ColorTier(cell, min, max)
		}
	}

	h.writeJSON(w, http.StatusOK, sensitivityResponse{
		Grid:       grid,
		Amounts:    grid.Amounts(),
		Rates:      grid.Rates(),
		MinMonthly: min,
		MaxMonthly: max,
		Tiers:      tiers,
	})
}

type advisorResponse struct {
	Analysis advisor.Analysis `json:"analysis"`
	Report   string           `json:"report"`
}

func (h *handler) handleAdvisor(w http.ResponseWriter, r *http.Request) {
	var in plan.Inputs
	if !h.decode(w, r, &in) {
		return
	}

	s := plan.Summarize(in)
	analysis := advisor.NewAnalyzer(h.logger).Analyze(in, s)
	h.writeJSON(w, http.StatusOK, advisorResponse{
		Analysis: analysis,
		Report:   advisor.RenderReport(in, s, analysis, time.Now()),
	})
}

func (h *handler) handlePlanList(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repo.List()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list plans: %v", err))
		return
	}
	h.writeJSON(w, http.StatusOK, plans)
}

func (h *handler) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	var p store.Plan
	if !h.decode(w, r, &p) {
		return
	}

	created, err := h.repo.Create(p)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to create plan: %v", err))
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *handler) handlePlanGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err, "get")
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *handler) handlePlanUpdate(w http.ResponseWriter, r *http.Request) {
	var p store.Plan
	if !h.decode(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")

	updated, err := h.repo.Update(p)
	if err != nil {
		h.respondStoreError(w, err, "update")
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *handler) handlePlanDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(chi.URLParam(r, "id")); err != nil {
		h.respondStoreError(w, err, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handlePlanExport(w http.ResponseWriter, r *http.Request) {
	data, err := store.ExportYAML(h.repo)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to export plans: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="plans.yaml"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write export response",
			zap.String("op", "server.handlePlanExport"),
			zap.Error(err),
		)
	}
}

func (h *handler) handlePlanImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read import body: %v", err))
		return
	}

	n, err := store.ImportYAML(h.repo, data)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to import plans: %v", err))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "plan not found")
		return
	}
	h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to %s plan: %v", op, err))
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Debug("request failed",
		zap.String("op", "server.respondError"),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}
