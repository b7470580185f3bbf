/*
handlers.go - HTTP API handlers for the wage calculator

PURPOSE:
  Exposes the earnings engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine and the workspace store.

ENDPOINTS:
  Calculation:
    POST   /api/calculate                   Price shifts (stateless)

  Workspace:
    GET    /api/workspace                   Current state + summary
    DELETE /api/workspace                   Reset to defaults
    PUT    /api/workspace/settings          Base pay, mode, rules
    POST   /api/workspace/days/{date}/toggle Select/deselect a day
    PUT    /api/workspace/days/{date}       Change a day's times
    DELETE /api/workspace/days              Deselect all days
    GET    /api/workspace/earnings          Summary only
    POST   /api/workspace/export            PDF/XLSX timesheet

  Rates:
    GET    /api/rates/default               Built-in rules
    GET    /api/rates/legacy                Legacy overview for the workspace

  Scenarios:
    GET    /api/scenarios                   List sample weeks
    POST   /api/scenarios/load              Load a sample week

ARCHITECTURE:
  Handler holds the WorkspaceStore and optional Metrics. Workspace edits are
  load-modify-save under a mutex; the summary is recomputed on every
  response, never cached.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed JSON, bad dates/times, invalid rules, unknown format
  - 404: Editing a day that is not selected, unknown scenario
  - 500: Store or export failures

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Sample scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/export"
	"github.com/warp/wage-engine/factory"
	"github.com/warp/wage-engine/payrates"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   earnings.WorkspaceStore
	Metrics *Metrics
	Log     zerolog.Logger

	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a handler on the given store. metrics may be nil.
func NewHandler(store earnings.WorkspaceStore, metrics *Metrics, logger zerolog.Logger) *Handler {
	return &Handler{Store: store, Metrics: metrics, Log: logger}
}

// mutate loads the workspace, applies fn and saves the result. Nothing is
// saved when fn fails.
func (h *Handler) mutate(ctx context.Context, fn func(*earnings.Workspace) error) (earnings.Workspace, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ws, err := h.Store.Load(ctx)
	if err != nil {
		return earnings.Workspace{}, fmt.Errorf("load workspace: %w", err)
	}
	if err := fn(&ws); err != nil {
		return earnings.Workspace{}, err
	}
	if err := h.Store.Save(ctx, ws); err != nil {
		return earnings.Workspace{}, fmt.Errorf("save workspace: %w", err)
	}
	h.Metrics.observeWorkspace(ws)
	return ws, nil
}

func (h *Handler) load(ctx context.Context) (earnings.Workspace, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ws, err := h.Store.Load(ctx)
	if err != nil {
		return earnings.Workspace{}, "", fmt.Errorf("load workspace: %w", err)
	}
	return ws, h.currentScenario, nil
}

func (h *Handler) respondWorkspace(w http.ResponseWriter, status int, ws earnings.Workspace) {
	h.mu.Lock()
	scenario := h.currentScenario
	h.mu.Unlock()

	dto := toWorkspaceDTO(ws, scenario)
	h.Metrics.observeSummary("workspace", ws.Summary())
	writeJSON(w, status, dto)
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// CALCULATION
// =============================================================================

// Calculate prices the posted shifts without reading or writing the workspace.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}

	doc := factory.RateTableJSON{Mode: req.Mode, BasePay: req.BasePay, Fallback: req.Fallback, Rules: req.Rules}
	if len(doc.Rules) == 0 {
		doc.Rules = factory.RulesToJSON(payrates.DefaultRules())
	}
	cfg, err := factory.FromJSON(doc)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var intervals []earnings.WorkInterval
	for _, s := range req.Shifts {
		iv, err := earnings.ParseWorkInterval(s.Date, s.Start, s.End)
		if err != nil {
			h.handleError(w, err)
			return
		}
		if req.SplitMidnight {
			intervals = append(intervals, earnings.SplitAtMidnight(iv.Date, iv.Start, iv.End)...)
		} else {
			intervals = append(intervals, iv)
		}
	}

	summary := earnings.Aggregate(intervals, cfg.BasePayOr(decimal.NewFromInt(payrates.DefaultBasePay)), cfg.Resolver())
	h.Metrics.observeSummary("calculate", summary)
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// =============================================================================
// WORKSPACE
// =============================================================================

// GetWorkspace returns the workspace and its summary.
func (h *Handler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, _, err := h.load(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.respondWorkspace(w, http.StatusOK, ws)
}

// GetEarnings returns only the summary.
func (h *Handler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	ws, _, err := h.load(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	summary := ws.Summary()
	h.Metrics.observeSummary("workspace", summary)
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// ResetWorkspace restores the initial workspace.
func (h *Handler) ResetWorkspace(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	err := h.Store.Reset(r.Context())
	h.currentScenario = ""
	h.mu.Unlock()
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.GetWorkspace(w, r)
}

// UpdateSettings changes base pay, mode and/or rules.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}

	ws, err := h.mutate(r.Context(), func(ws *earnings.Workspace) error {
		if req.BasePay != nil {
			if *req.BasePay < 0 {
				return fmt.Errorf("%w: base pay must not be negative", payrates.ErrInvalidRule)
			}
			ws.BasePay = decimal.NewFromFloat(*req.BasePay)
		}
		if req.Mode != nil {
			mode, err := earnings.ParseRateMode(*req.Mode)
			if err != nil {
				return err
			}
			ws.Mode = mode
		}
		if req.Rules != nil {
			rules, err := factory.RulesFromJSON(req.Rules)
			if err != nil {
				return err
			}
			ws.Rules = rules
		}
		return nil
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.Log.Info().Str("mode", string(ws.Mode)).Str("base_pay", ws.BasePay.String()).Int("rules", len(ws.Rules)).Msg("settings updated")
	h.respondWorkspace(w, http.StatusOK, ws)
}

// ToggleDay selects or deselects the date in the URL.
func (h *Handler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	date, err := earnings.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	var selected bool
	ws, err := h.mutate(r.Context(), func(ws *earnings.Workspace) error {
		selected = ws.ToggleDay(date)
		return nil
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.mu.Lock()
	scenario := h.currentScenario
	h.mu.Unlock()
	h.Metrics.observeSummary("workspace", ws.Summary())
	writeJSON(w, http.StatusOK, ToggleResponse{
		Date:      date.String(),
		Selected:  selected,
		Workspace: toWorkspaceDTO(ws, scenario),
	})
}

// UpdateDay changes the start and end time of a selected day.
func (h *Handler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	var req UpdateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}
	iv, err := earnings.ParseWorkInterval(chi.URLParam(r, "date"), req.Start, req.End)
	if err != nil {
		h.handleError(w, err)
		return
	}

	ws, err := h.mutate(r.Context(), func(ws *earnings.Workspace) error {
		return ws.UpdateTimes(iv.Date, iv.Start, iv.End)
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.respondWorkspace(w, http.StatusOK, ws)
}

// ClearDays deselects every day and keeps the settings.
func (h *Handler) ClearDays(w http.ResponseWriter, r *http.Request) {
	ws, err := h.mutate(r.Context(), func(ws *earnings.Workspace) error {
		ws.Clear()
		return nil
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.respondWorkspace(w, http.StatusOK, ws)
}

// =============================================================================
// EXPORT
// =============================================================================

// ExportWorkspace renders the workspace as a downloadable timesheet. The
// document is rendered into memory first, so a failure never sends a
// partial file.
func (h *Handler) ExportWorkspace(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}
	if req.Format == "" {
		req.Format = export.FormatPDF
	}

	ws, _, err := h.load(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	ts := export.Build(ws, export.Options{Employee: req.Employee, IncludePay: req.IncludePay})
	var buf bytes.Buffer
	err = export.Render(&buf, req.Format, ts)
	h.Metrics.observeExport(req.Format, err)
	if err != nil {
		h.Log.Error().Err(err).Str("format", req.Format).Msg("export failed")
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(req.Format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(ts, req.Format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// =============================================================================
// RATES
// =============================================================================

// DefaultRates returns the built-in rules and base pay.
func (h *Handler) DefaultRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.ToJSON(payrates.DefaultWorkspace()))
}

// LegacyRates returns the legacy overview for the workspace's rules.
func (h *Handler) LegacyRates(w http.ResponseWriter, r *http.Request) {
	ws, _, err := h.load(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLegacyRateDTOs(ws))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// handleError maps domain errors to HTTP status codes.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var verr *payrates.RuleValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "invalid pay rate", err)
	case errors.Is(err, payrates.ErrInvalidRule):
		writeError(w, http.StatusBadRequest, "invalid settings", err)
	case earnings.IsClientError(err):
		writeError(w, http.StatusBadRequest, "invalid input", err)
	case errors.Is(err, export.ErrUnknownFormat):
		writeError(w, http.StatusBadRequest, "unsupported export format", err)
	case earnings.IsNotFound(err):
		writeError(w, http.StatusNotFound, "day not selected", err)
	case errors.Is(err, ErrUnknownScenario):
		writeError(w, http.StatusNotFound, "scenario not found", err)
	case errors.Is(err, export.ErrExportFailed):
		writeError(w, http.StatusInternalServerError, "export failed", err)
	default:
		h.Log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
