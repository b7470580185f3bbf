/*
scenarios.go - Sample work weeks for demos and manual testing

PURPOSE:

	Provides pre-built workspaces that exercise the interesting parts of the
	rate table: evening supplements, Saturday splits, Sunday as one segment,
	early-morning fallback and a custom rule table.

AVAILABLE SCENARIOS:

	standard-week:   Mon-Fri 07:00-15:00, legacy rates
	evening-shifts:  Weekday and Saturday evenings
	weekend-worker:  Saturday and Sunday 07:00-23:00
	mixed-rotation:  Early starts, long days and a Sunday
	night-premium:   Custom table with a night rule

HOW SCENARIOS WORK:
 1. Start from payrates.DefaultWorkspace()
 2. Apply settings (mode, rules, base pay)
 3. Toggle the days in chronological order, then set their times
 4. Replace the stored workspace

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "weekend-worker"}

NOTE:

	Loading a scenario replaces the whole workspace.

SEE ALSO:
  - handlers.go: Workspace handlers
  - payrates/policies.go: Default rules
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/payrates"
)

// ErrUnknownScenario is returned for scenario IDs not in the list.
var ErrUnknownScenario = errors.New("unknown scenario")

// scenarioWeek is the Monday all scenarios start on.
var scenarioWeek = earnings.NewDate(2025, time.January, 6)

type shift struct {
	offset     int
	start, end float64
}

type scenario struct {
	ScenarioDTO
	build func() earnings.Workspace
}

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{ID: "standard-week", Name: "Standard Week", Description: "Five weekday day shifts at the base rate"},
		build: func() earnings.Workspace {
			return withShifts(payrates.DefaultWorkspace(),
				shift{0, 7, 15}, shift{1, 7, 15}, shift{2, 7, 15}, shift{3, 7, 15}, shift{4, 7, 15})
		},
	},
	{
		ScenarioDTO: ScenarioDTO{ID: "evening-shifts", Name: "Evening Shifts", Description: "Weekday evenings and a Saturday evening"},
		build: func() earnings.Workspace {
			return withShifts(payrates.DefaultWorkspace(),
				shift{0, 15, 23}, shift{1, 15, 23}, shift{3, 15, 23}, shift{5, 15, 23})
		},
	},
	{
		ScenarioDTO: ScenarioDTO{ID: "weekend-worker", Name: "Weekend Worker", Description: "Long Saturday and Sunday shifts"},
		build: func() earnings.Workspace {
			return withShifts(payrates.DefaultWorkspace(), shift{5, 7, 23}, shift{6, 7, 23})
		},
	},
	{
		ScenarioDTO: ScenarioDTO{ID: "mixed-rotation", Name: "Mixed Rotation", Description: "Early starts, a double shift and a Sunday"},
		build: func() earnings.Workspace {
			return withShifts(payrates.DefaultWorkspace(),
				shift{0, 5, 13}, shift{2, 7, 23}, shift{4, 11.5, 19.5}, shift{6, 10, 18})
		},
	},
	{
		ScenarioDTO: ScenarioDTO{ID: "night-premium", Name: "Night Premium", Description: "Custom rules with a 50% night supplement"},
		build: func() earnings.Workspace {
			ws := payrates.DefaultWorkspace()
			ws.Mode = earnings.ModeCustom
			ws.Rules = append([]earnings.RateRule{{
				ID:          "night",
				Name:        "Night",
				Description: "Every day 23:00-07:00",
				Multiplier:  decimal.NewFromFloat(1.5),
				Days:        []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
				Ranges:      []earnings.HourRange{{Start: 0, End: 7}, {Start: 23, End: 24}},
				Color:       payrates.ColorPurple,
			}}, ws.Rules...)
			return withShifts(ws, shift{0, 0, 8}, shift{1, 15, 24}, shift{2, 22, 24})
		},
	},
}

func withShifts(ws earnings.Workspace, shifts ...shift) earnings.Workspace {
	for _, s := range shifts {
		date := scenarioWeek.AddDays(s.offset)
		ws.ToggleDay(date)
		// Cannot fail: the day was just selected.
		_ = ws.UpdateTimes(date, decimal.NewFromFloat(s.start), decimal.NewFromFloat(s.end))
	}
	return ws
}

// findScenario returns the workspace of a scenario.
func findScenario(id string) (earnings.Workspace, error) {
	for _, s := range scenarios {
		if s.ID == id {
			return s.build(), nil
		}
	}
	return earnings.Workspace{}, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns the available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	out := make([]ScenarioDTO, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, s.ScenarioDTO)
	}
	writeJSON(w, http.StatusOK, out)
}

// LoadScenario replaces the workspace with a scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}

	ws, err := findScenario(req.ScenarioID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.mu.Lock()
	err = h.Store.Save(r.Context(), ws)
	if err == nil {
		h.currentScenario = req.ScenarioID
	}
	h.mu.Unlock()
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.Metrics.observeWorkspace(ws)
	h.Log.Info().Str("scenario", req.ScenarioID).Int("days", len(ws.Days)).Msg("scenario loaded")
	h.respondWorkspace(w, http.StatusOK, ws)
}
