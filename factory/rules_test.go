package factory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/factory"
	"github.com/warp/wage-engine/payrates"
)

const customJSON = `{
	"mode": "custom",
	"base_pay": 200,
	"rules": [
		{
			"id": "night",
			"name": "Night",
			"multiplier": 1.5,
			"days": [0, 1, 2, 3, 4, 5, 6],
			"ranges": [{"start": 0, "end": 6}, {"start": 22, "end": 24}],
			"color": "purple"
		},
		{
			"name": "Weekend",
			"multiplier": 1.3,
			"days": [0, 6],
			"ranges": [{"start": 0, "end": 24}]
		}
	]
}`

const customYAML = `
mode: custom
fallback:
  multiplier: 0.9
  label: Off-peak
rules:
  - id: evening
    name: Evening
    multiplier: 1.25
    days: [1, 2, 3, 4, 5]
    ranges:
      - start: 15
        end: 23
`

// =============================================================================
// PARSING
// =============================================================================

func TestParseRateTable_Custom(t *testing.T) {
	// GIVEN: A custom two-rule document
	cfg, err := factory.ParseRateTable(customJSON)
	require.NoError(t, err)

	// THEN: Rules are converted in order, missing IDs filled
	assert.Equal(t, earnings.ModeCustom, cfg.Mode)
	require.Len(t, cfg.Rules, 2)
	assert.Equal(t, "night", cfg.Rules[0].ID)
	assert.Equal(t, []earnings.HourRange{{Start: 0, End: 6}, {Start: 22, End: 24}}, cfg.Rules[0].Ranges)
	assert.NotEmpty(t, cfg.Rules[1].ID)
	assert.Equal(t, payrates.ColorBlue, cfg.Rules[1].Color)
	assert.True(t, cfg.BasePayOr(decimal.Zero).Equal(decimal.NewFromInt(200)))

	// AND: The resolver is first-match with a 1.0 fallback
	r := cfg.Resolver()
	assert.Equal(t, "Night", r.Resolve(time.Sunday, 23).Label)
	assert.Equal(t, "Weekend", r.Resolve(time.Sunday, 12).Label)
	assert.Equal(t, earnings.FallbackLabel, r.Resolve(time.Monday, 12).Label)
}

func TestParseRateTableYAML_Fallback(t *testing.T) {
	cfg, err := factory.ParseRateTableYAML([]byte(customYAML))
	require.NoError(t, err)

	rate := cfg.Resolver().Resolve(time.Monday, 3)

	assert.Equal(t, "Off-peak", rate.Label)
	assert.True(t, rate.Multiplier.Equal(decimal.NewFromFloat(0.9)))
	assert.Nil(t, cfg.BasePay)
}

func TestParseRateTable_LegacyModeReadsMultipliersByID(t *testing.T) {
	doc := `{"rules": [
		{"id": "sunday", "name": "Sunday", "multiplier": 2, "days": [0], "ranges": [{"start": 7, "end": 23}]}
	]}`

	cfg, err := factory.ParseRateTable(doc)
	require.NoError(t, err)

	assert.Equal(t, earnings.ModeLegacy, cfg.Mode)
	l, ok := cfg.Resolver().(earnings.LegacyRates)
	require.True(t, ok)
	assert.True(t, l.Sunday.Equal(decimal.NewFromInt(2)))
	assert.True(t, l.WeekdayEvening.Equal(decimal.NewFromInt(1)))
}

func TestParseRateTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"malformed", `{"rules": [`, nil},
		{"bad mode", `{"mode": "hourly", "rules": []}`, earnings.ErrInvalidMode},
		{"bad rule", `{"rules": [{"name": "", "multiplier": 1, "days": [1], "ranges": [{"start": 1, "end": 2}]}]}`, payrates.ErrInvalidRule},
		{"bad range", `{"rules": [{"name": "X", "multiplier": 1, "days": [1], "ranges": [{"start": 5, "end": 25}]}]}`, payrates.ErrInvalidRule},
		{"negative base pay", `{"base_pay": -1, "rules": []}`, payrates.ErrInvalidRule},
		{"negative fallback", `{"mode": "custom", "fallback": {"multiplier": -2}, "rules": []}`, payrates.ErrInvalidRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.ParseRateTable(tt.doc)

			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

// =============================================================================
// SERIALIZING
// =============================================================================

func TestToJSON_RoundTrip(t *testing.T) {
	// GIVEN: The default workspace in custom mode
	ws := payrates.DefaultWorkspace()
	ws.Mode = earnings.ModeCustom

	// WHEN: Serializing to YAML and parsing back
	data, err := factory.MarshalYAML(ws)
	require.NoError(t, err)
	cfg, err := factory.ParseRateTableYAML(data)
	require.NoError(t, err)

	// THEN: Mode, base pay and rules survive
	back := cfg.ApplyTo(earnings.Workspace{})
	assert.Equal(t, earnings.ModeCustom, back.Mode)
	assert.True(t, back.BasePay.Equal(ws.BasePay))
	require.Len(t, back.Rules, len(ws.Rules))
	for i := range ws.Rules {
		assert.Equal(t, ws.Rules[i].ID, back.Rules[i].ID)
		assert.Equal(t, ws.Rules[i].Days, back.Rules[i].Days)
		assert.True(t, ws.Rules[i].Multiplier.Equal(back.Rules[i].Multiplier))
	}
}

func TestRuleToJSON_EmptySlices(t *testing.T) {
	rj := factory.RuleToJSON(earnings.RateRule{Name: "Empty"})

	assert.NotNil(t, rj.Days)
	assert.NotNil(t, rj.Ranges)
}
