package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umpire274/sw-galaxy-map/planner"
)

func TestDefaultRouteOptionsIsValid(t *testing.T) {
	assert.NoError(t, planner.DefaultRouteOptions().Validate())
}

func TestRouteOptionsValidateRejectsBadFields(t *testing.T) {
	cases := map[string]func(*planner.RouteOptions){
		"negative clearance":    func(o *planner.RouteOptions) { o.Clearance = -1 },
		"zero max_iters":        func(o *planner.RouteOptions) { o.MaxIters = 0 },
		"zero max_offset_tries": func(o *planner.RouteOptions) { o.MaxOffsetTries = 0 },
		"offset_growth == 1":    func(o *planner.RouteOptions) { o.OffsetGrowth = 1.0 },
		"offset_growth < 1":     func(o *planner.RouteOptions) { o.OffsetGrowth = 0.5 },
		"negative turn_weight":  func(o *planner.RouteOptions) { o.TurnWeight = -1 },
		"negative back_weight":  func(o *planner.RouteOptions) { o.BackWeight = -1 },
		"negative prox_weight":  func(o *planner.RouteOptions) { o.ProximityWeight = -1 },
		"negative prox_margin":  func(o *planner.RouteOptions) { o.ProximityMargin = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := planner.DefaultRouteOptions()
			mutate(&opts)
			err := opts.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, planner.ErrInvalidOptions)
		})
	}
}

func TestNewRouteOptionsAppliesFunctionalOptions(t *testing.T) {
	opts := planner.NewRouteOptions(
		planner.WithClearance(0.5),
		planner.WithMaxIters(10),
		planner.WithMaxOffsetTries(2),
		planner.WithOffsetGrowth(2.0),
		planner.WithTurnWeight(1.0),
		planner.WithBackWeight(2.0),
		planner.WithProximityWeight(3.0),
		planner.WithProximityMargin(0.25),
	)

	assert.Equal(t, 0.5, opts.Clearance)
	assert.Equal(t, 10, opts.MaxIters)
	assert.Equal(t, 2, opts.MaxOffsetTries)
	assert.Equal(t, 2.0, opts.OffsetGrowth)
	assert.Equal(t, 1.0, opts.TurnWeight)
	assert.Equal(t, 2.0, opts.BackWeight)
	assert.Equal(t, 3.0, opts.ProximityWeight)
	assert.Equal(t, 0.25, opts.ProximityMargin)
	require.NoError(t, opts.Validate())
}
