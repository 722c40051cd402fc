package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCapScenarios(t *testing.T) {
	cfg := Config{Constraints: tradeConfig(2).Constraints}
	caps := []float64{50, 90, 100}

	results, err := EvaluateCapScenarios(context.Background(), testPool(), caps, cfg, testLogger())
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results keep the input order regardless of completion order.
	for i, cap := range caps {
		assert.Equal(t, cap, results[i].SalaryCap)
		require.NotNil(t, results[i].Outcome)
	}

	assert.False(t, results[0].Outcome.Feasible, "a 50 cap cannot fund a legal roster")
	assert.True(t, results[1].Outcome.Feasible)
	assert.True(t, results[2].Outcome.Feasible)

	// A looser cap never yields a worse roster.
	assert.GreaterOrEqual(t,
		results[2].Outcome.Roster.TotalProjectedPoints,
		results[1].Outcome.Roster.TotalProjectedPoints)
}

func TestEvaluateCapScenarios_PropagatesErrors(t *testing.T) {
	cfg := Config{Constraints: tradeConfig(2).Constraints}

	_, err := EvaluateCapScenarios(context.Background(), nil, []float64{100}, cfg, testLogger())
	assert.Error(t, err)
}
