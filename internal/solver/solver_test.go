package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_Knapsack(t *testing.T) {
	// Classic 0/1 knapsack: values 60/100/120, weights 10/20/30, capacity 50.
	// Optimal picks items 2 and 3 for value 220.
	m := NewModel("knapsack")
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	c := m.AddBinary("c")
	m.SetObjective(Maximize,
		Term{Var: a, Coeff: 60},
		Term{Var: b, Coeff: 100},
		Term{Var: c, Coeff: 120},
	)
	m.AddConstraint("capacity", LE, 50,
		Term{Var: a, Coeff: 10},
		Term{Var: b, Coeff: 20},
		Term{Var: c, Coeff: 30},
	)

	sol, err := Solve(context.Background(), m, Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 220, sol.Objective, 1e-9)
	assert.False(t, sol.Selected(a))
	assert.True(t, sol.Selected(b))
	assert.True(t, sol.Selected(c))
}

func TestSolve_EqualityConstraint(t *testing.T) {
	// Pick exactly 2 of 4 items maximizing value.
	m := NewModel("pick_two")
	vars := make([]Var, 4)
	values := []float64{5, 9, 3, 7}
	terms := make([]Term, 4)
	counts := make([]Term, 4)
	for i := range vars {
		vars[i] = m.AddBinary("x")
		terms[i] = Term{Var: vars[i], Coeff: values[i]}
		counts[i] = Term{Var: vars[i], Coeff: 1}
	}
	m.SetObjective(Maximize, terms...)
	m.AddConstraint("exactly_two", EQ, 2, counts...)

	sol, err := Solve(context.Background(), m, Options{})
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 16, sol.Objective, 1e-9)

	selected := 0
	for _, v := range vars {
		if sol.Selected(v) {
			selected++
		}
	}
	assert.Equal(t, 2, selected)
	assert.True(t, sol.Selected(vars[1]))
	assert.True(t, sol.Selected(vars[3]))
}

func TestSolve_Infeasible(t *testing.T) {
	// Two items, must pick exactly 2, but combined weight exceeds the cap.
	m := NewModel("infeasible")
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	m.SetObjective(Maximize, Term{Var: a, Coeff: 1}, Term{Var: b, Coeff: 1})
	m.AddConstraint("both", EQ, 2, Term{Var: a, Coeff: 1}, Term{Var: b, Coeff: 1})
	m.AddConstraint("cap", LE, 5, Term{Var: a, Coeff: 4}, Term{Var: b, Coeff: 4})

	sol, err := Solve(context.Background(), m, Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, sol.Status)
	assert.Zero(t, sol.Objective)
}

func TestSolve_Minimize(t *testing.T) {
	// Minimize cost while covering exactly one slot.
	m := NewModel("min_cost")
	a := m.AddBinary("cheap")
	b := m.AddBinary("pricey")
	m.SetObjective(Minimize, Term{Var: a, Coeff: 3}, Term{Var: b, Coeff: 8})
	m.AddConstraint("cover", EQ, 1, Term{Var: a, Coeff: 1}, Term{Var: b, Coeff: 1})

	sol, err := Solve(context.Background(), m, Options{})
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 3, sol.Objective, 1e-9)
	assert.True(t, sol.Selected(a))
	assert.False(t, sol.Selected(b))
}

func TestSolve_NegativeCoefficients(t *testing.T) {
	// A variable with a negative objective coefficient should stay off unless
	// a constraint forces it on.
	m := NewModel("neg_coeff")
	a := m.AddBinary("gain")
	b := m.AddBinary("loss")
	m.SetObjective(Maximize, Term{Var: a, Coeff: 10}, Term{Var: b, Coeff: -4})
	m.AddConstraint("budget", LE, 10, Term{Var: a, Coeff: 6}, Term{Var: b, Coeff: 2})

	sol, err := Solve(context.Background(), m, Options{})
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 10, sol.Objective, 1e-9)
	assert.True(t, sol.Selected(a))
	assert.False(t, sol.Selected(b))
}

func TestSolve_ValuesOnlyWhenOptimal(t *testing.T) {
	m := NewModel("infeasible_values")
	a := m.AddBinary("a")
	m.SetObjective(Maximize, Term{Var: a, Coeff: 1})
	m.AddConstraint("impossible", EQ, 2, Term{Var: a, Coeff: 1})

	sol, err := Solve(context.Background(), m, Options{})
	require.NoError(t, err)
	require.Equal(t, StatusInfeasible, sol.Status)
	assert.Zero(t, sol.Value(a))
	assert.False(t, sol.Selected(a))
}

func TestSolve_NilModel(t *testing.T) {
	_, err := Solve(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestSolve_NoVariables(t *testing.T) {
	m := NewModel("empty")
	_, err := Solve(context.Background(), m, Options{})
	assert.Error(t, err)
}

func TestSolve_CancelledContext(t *testing.T) {
	// A hard model with an already-cancelled context must report a timeout
	// instead of an optimal solution. Strongly correlated knapsack weights
	// keep the search from finishing before the first deadline poll.
	m := NewModel("cancelled")
	n := 45
	vars := make([]Var, n)
	terms := make([]Term, n)
	weights := make([]Term, n)
	total := 0.0
	for i := 0; i < n; i++ {
		w := float64(50 + (i*37)%53)
		total += w
		vars[i] = m.AddBinary("x")
		terms[i] = Term{Var: vars[i], Coeff: w}
		weights[i] = Term{Var: vars[i], Coeff: w}
	}
	m.SetObjective(Maximize, terms...)
	m.AddConstraint("cap", LE, total/2, weights...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol, err := Solve(ctx, m, Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusTimedOut, sol.Status)
}

func TestSolve_TimeoutOption(t *testing.T) {
	m := NewModel("quick")
	a := m.AddBinary("a")
	m.SetObjective(Maximize, Term{Var: a, Coeff: 1})

	sol, err := Solve(context.Background(), m, Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, sol.Status)
	assert.True(t, sol.Selected(a))
}
