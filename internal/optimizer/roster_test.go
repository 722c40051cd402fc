package optimizer

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopsdfs/roster-optimizer/internal/solver"
	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testPool is a feasible candidate pool for the default league rules:
// one front-court and one back-court player per team across eight teams.
func testPool() []types.Player {
	return []types.Player{
		{Name: "Jokic", Position: "C", Team: "DEN", Salary: 11.8, AvgFantasyPoints: 56.0, GamesInWindow: 14, IsFrontCourt: true},
		{Name: "Murray", Position: "PG", Team: "DEN", Salary: 8.4, AvgFantasyPoints: 38.5, GamesInWindow: 12, IsBackCourt: true},
		{Name: "Davis", Position: "PF", Team: "LAL", Salary: 10.9, AvgFantasyPoints: 52.0, GamesInWindow: 13, IsFrontCourt: true},
		{Name: "Reaves", Position: "SG", Team: "LAL", Salary: 7.2, AvgFantasyPoints: 31.0, GamesInWindow: 14, IsBackCourt: true},
		{Name: "Giannis", Position: "PF", Team: "MIL", Salary: 11.5, AvgFantasyPoints: 55.0, GamesInWindow: 11, IsFrontCourt: true},
		{Name: "Lillard", Position: "PG", Team: "MIL", Salary: 9.8, AvgFantasyPoints: 44.0, GamesInWindow: 12, IsBackCourt: true},
		{Name: "Tatum", Position: "SF", Team: "BOS", Salary: 10.2, AvgFantasyPoints: 47.0, GamesInWindow: 14, IsFrontCourt: true},
		{Name: "White", Position: "SG", Team: "BOS", Salary: 7.8, AvgFantasyPoints: 34.0, GamesInWindow: 14, IsBackCourt: true},
		{Name: "Butler", Position: "SF", Team: "MIA", Salary: 9.1, AvgFantasyPoints: 40.0, GamesInWindow: 10, IsFrontCourt: true},
		{Name: "Herro", Position: "SG", Team: "MIA", Salary: 7.5, AvgFantasyPoints: 33.0, GamesInWindow: 12, IsBackCourt: true},
		{Name: "Durant", Position: "SF", Team: "PHX", Salary: 10.6, AvgFantasyPoints: 49.0, GamesInWindow: 13, IsFrontCourt: true},
		{Name: "Booker", Position: "SG", Team: "PHX", Salary: 9.5, AvgFantasyPoints: 43.0, GamesInWindow: 13, IsBackCourt: true},
		{Name: "Sabonis", Position: "C", Team: "SAC", Salary: 9.9, AvgFantasyPoints: 46.0, GamesInWindow: 14, IsFrontCourt: true},
		{Name: "Fox", Position: "PG", Team: "SAC", Salary: 9.2, AvgFantasyPoints: 42.0, GamesInWindow: 14, IsBackCourt: true},
		{Name: "Mobley", Position: "PF", Team: "CLE", Salary: 8.0, AvgFantasyPoints: 35.0, GamesInWindow: 13, IsFrontCourt: true},
		{Name: "Garland", Position: "PG", Team: "CLE", Salary: 8.1, AvgFantasyPoints: 36.0, GamesInWindow: 12, IsBackCourt: true},
	}
}

func TestBuildRoster_DefaultConstraints(t *testing.T) {
	cfg := Config{Constraints: types.DefaultRosterConstraints()}

	outcome, err := BuildRoster(context.Background(), testPool(), cfg, testLogger())
	require.NoError(t, err)
	require.True(t, outcome.Feasible)
	assert.Equal(t, solver.StatusOptimal, outcome.Status)
	assert.NotEmpty(t, outcome.OptimizationID)
	require.NotNil(t, outcome.Roster)

	roster := outcome.Roster
	assert.Len(t, roster.Players, 10)
	assert.LessOrEqual(t, roster.TotalSalary, cfg.Constraints.SalaryCap)

	fc, bc := 0, 0
	seen := make(map[string]bool)
	for _, p := range roster.Players {
		assert.False(t, seen[p.Name], "player %s selected twice", p.Name)
		seen[p.Name] = true
		if p.IsFrontCourt {
			fc++
		}
		if p.IsBackCourt {
			bc++
		}
	}
	assert.Equal(t, 5, fc, "front court quota")
	assert.Equal(t, 5, bc, "back court quota")

	for team, count := range roster.TeamCounts {
		assert.LessOrEqual(t, count, cfg.Constraints.MaxPerTeam, "team %s over limit", team)
	}
}

func TestBuildRoster_MatchesExhaustiveSearch(t *testing.T) {
	players := []types.Player{
		{Name: "F1", Team: "AAA", Salary: 12, AvgFantasyPoints: 50, IsFrontCourt: true},
		{Name: "F2", Team: "BBB", Salary: 10, AvgFantasyPoints: 42, IsFrontCourt: true},
		{Name: "F3", Team: "CCC", Salary: 8, AvgFantasyPoints: 35, IsFrontCourt: true},
		{Name: "F4", Team: "DDD", Salary: 6, AvgFantasyPoints: 28, IsFrontCourt: true},
		{Name: "G1", Team: "EEE", Salary: 11, AvgFantasyPoints: 48, IsBackCourt: true},
		{Name: "G2", Team: "FFF", Salary: 9, AvgFantasyPoints: 40, IsBackCourt: true},
		{Name: "G3", Team: "AAA", Salary: 7, AvgFantasyPoints: 33, IsBackCourt: true},
		{Name: "G4", Team: "GGG", Salary: 5, AvgFantasyPoints: 25, IsBackCourt: true},
	}
	rc := types.RosterConstraints{
		SalaryCap:       38,
		FrontCourtReq:   2,
		BackCourtReq:    2,
		MaxPerTeam:      1,
		RosterSize:      4,
		MaxTransactions: 1,
	}

	outcome, err := BuildRoster(context.Background(), players, Config{Constraints: rc}, testLogger())
	require.NoError(t, err)
	require.True(t, outcome.Feasible)

	best := bruteForceBest(players, rc)
	assert.InDelta(t, best, outcome.Roster.TotalProjectedPoints, 1e-9,
		"solver objective must match exhaustive search")
}

// bruteForceBest enumerates every subset and returns the best feasible
// projected-points total, or -1 when no subset is feasible.
func bruteForceBest(players []types.Player, rc types.RosterConstraints) float64 {
	best := -1.0
	n := len(players)
	for mask := 0; mask < 1<<n; mask++ {
		var salary, points float64
		fc, bc, size := 0, 0, 0
		teams := make(map[string]int)
		for i := 0; i < n; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			p := players[i]
			size++
			salary += p.Salary
			points += p.AvgFantasyPoints
			teams[p.Team]++
			if p.IsFrontCourt {
				fc++
			}
			if p.IsBackCourt {
				bc++
			}
		}
		if size != rc.RosterSize || salary > rc.SalaryCap || fc != rc.FrontCourtReq || bc != rc.BackCourtReq {
			continue
		}
		ok := true
		for _, c := range teams {
			if c > rc.MaxPerTeam {
				ok = false
				break
			}
		}
		if ok && points > best {
			best = points
		}
	}
	return best
}

func TestBuildRoster_Deterministic(t *testing.T) {
	cfg := Config{Constraints: types.DefaultRosterConstraints()}

	first, err := BuildRoster(context.Background(), testPool(), cfg, testLogger())
	require.NoError(t, err)
	second, err := BuildRoster(context.Background(), testPool(), cfg, testLogger())
	require.NoError(t, err)

	require.True(t, first.Feasible)
	require.True(t, second.Feasible)
	assert.InDelta(t, first.Roster.TotalProjectedPoints, second.Roster.TotalProjectedPoints, 1e-9)
	assert.InDelta(t, first.Roster.TotalSalary, second.Roster.TotalSalary, 1e-9)
}

func TestBuildRoster_InfeasibleCap(t *testing.T) {
	cfg := Config{Constraints: types.DefaultRosterConstraints()}
	cfg.Constraints.SalaryCap = 50 // cheapest legal roster costs well over 50

	outcome, err := BuildRoster(context.Background(), testPool(), cfg, testLogger())
	require.NoError(t, err, "infeasibility is an outcome, not an error")
	assert.False(t, outcome.Feasible)
	assert.Equal(t, solver.StatusInfeasible, outcome.Status)
	assert.Nil(t, outcome.Roster, "infeasible outcome must not carry a partial roster")
	assert.NotEmpty(t, outcome.Message)
}

func TestBuildRoster_InvalidInput(t *testing.T) {
	cfg := Config{Constraints: types.DefaultRosterConstraints()}

	_, err := BuildRoster(context.Background(), nil, cfg, testLogger())
	assert.Error(t, err)

	cfg.Constraints.SalaryCap = -1
	_, err = BuildRoster(context.Background(), testPool(), cfg, testLogger())
	assert.Error(t, err)
}
