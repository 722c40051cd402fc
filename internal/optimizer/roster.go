package optimizer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hoopsdfs/roster-optimizer/internal/solver"
	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

// Config holds the per-call optimization settings. A fresh value is built for
// each invocation so concurrent calls cannot share solver state.
type Config struct {
	Constraints   types.RosterConstraints
	SolverTimeout time.Duration
	Debug         bool
}

// RosterOutcome is the result of a full-rebuild optimization. Infeasibility
// is a normal outcome distinguished by Feasible=false; Roster is nil in that
// case, never partial.
type RosterOutcome struct {
	OptimizationID string        `json:"optimization_id"`
	Feasible       bool          `json:"feasible"`
	Status         solver.Status `json:"status"`
	Roster         *types.Roster `json:"roster,omitempty"`
	Message        string        `json:"message,omitempty"`
	ElapsedMs      int64         `json:"elapsed_ms"`
}

// BuildRoster selects the projected-points-maximizing roster from the
// candidate pool under the salary cap, court quotas and per-team limit.
func BuildRoster(ctx context.Context, players []types.Player, cfg Config, log *logrus.Logger) (*RosterOutcome, error) {
	if err := cfg.Constraints.Validate(); err != nil {
		return nil, fmt.Errorf("invalid constraints: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("no candidate players available")
	}

	optimizationID := uuid.New().String()
	start := time.Now()
	entry := log.WithFields(logrus.Fields{
		"optimization_id": optimizationID,
		"mode":            "rebuild",
	})
	entry.WithFields(logrus.Fields{
		"total_players": len(players),
		"salary_cap":    cfg.Constraints.SalaryCap,
		"roster_size":   cfg.Constraints.RosterSize,
	}).Info("Starting roster optimization")

	model, vars := buildRosterModel(players, cfg.Constraints)

	sol, err := solver.Solve(ctx, model, solver.Options{
		Verbose: cfg.Debug,
		Timeout: cfg.SolverTimeout,
		Logger:  entry,
	})
	if err != nil {
		return nil, fmt.Errorf("solver failure: %w", err)
	}

	outcome := &RosterOutcome{
		OptimizationID: optimizationID,
		Status:         sol.Status,
		ElapsedMs:      time.Since(start).Milliseconds(),
	}
	if sol.Status != solver.StatusOptimal {
		outcome.Message = infeasibleMessage(sol.Status)
		entry.WithField("status", sol.Status).Warn("No feasible roster")
		return outcome, nil
	}

	selected := make([]types.Player, 0, cfg.Constraints.RosterSize)
	for i, v := range vars {
		if sol.Selected(v) {
			selected = append(selected, players[i])
		}
	}
	sort.Slice(selected, func(a, b int) bool {
		return selected[a].AvgFantasyPoints > selected[b].AvgFantasyPoints
	})

	roster := types.NewRoster(selected)
	outcome.Feasible = true
	outcome.Roster = &roster

	entry.WithFields(logrus.Fields{
		"total_salary":     roster.TotalSalary,
		"projected_points": roster.TotalProjectedPoints,
		"elapsed_ms":       outcome.ElapsedMs,
	}).Info("Roster optimization completed")
	return outcome, nil
}

// buildRosterModel translates the candidate pool and constraint configuration
// into a 0/1 integer program: one selection indicator per player keyed by the
// player's name, so the model does not depend on pool ordering.
func buildRosterModel(players []types.Player, rc types.RosterConstraints) (*solver.Model, []solver.Var) {
	m := solver.NewModel("fantasy_roster")
	vars := make([]solver.Var, len(players))
	for i, p := range players {
		vars[i] = m.AddBinary("select[" + p.Name + "]")
	}

	objective := make([]solver.Term, len(players))
	salary := make([]solver.Term, len(players))
	count := make([]solver.Term, len(players))
	for i, p := range players {
		objective[i] = solver.Term{Var: vars[i], Coeff: p.AvgFantasyPoints}
		salary[i] = solver.Term{Var: vars[i], Coeff: p.Salary}
		count[i] = solver.Term{Var: vars[i], Coeff: 1}
	}
	m.SetObjective(solver.Maximize, objective...)
	m.AddConstraint("salary_cap", solver.LE, rc.SalaryCap, salary...)
	m.AddConstraint("roster_size", solver.EQ, float64(rc.RosterSize), count...)

	var frontCourt, backCourt []solver.Term
	for i, p := range players {
		if p.IsFrontCourt {
			frontCourt = append(frontCourt, solver.Term{Var: vars[i], Coeff: 1})
		}
		if p.IsBackCourt {
			backCourt = append(backCourt, solver.Term{Var: vars[i], Coeff: 1})
		}
	}
	m.AddConstraint("front_court", solver.EQ, float64(rc.FrontCourtReq), frontCourt...)
	m.AddConstraint("back_court", solver.EQ, float64(rc.BackCourtReq), backCourt...)

	byTeam := make(map[string][]solver.Term)
	for i, p := range players {
		byTeam[p.Team] = append(byTeam[p.Team], solver.Term{Var: vars[i], Coeff: 1})
	}
	for team, terms := range byTeam {
		m.AddConstraint("team_limit["+team+"]", solver.LE, float64(rc.MaxPerTeam), terms...)
	}

	return m, vars
}

func infeasibleMessage(status solver.Status) string {
	if status == solver.StatusTimedOut {
		return "optimization timed out before a provably optimal roster was found - relax constraints or raise the timeout"
	}
	return "no feasible roster satisfies the current constraints - relax the salary cap, court quotas or team limit"
}
