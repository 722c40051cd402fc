package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hoopsdfs/roster-optimizer/internal/solver"
	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

// TradeOutcome is the result of an incremental trade optimization. As with
// the full rebuild, an infeasible model is a normal outcome: the caller is
// told to relax constraints, not handed an exception.
type TradeOutcome struct {
	OptimizationID string               `json:"optimization_id"`
	Feasible       bool                 `json:"feasible"`
	Status         solver.Status        `json:"status"`
	Proposal       *types.TradeProposal `json:"proposal,omitempty"`
	Message        string               `json:"message,omitempty"`
	ElapsedMs      int64                `json:"elapsed_ms"`
}

// ProposeTrade finds the net-points-maximizing set of bounded swaps against
// the current roster. Protected players are never dropped. The pool must not
// contain current-roster players; overlapping entries are filtered out.
func ProposeTrade(ctx context.Context, current, pool []types.Player, cfg Config, protected map[string]bool, log *logrus.Logger) (*TradeOutcome, error) {
	if err := cfg.Constraints.Validate(); err != nil {
		return nil, fmt.Errorf("invalid constraints: %w", err)
	}
	if len(current) != cfg.Constraints.RosterSize {
		return nil, fmt.Errorf("current roster has %d players, expected %d", len(current), cfg.Constraints.RosterSize)
	}

	onRoster := make(map[string]bool, len(current))
	for _, p := range current {
		onRoster[p.Name] = true
	}
	candidates := make([]types.Player, 0, len(pool))
	for _, p := range pool {
		if !onRoster[p.Name] {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate players available outside the current roster")
	}

	optimizationID := uuid.New().String()
	start := time.Now()
	entry := log.WithFields(logrus.Fields{
		"optimization_id": optimizationID,
		"mode":            "trade",
	})
	entry.WithFields(logrus.Fields{
		"roster_size":      len(current),
		"pool_size":        len(candidates),
		"max_transactions": cfg.Constraints.MaxTransactions,
		"protected_count":  len(protected),
	}).Info("Starting trade optimization")

	m := solver.NewModel("fantasy_team_changes")
	dropVars := make([]solver.Var, len(current))
	addVars := make([]solver.Var, len(candidates))
	for i, p := range current {
		dropVars[i] = m.AddBinary("drop[" + p.Name + "]")
	}
	for i, p := range candidates {
		addVars[i] = m.AddBinary("add[" + p.Name + "]")
	}

	// Objective: points gained by adds minus points lost to drops.
	objective := make([]solver.Term, 0, len(current)+len(candidates))
	for i, p := range candidates {
		objective = append(objective, solver.Term{Var: addVars[i], Coeff: p.AvgFantasyPoints})
	}
	for i, p := range current {
		objective = append(objective, solver.Term{Var: dropVars[i], Coeff: -p.AvgFantasyPoints})
	}
	m.SetObjective(solver.Maximize, objective...)

	rc := cfg.Constraints
	limit := float64(rc.MaxTransactions)

	dropCount := unitTerms(dropVars)
	addCount := unitTerms(addVars)
	m.AddConstraint("drop_limit", solver.LE, limit, dropCount...)
	m.AddConstraint("add_limit", solver.LE, limit, addCount...)

	// Drops and adds pair up one-for-one.
	balanced := append(unitTerms(dropVars), negUnitTerms(addVars)...)
	m.AddConstraint("balanced_transactions", solver.EQ, 0, balanced...)

	// Salary after the swap stays under the cap.
	currentSummary := types.SummarizeRoster(current)
	salaryDelta := make([]solver.Term, 0, len(current)+len(candidates))
	for i, p := range candidates {
		salaryDelta = append(salaryDelta, solver.Term{Var: addVars[i], Coeff: p.Salary})
	}
	for i, p := range current {
		salaryDelta = append(salaryDelta, solver.Term{Var: dropVars[i], Coeff: -p.Salary})
	}
	m.AddConstraint("salary_cap", solver.LE, rc.SalaryCap-currentSummary.TotalSalary, salaryDelta...)

	// Court quotas hold on the resulting roster: current count adjusted by
	// drops and adds.
	currentFC, currentBC := 0, 0
	for _, p := range current {
		if p.IsFrontCourt {
			currentFC++
		}
		if p.IsBackCourt {
			currentBC++
		}
	}
	var fcDelta, bcDelta []solver.Term
	for i, p := range candidates {
		if p.IsFrontCourt {
			fcDelta = append(fcDelta, solver.Term{Var: addVars[i], Coeff: 1})
		}
		if p.IsBackCourt {
			bcDelta = append(bcDelta, solver.Term{Var: addVars[i], Coeff: 1})
		}
	}
	for i, p := range current {
		if p.IsFrontCourt {
			fcDelta = append(fcDelta, solver.Term{Var: dropVars[i], Coeff: -1})
		}
		if p.IsBackCourt {
			bcDelta = append(bcDelta, solver.Term{Var: dropVars[i], Coeff: -1})
		}
	}
	m.AddConstraint("front_court", solver.EQ, float64(rc.FrontCourtReq-currentFC), fcDelta...)
	m.AddConstraint("back_court", solver.EQ, float64(rc.BackCourtReq-currentBC), bcDelta...)

	// Per-team churn bounds: adds per team and drops per team are each
	// capped, iterating over teams present in the pool. This limits churn
	// per team; it deliberately does not re-derive the final per-team total
	// after the swap.
	addsByTeam := make(map[string][]solver.Term)
	for i, p := range candidates {
		addsByTeam[p.Team] = append(addsByTeam[p.Team], solver.Term{Var: addVars[i], Coeff: 1})
	}
	dropsByTeam := make(map[string][]solver.Term)
	for i, p := range current {
		dropsByTeam[p.Team] = append(dropsByTeam[p.Team], solver.Term{Var: dropVars[i], Coeff: 1})
	}
	for team, terms := range addsByTeam {
		m.AddConstraint("team_add_limit["+team+"]", solver.LE, float64(rc.MaxPerTeam), terms...)
		if dropTerms, ok := dropsByTeam[team]; ok {
			m.AddConstraint("team_drop_limit["+team+"]", solver.LE, float64(rc.MaxPerTeam), dropTerms...)
		}
	}

	// Protected players are pinned onto the roster.
	for i, p := range current {
		if protected[p.Name] {
			m.AddConstraint("protected["+p.Name+"]", solver.EQ, 0, solver.Term{Var: dropVars[i], Coeff: 1})
		}
	}

	sol, err := solver.Solve(ctx, m, solver.Options{
		Verbose: cfg.Debug,
		Timeout: cfg.SolverTimeout,
		Logger:  entry,
	})
	if err != nil {
		return nil, fmt.Errorf("solver failure: %w", err)
	}

	outcome := &TradeOutcome{
		OptimizationID: optimizationID,
		Status:         sol.Status,
		ElapsedMs:      time.Since(start).Milliseconds(),
	}
	if sol.Status != solver.StatusOptimal {
		outcome.Message = "the trade optimization is infeasible - relax the salary cap or transaction limit and retry"
		entry.WithField("status", sol.Status).Warn("No feasible trade")
		return outcome, nil
	}

	proposal := &types.TradeProposal{Before: currentSummary}
	for i, v := range dropVars {
		if sol.Selected(v) {
			proposal.Drops = append(proposal.Drops, current[i])
		}
	}
	for i, v := range addVars {
		if sol.Selected(v) {
			proposal.Adds = append(proposal.Adds, candidates[i])
		}
	}
	proposal.After = currentSummary
	for _, p := range proposal.Drops {
		proposal.After.TotalSalary -= p.Salary
		proposal.After.TotalProjectedPoints -= p.AvgFantasyPoints
	}
	for _, p := range proposal.Adds {
		proposal.After.TotalSalary += p.Salary
		proposal.After.TotalProjectedPoints += p.AvgFantasyPoints
	}

	outcome.Feasible = true
	outcome.Proposal = proposal

	entry.WithFields(logrus.Fields{
		"drops":        len(proposal.Drops),
		"adds":         len(proposal.Adds),
		"net_points":   proposal.NetPoints(),
		"salary_after": proposal.After.TotalSalary,
		"elapsed_ms":   outcome.ElapsedMs,
	}).Info("Trade optimization completed")
	return outcome, nil
}

func unitTerms(vars []solver.Var) []solver.Term {
	terms := make([]solver.Term, len(vars))
	for i, v := range vars {
		terms[i] = solver.Term{Var: v, Coeff: 1}
	}
	return terms
}

func negUnitTerms(vars []solver.Var) []solver.Term {
	terms := make([]solver.Term, len(vars))
	for i, v := range vars {
		terms[i] = solver.Term{Var: v, Coeff: -1}
	}
	return terms
}
