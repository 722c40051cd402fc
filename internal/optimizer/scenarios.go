package optimizer

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

// ScenarioResult pairs one salary cap with its rebuild outcome.
type ScenarioResult struct {
	SalaryCap float64        `json:"salary_cap"`
	Outcome   *RosterOutcome `json:"outcome"`
}

// EvaluateCapScenarios runs independent full-rebuild optimizations across a
// set of salary caps. Each call builds its own model, so the scenarios run
// concurrently without shared solver state. Results keep the order of caps.
func EvaluateCapScenarios(ctx context.Context, players []types.Player, caps []float64, cfg Config, log *logrus.Logger) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, len(caps))

	g, ctx := errgroup.WithContext(ctx)
	for i, cap := range caps {
		i, cap := i, cap
		g.Go(func() error {
			scenarioCfg := cfg
			scenarioCfg.Constraints.SalaryCap = cap
			outcome, err := BuildRoster(ctx, players, scenarioCfg, log)
			if err != nil {
				return err
			}
			results[i] = ScenarioResult{SalaryCap: cap, Outcome: outcome}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
