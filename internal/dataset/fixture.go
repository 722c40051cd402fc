package dataset

import (
	"context"

	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

// FixtureProvider serves a fixed in-memory player set. It applies the same
// eligibility filtering as the SQL provider so tests exercise the documented
// join semantics.
type FixtureProvider struct {
	Players  []types.Player
	MinGames int
}

func (f *FixtureProvider) EligiblePlayers(_ context.Context) ([]types.Player, error) {
	eligible := make([]types.Player, 0, len(f.Players))
	for _, p := range f.Players {
		if p.Salary > 0 && p.GamesInWindow >= f.MinGames {
			eligible = append(eligible, p)
		}
	}
	return eligible, nil
}

func (f *FixtureProvider) PlayersByName(_ context.Context, names []string) ([]types.Player, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var matched []types.Player
	for _, p := range f.Players {
		if wanted[p.Name] {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
