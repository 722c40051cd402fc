package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

func TestFixtureProvider_EligiblePlayers(t *testing.T) {
	provider := &FixtureProvider{
		Players: []types.Player{
			{Name: "Active", Salary: 9, GamesInWindow: 10},
			{Name: "Injured", Salary: 9, GamesInWindow: 1},
			{Name: "Unpriced", Salary: 0, GamesInWindow: 10},
		},
		MinGames: 3,
	}

	players, err := provider.EligiblePlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 1, "thin-window and unpriced players are excluded")
	assert.Equal(t, "Active", players[0].Name)
}

func TestFixtureProvider_PlayersByName(t *testing.T) {
	provider := &FixtureProvider{
		Players: []types.Player{
			{Name: "A", Salary: 9, GamesInWindow: 10},
			{Name: "B", Salary: 9, GamesInWindow: 10},
		},
		MinGames: 3,
	}

	players, err := provider.PlayersByName(context.Background(), []string{"A", "Ghost"})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "A", players[0].Name)
}
