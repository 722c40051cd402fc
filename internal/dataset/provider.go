package dataset

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

// Provider supplies the candidate player dataset for one optimization call.
// Implementations must be deterministic: a player missing from any source
// table is excluded by the join, not errored.
type Provider interface {
	// EligiblePlayers returns every player with a positive salary and at
	// least the minimum games sample in the rolling window.
	EligiblePlayers(ctx context.Context) ([]types.Player, error)
	// PlayersByName resolves the given names against the same joined
	// dataset. Names with no complete stat/salary match are simply absent
	// from the result.
	PlayersByName(ctx context.Context, names []string) ([]types.Player, error)
}

// playerRow is the scan target for the joined player query.
type playerRow struct {
	Name             string
	Position         string
	Team             string
	Salary           float64
	AvgFantasyPoints float64
	GamesInWindow    int
}

// SQLProvider reads the candidate pool from the stats database: base player
// rows joined with salary-cap pricing and the 30-day rolling aggregates.
type SQLProvider struct {
	db       *gorm.DB
	minGames int
}

// NewSQLProvider creates a provider over the given connection. minGames is
// the eligibility floor on games played in the rolling window.
func NewSQLProvider(db *gorm.DB, minGames int) *SQLProvider {
	return &SQLProvider{db: db, minGames: minGames}
}

const playerSelect = `ps.player AS name,
	ps.pos AS position,
	ps.team AS team,
	nsc.salary AS salary,
	psr.fantasy_points_per_game_30d AS avg_fantasy_points,
	psr.games_last_30d AS games_in_window`

func (p *SQLProvider) EligiblePlayers(ctx context.Context) ([]types.Player, error) {
	var rows []playerRow
	err := p.db.WithContext(ctx).
		Table("player_stats ps").
		Select(playerSelect).
		Joins("JOIN nba_salary_cap_players nsc ON ps.player = nsc.name").
		Joins("JOIN player_salary_stats psr ON ps.player = psr.player").
		Where("psr.games_last_30d >= ?", p.minGames).
		Where("nsc.salary > 0").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible players: %w", err)
	}
	return toPlayers(rows), nil
}

func (p *SQLProvider) PlayersByName(ctx context.Context, names []string) ([]types.Player, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []playerRow
	err := p.db.WithContext(ctx).
		Table("player_stats ps").
		Select(playerSelect).
		Joins("JOIN nba_salary_cap_players nsc ON ps.player = nsc.name").
		Joins("JOIN player_salary_stats psr ON ps.player = psr.player").
		Where("ps.player IN ?", names).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve players by name: %w", err)
	}
	return toPlayers(rows), nil
}

func toPlayers(rows []playerRow) []types.Player {
	players := make([]types.Player, len(rows))
	for i, r := range rows {
		fc, bc := types.DeriveCourts(r.Position)
		players[i] = types.Player{
			Name:             r.Name,
			Position:         r.Position,
			Team:             r.Team,
			Salary:           r.Salary,
			AvgFantasyPoints: r.AvgFantasyPoints,
			GamesInWindow:    r.GamesInWindow,
			Value:            types.ValuePerSalary(r.AvgFantasyPoints, r.Salary),
			IsFrontCourt:     fc,
			IsBackCourt:      bc,
		}
	}
	return players
}
