package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/hoopsdfs/roster-optimizer/internal/dataset"
	"github.com/hoopsdfs/roster-optimizer/internal/optimizer"
	"github.com/hoopsdfs/roster-optimizer/pkg/config"
	"github.com/hoopsdfs/roster-optimizer/pkg/database"
	"github.com/hoopsdfs/roster-optimizer/pkg/logger"
)

func main() {
	salaryCap := pflag.Float64("salary-cap", 100, "Salary cap for the roster")
	transactions := pflag.Int("transactions", 2, "Number of players to add/drop in trade mode")
	debug := pflag.Bool("debug", false, "Enable solver diagnostic output")
	teamFile := pflag.String("team-file", "", "Path to the current roster file (defaults to config TEAM_FILE)")
	protect := pflag.StringSlice("protect", nil, "Player names that must not be dropped")
	pflag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.InitLogger("", cfg.IsDevelopment())

	db, err := database.NewOptimizerConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	provider := dataset.NewSQLProvider(db.DB, cfg.MinGames)

	constraints := cfg.RosterConstraints()
	constraints.SalaryCap = *salaryCap
	constraints.MaxTransactions = *transactions
	optCfg := optimizer.Config{
		Constraints:   constraints,
		SolverTimeout: cfg.SolverTimeout(),
		Debug:         *debug || cfg.SolverDebug,
	}

	path := *teamFile
	if path == "" {
		path = cfg.TeamFile
	}

	ctx := context.Background()
	if _, err := os.Stat(path); err == nil {
		runTradeMode(ctx, path, provider, optCfg, cfg, *protect, log)
	} else {
		runRebuildMode(ctx, provider, optCfg, log)
	}
}

func runRebuildMode(ctx context.Context, provider dataset.Provider, optCfg optimizer.Config, log *logrus.Logger) {
	players, err := provider.EligiblePlayers(ctx)
	if err != nil {
		log.Fatalf("Failed to load player dataset: %v", err)
	}

	outcome, err := optimizer.BuildRoster(ctx, players, optCfg, log)
	if err != nil {
		log.Fatalf("Optimization failed: %v", err)
	}
	if !outcome.Feasible {
		fmt.Println(outcome.Message)
		return
	}

	roster := *outcome.Roster
	fmt.Println("\nOptimal Roster:")
	for _, p := range roster.Players {
		fmt.Printf("%-24s %-6s %-4s  Salary: %6.1f  Avg Points: %6.2f  Value: %.3f\n",
			p.Name, p.Position, p.Team, p.Salary, p.AvgFantasyPoints, p.Value)
	}

	fmt.Printf("\nTotal Salary: %.1f\n", roster.TotalSalary)
	fmt.Printf("Projected Fantasy Points: %.1f\n", roster.TotalProjectedPoints)

	fmt.Println("\nTeam Distribution:")
	teams := make([]string, 0, len(roster.TeamCounts))
	for team := range roster.TeamCounts {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool {
		if roster.TeamCounts[teams[i]] != roster.TeamCounts[teams[j]] {
			return roster.TeamCounts[teams[i]] > roster.TeamCounts[teams[j]]
		}
		return teams[i] < teams[j]
	})
	for _, team := range teams {
		fmt.Printf("%-4s %d\n", team, roster.TeamCounts[team])
	}

	analytics := optimizer.AnalyzeRoster(roster, optCfg.Constraints.SalaryCap)
	fmt.Printf("\nMean Points: %.2f  StdDev: %.2f  Cap Utilization: %.1f%%\n",
		analytics.MeanProjectedPoints, analytics.StdDevProjectedPoints, analytics.SalaryUtilization*100)
}

func runTradeMode(ctx context.Context, path string, provider dataset.Provider, optCfg optimizer.Config, cfg *config.Config, protect []string, log *logrus.Logger) {
	current, err := dataset.LoadCurrentRoster(ctx, path, provider, optCfg.Constraints.RosterSize)
	if err != nil {
		log.Fatalf("Current roster failed validation: %v", err)
	}

	pool, err := provider.EligiblePlayers(ctx)
	if err != nil {
		log.Fatalf("Failed to load player dataset: %v", err)
	}

	protected := cfg.ProtectedSet()
	for _, name := range protect {
		protected[name] = true
	}

	outcome, err := optimizer.ProposeTrade(ctx, current, pool, optCfg, protected, log)
	if err != nil {
		log.Fatalf("Trade optimization failed: %v", err)
	}
	if !outcome.Feasible {
		fmt.Println(outcome.Message)
		return
	}

	proposal := outcome.Proposal
	fmt.Println("Players to drop:")
	for _, p := range proposal.Drops {
		fmt.Printf("%s (%s) - Salary: %.1f, Avg Points: %.2f, Value: %.3f\n",
			p.Name, p.CourtLabel(), p.Salary, p.AvgFantasyPoints, p.Value)
	}

	fmt.Println("Players to add:")
	for _, p := range proposal.Adds {
		fmt.Printf("%s (%s) - Salary: %.1f, Avg Points: %.2f, Value: %.3f\n",
			p.Name, p.CourtLabel(), p.Salary, p.AvgFantasyPoints, p.Value)
	}

	fmt.Printf("Total Salary before changes: %.2f\n", proposal.Before.TotalSalary)
	fmt.Printf("Total Average Fantasy Points before changes: %.2f\n", proposal.Before.TotalProjectedPoints)
	fmt.Printf("Total Salary after changes: %.2f\n", proposal.After.TotalSalary)
	fmt.Printf("Total Average Fantasy Points after changes: %.2f\n", proposal.After.TotalProjectedPoints)
}
