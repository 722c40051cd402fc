package types

import (
	"fmt"
	"strings"
)

// Player represents one eligible candidate with positions, salary and the
// 30-day projection used as the optimization objective.
type Player struct {
	Name             string  `json:"name"`
	Position         string  `json:"position"`
	Team             string  `json:"team"`
	Salary           float64 `json:"salary"`
	AvgFantasyPoints float64 `json:"avg_fantasy_points"`
	GamesInWindow    int     `json:"games_in_window"`
	Value            float64 `json:"value"`
	IsFrontCourt     bool    `json:"is_front_court"`
	IsBackCourt      bool    `json:"is_back_court"`
}

// DeriveCourts classifies a raw position code into front/back court flags.
// Forwards and centers are front court, guards are back court; combo
// eligibility (e.g. "G-F") sets both.
func DeriveCourts(position string) (frontCourt, backCourt bool) {
	frontCourt = strings.ContainsAny(position, "FC")
	backCourt = strings.Contains(position, "G")
	return frontCourt, backCourt
}

// ValuePerSalary returns projected points per salary unit, null-safe.
// Raw ratio, unscaled.
func ValuePerSalary(points, salary float64) float64 {
	if salary <= 0 {
		return 0
	}
	return points / salary
}

// CourtLabel returns the short court classification used in trade reports.
func (p Player) CourtLabel() string {
	if p.IsFrontCourt {
		return "FC"
	}
	return "BC"
}

// RosterConstraints holds the limits for one optimization call. Immutable for
// the duration of the call; callers pass a value, never share a pointer.
type RosterConstraints struct {
	SalaryCap       float64 `json:"salary_cap"`
	FrontCourtReq   int     `json:"front_court_req"`
	BackCourtReq    int     `json:"back_court_req"`
	MaxPerTeam      int     `json:"max_per_team"`
	RosterSize      int     `json:"roster_size"`
	MaxTransactions int     `json:"max_transactions"`
}

// DefaultRosterConstraints returns the standard league configuration.
func DefaultRosterConstraints() RosterConstraints {
	return RosterConstraints{
		SalaryCap:       100,
		FrontCourtReq:   5,
		BackCourtReq:    5,
		MaxPerTeam:      2,
		RosterSize:      10,
		MaxTransactions: 2,
	}
}

// Validate checks that the constraint configuration is internally consistent.
func (rc RosterConstraints) Validate() error {
	if rc.SalaryCap <= 0 {
		return fmt.Errorf("salary cap must be positive, got %.2f", rc.SalaryCap)
	}
	if rc.RosterSize <= 0 {
		return fmt.Errorf("roster size must be positive, got %d", rc.RosterSize)
	}
	if rc.FrontCourtReq < 0 || rc.BackCourtReq < 0 {
		return fmt.Errorf("court requirements must be non-negative, got FC=%d BC=%d", rc.FrontCourtReq, rc.BackCourtReq)
	}
	if rc.MaxPerTeam <= 0 {
		return fmt.Errorf("max players per team must be positive, got %d", rc.MaxPerTeam)
	}
	if rc.MaxTransactions < 0 {
		return fmt.Errorf("max transactions must be non-negative, got %d", rc.MaxTransactions)
	}
	return nil
}

// Roster is the outcome of a full-rebuild optimization: a fixed-size set of
// distinct players with precomputed totals. Constructed once per call and
// never mutated.
type Roster struct {
	Players              []Player       `json:"players"`
	TotalSalary          float64        `json:"total_salary"`
	TotalProjectedPoints float64        `json:"total_projected_points"`
	TeamCounts           map[string]int `json:"team_counts"`
}

// NewRoster builds a Roster value with totals and per-team distribution.
func NewRoster(players []Player) Roster {
	r := Roster{
		Players:    players,
		TeamCounts: make(map[string]int, len(players)),
	}
	for _, p := range players {
		r.TotalSalary += p.Salary
		r.TotalProjectedPoints += p.AvgFantasyPoints
		r.TeamCounts[p.Team]++
	}
	return r
}

// Contains reports whether a player name is on the roster.
func (r Roster) Contains(name string) bool {
	for _, p := range r.Players {
		if p.Name == name {
			return true
		}
	}
	return false
}

// RosterSummary captures the totals of a roster state for before/after
// comparison in trade reports.
type RosterSummary struct {
	TotalSalary          float64 `json:"total_salary"`
	TotalProjectedPoints float64 `json:"total_projected_points"`
}

// SummarizeRoster computes the summary of a player set.
func SummarizeRoster(players []Player) RosterSummary {
	var s RosterSummary
	for _, p := range players {
		s.TotalSalary += p.Salary
		s.TotalProjectedPoints += p.AvgFantasyPoints
	}
	return s
}

// TradeProposal pairs a drop list from the current roster with an add list
// from the candidate pool. Both lists are the same length and the swap
// preserves all roster constraints.
type TradeProposal struct {
	Drops  []Player      `json:"drops"`
	Adds   []Player      `json:"adds"`
	Before RosterSummary `json:"before"`
	After  RosterSummary `json:"after"`
}

// NetPoints returns the projected-value delta of applying the proposal.
func (tp TradeProposal) NetPoints() float64 {
	return tp.After.TotalProjectedPoints - tp.Before.TotalProjectedPoints
}

// ErrorResponse is the standard API error shape.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
