package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveCourts(t *testing.T) {
	tests := []struct {
		position   string
		frontCourt bool
		backCourt  bool
	}{
		{"G", false, true},
		{"F", true, false},
		{"C", true, false},
		{"G-F", true, true},
		{"F-C", true, false},
		{"PG", false, true},
		{"SG", false, true},
		{"SF", true, false},
		{"PF", true, false},
	}

	for _, tt := range tests {
		fc, bc := DeriveCourts(tt.position)
		assert.Equal(t, tt.frontCourt, fc, "front court for %s", tt.position)
		assert.Equal(t, tt.backCourt, bc, "back court for %s", tt.position)
	}
}

func TestValuePerSalary(t *testing.T) {
	assert.InDelta(t, 4.0, ValuePerSalary(40, 10), 1e-9)
	assert.Zero(t, ValuePerSalary(40, 0))
	assert.Zero(t, ValuePerSalary(40, -5))
}

func TestCourtLabel(t *testing.T) {
	assert.Equal(t, "FC", Player{IsFrontCourt: true}.CourtLabel())
	assert.Equal(t, "BC", Player{IsBackCourt: true}.CourtLabel())
}

func TestRosterConstraints_Validate(t *testing.T) {
	valid := DefaultRosterConstraints()
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.SalaryCap = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.RosterSize = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.FrontCourtReq = -1
	assert.Error(t, bad.Validate())

	bad = valid
	bad.MaxPerTeam = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.MaxTransactions = -1
	assert.Error(t, bad.Validate())
}

func TestNewRoster(t *testing.T) {
	players := []Player{
		{Name: "Jokic", Team: "DEN", Salary: 11.5, AvgFantasyPoints: 55.0},
		{Name: "Murray", Team: "DEN", Salary: 8.0, AvgFantasyPoints: 38.0},
		{Name: "Curry", Team: "GSW", Salary: 10.5, AvgFantasyPoints: 48.5},
	}

	r := NewRoster(players)
	assert.InDelta(t, 30.0, r.TotalSalary, 1e-9)
	assert.InDelta(t, 141.5, r.TotalProjectedPoints, 1e-9)
	assert.Equal(t, 2, r.TeamCounts["DEN"])
	assert.Equal(t, 1, r.TeamCounts["GSW"])
	assert.True(t, r.Contains("Curry"))
	assert.False(t, r.Contains("LeBron"))
}

func TestSummarizeRoster(t *testing.T) {
	s := SummarizeRoster([]Player{
		{Salary: 10, AvgFantasyPoints: 40},
		{Salary: 12, AvgFantasyPoints: 45},
	})
	assert.InDelta(t, 22, s.TotalSalary, 1e-9)
	assert.InDelta(t, 85, s.TotalProjectedPoints, 1e-9)
}

func TestTradeProposal_NetPoints(t *testing.T) {
	tp := TradeProposal{
		Before: RosterSummary{TotalProjectedPoints: 400},
		After:  RosterSummary{TotalProjectedPoints: 412.5},
	}
	require.InDelta(t, 12.5, tp.NetPoints(), 1e-9)
}
