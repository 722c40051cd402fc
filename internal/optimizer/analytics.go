package optimizer

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hoopsdfs/roster-optimizer/internal/types"
)

// RosterAnalytics summarizes a selected roster for reporting: projection
// spread, salary utilization and the value-per-salary profile.
type RosterAnalytics struct {
	MeanProjectedPoints   float64        `json:"mean_projected_points"`
	StdDevProjectedPoints float64        `json:"stddev_projected_points"`
	TotalSalary           float64        `json:"total_salary"`
	SalaryUtilization     float64        `json:"salary_utilization"`
	MeanValuePerSalary    float64        `json:"mean_value_per_salary"`
	TeamCounts            map[string]int `json:"team_counts"`
}

// AnalyzeRoster computes summary statistics for a roster against the cap it
// was optimized under.
func AnalyzeRoster(r types.Roster, salaryCap float64) RosterAnalytics {
	points := make([]float64, len(r.Players))
	salaries := make([]float64, len(r.Players))
	values := make([]float64, len(r.Players))
	for i, p := range r.Players {
		points[i] = p.AvgFantasyPoints
		salaries[i] = p.Salary
		values[i] = types.ValuePerSalary(p.AvgFantasyPoints, p.Salary)
	}

	a := RosterAnalytics{
		TotalSalary: floats.Sum(salaries),
		TeamCounts:  r.TeamCounts,
	}
	if len(points) > 0 {
		a.MeanProjectedPoints = stat.Mean(points, nil)
		a.MeanValuePerSalary = stat.Mean(values, nil)
	}
	if len(points) > 1 {
		a.StdDevProjectedPoints = stat.StdDev(points, nil)
	}
	if salaryCap > 0 {
		a.SalaryUtilization = r.TotalSalary / salaryCap
	}
	return a
}
