package solver

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Status is the outcome of a solve attempt. Callers must check the status
// before interpreting variable values; a non-optimal solution carries no
// meaningful assignment.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusTimedOut   Status = "timed_out"
)

// Options configure one solve call. There is no process-global solver state;
// verbosity and time limits are always per call.
type Options struct {
	// Verbose surfaces solver diagnostics (constraint dump, incumbent
	// improvements) through the logger.
	Verbose bool
	// Timeout bounds the search; zero means no limit beyond the context.
	Timeout time.Duration
	// Logger receives diagnostics when Verbose is set. Defaults to the
	// standard logger.
	Logger *logrus.Entry
}

// Solution holds the result of a solve. Values are only populated when
// Status is StatusOptimal.
type Solution struct {
	Status    Status
	Objective float64
	// search statistics
	NodesExplored int64
	values        []float64
}

// Value returns the assigned value of a variable, or 0 when the solve did not
// reach an optimal solution.
func (s *Solution) Value(v Var) float64 {
	if s.Status != StatusOptimal || v.index >= len(s.values) {
		return 0
	}
	return s.values[v.index]
}

// Selected reports whether a binary variable is set in the optimal solution.
func (s *Solution) Selected(v Var) bool {
	return s.Value(v) > 0.5
}

const eps = 1e-6

// Solve runs branch-and-bound over the model's binary variables and returns
// the provably optimal assignment, or an infeasible/timed-out status. An
// error is returned only for environment failures (malformed model); an
// infeasible model is a normal outcome, not an error.
func Solve(ctx context.Context, m *Model, opts Options) (*Solution, error) {
	if m == nil {
		return nil, fmt.Errorf("solver: nil model")
	}
	n := m.NumVars()
	if n == 0 {
		return nil, fmt.Errorf("solver: model %q has no decision variables", m.name)
	}

	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("model", m.name)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	// Normalize to maximization.
	obj := make([]float64, n)
	copy(obj, m.objective)
	if m.sense == Minimize {
		for i := range obj {
			obj[i] = -obj[i]
		}
	}

	if opts.Verbose {
		log.WithFields(logrus.Fields{
			"variables":   n,
			"constraints": len(m.constraints),
		}).Info("Solving model")
		for _, c := range m.constraints {
			log.Debug(describe(c))
		}
	}

	s := newSearch(m, obj)
	sol := s.run(ctx, opts.Verbose, log)

	if m.sense == Minimize && sol.Status == StatusOptimal {
		sol.Objective = -sol.Objective
	}

	if opts.Verbose {
		log.WithFields(logrus.Fields{
			"status":         sol.Status,
			"objective":      sol.Objective,
			"nodes_explored": sol.NodesExplored,
		}).Info("Solve finished")
	}
	return sol, nil
}

// search carries the branch-and-bound state for one solve call.
type search struct {
	n     int
	obj   []float64
	order []int // variable indices in branching order

	// dense constraint matrix: coeff[c][varIndex]
	coeff [][]float64
	op    []Op
	rhs   []float64

	// suffix bounds over the branching order: for positions k..n-1, the
	// minimum and maximum achievable contribution to each constraint, and
	// the maximum achievable objective gain.
	sufMin [][]float64
	sufMax [][]float64
	sufObj []float64

	lhs    []float64 // current constraint LHS under partial assignment
	assign []float64
	curObj float64

	best      float64
	bestSet   []float64
	incumbent bool
	nodes     int64
	deadline  bool
}

func newSearch(m *Model, obj []float64) *search {
	n := m.NumVars()
	nc := len(m.constraints)
	s := &search{
		n:      n,
		obj:    obj,
		order:  make([]int, n),
		coeff:  make([][]float64, nc),
		op:     make([]Op, nc),
		rhs:    make([]float64, nc),
		lhs:    make([]float64, nc),
		assign: make([]float64, n),
	}
	for i := range s.order {
		s.order[i] = i
	}
	// Branch on high-reward variables first so the incumbent tightens the
	// bound early.
	sort.SliceStable(s.order, func(a, b int) bool {
		return obj[s.order[a]] > obj[s.order[b]]
	})

	for c, con := range m.constraints {
		row := make([]float64, n)
		for _, t := range con.Terms {
			row[t.Var.index] += t.Coeff
		}
		s.coeff[c] = row
		s.op[c] = con.Op
		s.rhs[c] = con.RHS
	}

	s.sufMin = make([][]float64, n+1)
	s.sufMax = make([][]float64, n+1)
	s.sufObj = make([]float64, n+1)
	s.sufMin[n] = make([]float64, nc)
	s.sufMax[n] = make([]float64, nc)
	for k := n - 1; k >= 0; k-- {
		vi := s.order[k]
		s.sufMin[k] = make([]float64, nc)
		s.sufMax[k] = make([]float64, nc)
		for c := 0; c < nc; c++ {
			s.sufMin[k][c] = s.sufMin[k+1][c]
			s.sufMax[k][c] = s.sufMax[k+1][c]
			if v := s.coeff[c][vi]; v < 0 {
				s.sufMin[k][c] += v
			} else {
				s.sufMax[k][c] += v
			}
		}
		s.sufObj[k] = s.sufObj[k+1]
		if obj[vi] > 0 {
			s.sufObj[k] += obj[vi]
		}
	}
	return s
}

func (s *search) run(ctx context.Context, verbose bool, log *logrus.Entry) *Solution {
	s.dfs(ctx, 0, verbose, log)

	sol := &Solution{NodesExplored: s.nodes}
	switch {
	case s.deadline:
		sol.Status = StatusTimedOut
	case !s.incumbent:
		sol.Status = StatusInfeasible
	default:
		sol.Status = StatusOptimal
		sol.Objective = s.best
		sol.values = s.bestSet
	}
	return sol
}

func (s *search) dfs(ctx context.Context, k int, verbose bool, log *logrus.Entry) {
	if s.deadline {
		return
	}
	s.nodes++
	if s.nodes&1023 == 0 {
		select {
		case <-ctx.Done():
			s.deadline = true
			return
		default:
		}
	}

	// Constraint reachability: prune branches from which no completion can
	// satisfy every constraint.
	for c := range s.rhs {
		lo := s.lhs[c] + s.sufMin[k][c]
		hi := s.lhs[c] + s.sufMax[k][c]
		if lo > s.rhs[c]+eps {
			return
		}
		if s.op[c] == EQ && hi < s.rhs[c]-eps {
			return
		}
	}

	// Objective bound against the incumbent.
	if s.incumbent && s.curObj+s.sufObj[k] <= s.best+eps {
		return
	}

	if k == s.n {
		// All LE constraints hold by the reachability check above
		// (sufMin is zero at the leaf); EQ constraints likewise pinch to
		// equality. Record the incumbent.
		if !s.incumbent || s.curObj > s.best {
			s.best = s.curObj
			s.bestSet = append([]float64(nil), s.assign...)
			s.incumbent = true
			if verbose {
				log.WithField("objective", s.best).Debug("Improved incumbent")
			}
		}
		return
	}

	vi := s.order[k]
	first, second := 1.0, 0.0
	if s.obj[vi] < 0 {
		first, second = 0.0, 1.0
	}
	for _, val := range []float64{first, second} {
		s.assign[vi] = val
		if val == 1 {
			s.curObj += s.obj[vi]
			for c := range s.rhs {
				s.lhs[c] += s.coeff[c][vi]
			}
		}
		s.dfs(ctx, k+1, verbose, log)
		if val == 1 {
			s.curObj -= s.obj[vi]
			for c := range s.rhs {
				s.lhs[c] -= s.coeff[c][vi]
			}
		}
		s.assign[vi] = 0
		if s.deadline {
			return
		}
	}
}
