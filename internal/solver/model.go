package solver

import "fmt"

// Sense selects the optimization direction.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

// Op is the relation of a linear constraint.
type Op int

const (
	// LE constrains the linear expression to be <= the right-hand side.
	LE Op = iota
	// EQ constrains the linear expression to equal the right-hand side.
	EQ
)

func (o Op) String() string {
	if o == EQ {
		return "=="
	}
	return "<="
}

// Var is a handle to one binary decision variable. Handles are only valid for
// the model that created them.
type Var struct {
	index int
	name  string
}

// Name returns the variable's identifier.
func (v Var) Name() string { return v.name }

// Term is one coefficient*variable entry in a linear expression.
type Term struct {
	Var   Var
	Coeff float64
}

// Constraint is a named linear constraint over binary variables.
type Constraint struct {
	Name  string
	Terms []Term
	Op    Op
	RHS   float64
}

// Model is a 0/1 integer program: binary decision variables, one linear
// objective and a set of linear EQ/LE constraints. A Model is built per call
// and holds no solver state; it is safe to build independent models
// concurrently.
type Model struct {
	name        string
	varNames    []string
	objective   []float64
	sense       Sense
	constraints []Constraint
}

// NewModel creates an empty model. The name appears in diagnostics only.
func NewModel(name string) *Model {
	return &Model{name: name, sense: Maximize}
}

// Name returns the model's diagnostic name.
func (m *Model) Name() string { return m.name }

// NumVars returns the number of decision variables added so far.
func (m *Model) NumVars() int { return len(m.varNames) }

// NumConstraints returns the number of constraints added so far.
func (m *Model) NumConstraints() int { return len(m.constraints) }

// AddBinary adds a binary decision variable and returns its handle. Variables
// are keyed by the stable name supplied by the caller, not by insertion order.
func (m *Model) AddBinary(name string) Var {
	v := Var{index: len(m.varNames), name: name}
	m.varNames = append(m.varNames, name)
	m.objective = append(m.objective, 0)
	return v
}

// SetObjective replaces the objective with the given sense and terms. Terms
// for the same variable accumulate.
func (m *Model) SetObjective(sense Sense, terms ...Term) {
	m.sense = sense
	for i := range m.objective {
		m.objective[i] = 0
	}
	for _, t := range terms {
		m.objective[t.Var.index] += t.Coeff
	}
}

// AddConstraint adds a named linear constraint. Zero-coefficient terms are
// kept; they are harmless and preserve caller bookkeeping.
func (m *Model) AddConstraint(name string, op Op, rhs float64, terms ...Term) {
	m.constraints = append(m.constraints, Constraint{
		Name:  name,
		Terms: terms,
		Op:    op,
		RHS:   rhs,
	})
}

// describe renders a constraint for verbose diagnostics.
func describe(c Constraint) string {
	return fmt.Sprintf("%s: %d terms %s %.4f", c.Name, len(c.Terms), c.Op, c.RHS)
}
