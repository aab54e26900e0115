package mbal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

var (
	ErrNoUnknowns    = errors.New("no unknowns to solve for")
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownMethod = errors.New("unknown optimizer method")
	ErrInvalidBounds = errors.New("invalid bounds")
)

// Optimizer methods accepted by OptimizerOptions.Method.
const (
	MethodNelderMead = "NelderMead"
	MethodBFGS       = "BFGS"
	MethodLBFGS      = "LBFGS"
	MethodCG         = "CG"
)

// Methods lists the optimizer methods in the order they are documented.
// Plain gradient descent is not offered: with unknowns of the size of field
// volumes the gradient is tiny and it stalls at the guess while reporting
// function convergence.
var Methods = []string{MethodNelderMead, MethodBFGS, MethodLBFGS, MethodCG}

// Bound limits an unknown to [Lower, Upper]. Use math.Inf for an open side.
type Bound struct {
	Lower float64
	Upper float64
}

// Unbounded returns a bound that does not constrain the unknown.
func Unbounded() Bound {
	return Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// OptimizerOptions tunes Tank.Minimize. The zero value runs Nelder-Mead with
// gonum's default function convergence.
type OptimizerOptions struct {
	Method         string           // one of Methods; empty means NelderMead
	Bounds         map[string]Bound // optional, keyed by unknown name
	MaxIterations  int              // 0 means no limit
	MaxEvaluations int              // 0 means no limit
	Tolerance      float64          // absolute function convergence; 0 keeps the default
}

// Solution is the outcome of Tank.Minimize. The tank is not changed; callers
// write Values back with ReplaceCurrent when they accept the result.
type Solution struct {
	Names  []string  // unknowns, sorted
	X      []float64 // optimal values, aligned with Names
	Values Fields    // optimal values by name

	Residual float64 // (total drive index − 1)² at X
	Success  bool
	Status   string
	Message  string

	Evaluations int
	Iterations  int
}

// Minimize searches values for the named unknowns that make the total drive
// index equal 1. The values in unknowns are the initial guesses. With
// alterInitial the trial values are applied to the initial model and
// evaluated against the current one, otherwise the other way round.
//
// Non-convergence is reported through Solution.Success; an error is returned
// only for a malformed request.
func (t *Tank) Minimize(alterInitial bool, opts *OptimizerOptions, unknowns Fields) (*Solution, error) {
	if len(unknowns) == 0 {
		return nil, ErrNoUnknowns
	}
	if opts == nil {
		opts = &OptimizerOptions{}
	}

	names := unknowns.Keys()
	for _, name := range names {
		if _, ok := lookupField(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	for name := range opts.Bounds {
		if _, ok := unknowns[name]; !ok {
			return nil, fmt.Errorf("%w: %q is not an unknown", ErrInvalidBounds, name)
		}
	}

	transforms := make([]transform, len(names))
	x0 := make([]float64, len(names))
	for i, name := range names {
		b, ok := opts.Bounds[name]
		if !ok {
			b = Unbounded()
		}
		tr, err := newTransform(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBounds, name, err)
		}
		guess := unknowns[name]
		if guess < b.Lower || guess > b.Upper {
			return nil, fmt.Errorf("%w: initial guess %s=%g outside [%g, %g]", ErrInvalidBounds, name, guess, b.Lower, b.Upper)
		}
		transforms[i] = tr
		x0[i] = tr.internal(guess)
	}

	method, needsGrad, err := newMethod(opts.Method, x0)
	if err != nil {
		return nil, err
	}

	external := func(u []float64) Fields {
		trial := make(Fields, len(names))
		for i, name := range names {
			trial[name] = transforms[i].external(u[i])
		}
		return trial
	}

	initial, current := t.initial, t.current
	objective := func(u []float64) float64 {
		a, c := initial, current
		if alterInitial {
			a = initial.Derive(external(u))
		} else {
			c = current.Derive(external(u))
		}
		r := TotalDriveIndex(a, c) - 1
		return r * r
	}

	problem := optimize.Problem{Func: objective}
	if needsGrad {
		problem.Grad = func(grad, u []float64) {
			fd.Gradient(grad, objective, u, &fd.Settings{Formula: fd.Central})
		}
	}

	settings := &optimize.Settings{
		MajorIterations: opts.MaxIterations,
		FuncEvaluations: opts.MaxEvaluations,
	}
	if opts.Tolerance > 0 {
		settings.Converger = &optimize.FunctionConverge{
			Absolute:   opts.Tolerance,
			Iterations: 100,
		}
	}

	result, err := optimize.Minimize(problem, x0, settings, method)
	if result == nil {
		return nil, fmt.Errorf("minimizing total drive index: %w", err)
	}

	values := external(result.X)
	finite := !math.IsNaN(result.F) && !math.IsInf(result.F, 0)
	if !finite {
		// No trial produced a number, so result.X is meaningless.
		values = make(Fields, len(names))
		for _, name := range names {
			values[name] = unknowns[name]
		}
	}
	sol := &Solution{
		Names:       names,
		X:           make([]float64, len(names)),
		Values:      values,
		Residual:    result.F,
		Success:     err == nil && finite && converged(result.Status),
		Status:      result.Status.String(),
		Evaluations: result.Stats.FuncEvaluations,
		Iterations:  result.Stats.MajorIterations,
	}
	for i, name := range names {
		sol.X[i] = values[name]
	}
	if err != nil {
		sol.Message = err.Error()
	}

	initial.logger.Debug("minimized total drive index",
		"unknowns", strings.Join(names, ","),
		"status", sol.Status,
		"residual", sol.Residual,
		"evaluations", sol.Evaluations,
	)

	return sol, nil
}

func newMethod(name string, x0 []float64) (optimize.Method, bool, error) {
	switch {
	case name == "" || strings.EqualFold(name, MethodNelderMead):
		// Start with a simplex on the scale of the guesses; field volumes
		// are often millions of barrels.
		size := 0.05
		for _, x := range x0 {
			size = math.Max(size, 0.1*math.Abs(x))
		}
		return &optimize.NelderMead{SimplexSize: size}, false, nil
	case strings.EqualFold(name, MethodBFGS):
		return &optimize.BFGS{}, true, nil
	case strings.EqualFold(name, MethodLBFGS):
		return &optimize.LBFGS{}, true, nil
	case strings.EqualFold(name, MethodCG):
		return &optimize.CG{}, true, nil
	}
	return nil, false, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownMethod, name, strings.Join(Methods, ", "))
}

func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	}
	return false
}

// transform maps a bounded unknown onto an unbounded internal parameter
// with the MINUIT substitutions:
//
//	both sides:  x = lo + (hi−lo)·(sin u + 1)/2
//	lower only:  x = lo − 1 + √(u² + 1)
//	upper only:  x = hi + 1 − √(u² + 1)
type transform struct {
	lo, hi float64
}

func newTransform(b Bound) (transform, error) {
	if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) {
		return transform{}, errors.New("NaN bound")
	}
	if b.Lower >= b.Upper {
		return transform{}, fmt.Errorf("lower %g not below upper %g", b.Lower, b.Upper)
	}
	return transform{lo: b.Lower, hi: b.Upper}, nil
}

func (t transform) external(u float64) float64 {
	loOpen, hiOpen := math.IsInf(t.lo, -1), math.IsInf(t.hi, 1)
	switch {
	case loOpen && hiOpen:
		return u
	case hiOpen:
		return t.lo - 1 + math.Sqrt(u*u+1)
	case loOpen:
		return t.hi + 1 - math.Sqrt(u*u+1)
	}
	return t.lo + (t.hi-t.lo)*(math.Sin(u)+1)/2
}

func (t transform) internal(x float64) float64 {
	loOpen, hiOpen := math.IsInf(t.lo, -1), math.IsInf(t.hi, 1)
	switch {
	case loOpen && hiOpen:
		return x
	case hiOpen:
		d := x - t.lo + 1
		return math.Sqrt(d*d - 1)
	case loOpen:
		d := t.hi - x + 1
		return math.Sqrt(d*d - 1)
	}
	return math.Asin(2*(x-t.lo)/(t.hi-t.lo) - 1)
}
