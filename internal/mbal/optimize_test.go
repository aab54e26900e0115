package mbal

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const exampleWaterInflux = 413081.25

func TestMinimizeWaterInflux(t *testing.T) {
	tests := []struct {
		name string
		opts *OptimizerOptions
	}{
		{"default options", nil},
		{"lower bound only", &OptimizerOptions{Bounds: map[string]Bound{"We": {Lower: 0, Upper: math.Inf(1)}}}},
		{"both bounds", &OptimizerOptions{Bounds: map[string]Bound{"We": {Lower: 0, Upper: 1e6}}}},
		{"explicit method", &OptimizerOptions{Method: "neldermead", Tolerance: 1e-14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tank := exampleTank()
			sol, err := tank.Minimize(false, tt.opts, Fields{"We": 100})
			if err != nil {
				t.Fatalf("Minimize() error = %v", err)
			}
			if !sol.Success {
				t.Fatalf("Minimize() did not converge: status %s, %s", sol.Status, sol.Message)
			}
			if len(sol.Names) != 1 || sol.Names[0] != "We" {
				t.Errorf("Names = %v, want [We]", sol.Names)
			}
			if got := sol.Values["We"]; !scalar.EqualWithinAbsOrRel(got, exampleWaterInflux, 1, 1e-3) {
				t.Errorf("We = %v, want %v", got, exampleWaterInflux)
			}
			if sol.X[0] != sol.Values["We"] {
				t.Errorf("X = %v does not match Values = %v", sol.X, sol.Values)
			}
			if sol.Residual > 1e-8 {
				t.Errorf("Residual = %v, want ~0", sol.Residual)
			}

			if tank.Current().Reservoir().We != 0 {
				t.Error("Minimize modified the current snapshot")
			}
		})
	}
}

func TestMinimizeEveryMethod(t *testing.T) {
	for _, method := range Methods {
		t.Run(method, func(t *testing.T) {
			tank := exampleTank()
			sol, err := tank.Minimize(false, &OptimizerOptions{Method: method}, Fields{"We": 100})
			if err != nil {
				t.Fatalf("Minimize() error = %v", err)
			}
			if !sol.Success {
				t.Fatalf("Minimize() did not converge: status %s, %s", sol.Status, sol.Message)
			}
			if got := sol.Values["We"]; !scalar.EqualWithinAbsOrRel(got, exampleWaterInflux, 1, 1e-3) {
				t.Errorf("We = %v, want %v (residual %v)", got, exampleWaterInflux, sol.Residual)
			}
			if sol.Residual > 1e-8 {
				t.Errorf("Residual = %v, want ~0", sol.Residual)
			}
		})
	}
}

func TestMinimizeWithoutProductionKeepsGuess(t *testing.T) {
	current := exampleCurrent()
	current["Np"] = 0
	tank := NewTank(exampleInitial(), WithLogger(quietLogger())).Transition(current)

	sol, err := tank.Minimize(false, nil, Fields{"We": 1e5})
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if sol.Success {
		t.Errorf("Success = true with a NaN objective, status %s", sol.Status)
	}
	if got := sol.Values["We"]; got != 1e5 {
		t.Errorf("We = %v, want the guess 1e5", got)
	}
	if sol.X[0] != 1e5 {
		t.Errorf("X = %v, want [1e5]", sol.X)
	}
}

func TestMinimizeWriteBack(t *testing.T) {
	tank := exampleTank()
	sol, err := tank.Minimize(false, nil, Fields{"We": 100})
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}

	tank.ReplaceCurrent(sol.Values)

	if got := tank.TotalDriveIndex(); math.Abs(got-1) > 1e-4 {
		t.Errorf("TotalDriveIndex() after write-back = %v, want 1", got)
	}
}

func TestMinimizeAlterInitial(t *testing.T) {
	tank := exampleTank().ReplaceCurrent(Fields{"We": exampleWaterInflux})

	sol, err := tank.Minimize(true, nil, Fields{"N": 8e6})
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if !sol.Success {
		t.Fatalf("Minimize() did not converge: status %s, %s", sol.Status, sol.Message)
	}
	if got := sol.Values["N"]; !scalar.EqualWithinAbsOrRel(got, 10_000_000, 10, 1e-4) {
		t.Errorf("N = %v, want 1e7", got)
	}
	if got := mustKnown(t, "initial N", tank.Initial().N()); got != 10_000_000 {
		t.Errorf("Minimize modified the initial snapshot: N = %v", got)
	}
}

func TestMinimizeEvaluationLimit(t *testing.T) {
	tank := exampleTank()
	sol, err := tank.Minimize(false, &OptimizerOptions{MaxEvaluations: 3}, Fields{"We": 100})
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if sol.Success {
		t.Errorf("Success = true after 3 evaluations, status %s", sol.Status)
	}
	if sol.Status == "" {
		t.Error("Status is empty")
	}
}

func TestMinimizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     *OptimizerOptions
		unknowns Fields
		want     error
	}{
		{"no unknowns", nil, Fields{}, ErrNoUnknowns},
		{"nil unknowns", nil, nil, ErrNoUnknowns},
		{"unknown field", nil, Fields{"Bx": 1}, ErrUnknownField},
		{"misqualified field", nil, Fields{"phase.N": 1}, ErrUnknownField},
		{"unknown method", &OptimizerOptions{Method: "Simplex"}, Fields{"We": 1}, ErrUnknownMethod},
		{"bound on a non-unknown", &OptimizerOptions{Bounds: map[string]Bound{"N": Unbounded()}}, Fields{"We": 1}, ErrInvalidBounds},
		{"inverted bound", &OptimizerOptions{Bounds: map[string]Bound{"We": {Lower: 10, Upper: 0}}}, Fields{"We": 5}, ErrInvalidBounds},
		{"NaN bound", &OptimizerOptions{Bounds: map[string]Bound{"We": {Lower: math.NaN(), Upper: 1}}}, Fields{"We": 0}, ErrInvalidBounds},
		{"guess outside bound", &OptimizerOptions{Bounds: map[string]Bound{"We": {Lower: 0, Upper: 10}}}, Fields{"We": 20}, ErrInvalidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := exampleTank().Minimize(false, tt.opts, tt.unknowns)
			if !errors.Is(err, tt.want) {
				t.Errorf("Minimize() error = %v, want %v", err, tt.want)
			}
			if sol != nil {
				t.Errorf("Minimize() returned a solution with an error: %+v", sol)
			}
		})
	}
}

func TestNewMethod(t *testing.T) {
	tests := []struct {
		name     string
		wantGrad bool
		wantErr  bool
	}{
		{"", false, false},
		{"NelderMead", false, false},
		{"neldermead", false, false},
		{"BFGS", true, false},
		{"lbfgs", true, false},
		{"CG", true, false},
		{"GradientDescent", false, true},
		{"Powell", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, grad, err := newMethod(tt.name, []float64{1})
			if (err != nil) != tt.wantErr {
				t.Fatalf("newMethod(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if m == nil {
				t.Fatalf("newMethod(%q) returned a nil method", tt.name)
			}
			if grad != tt.wantGrad {
				t.Errorf("newMethod(%q) needs gradient = %v, want %v", tt.name, grad, tt.wantGrad)
			}
		})
	}
}

func TestBoundTransformRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		bound  Bound
		values []float64
	}{
		{"unbounded", Unbounded(), []float64{-1e6, 0, 3.5, 1e9}},
		{"lower only", Bound{Lower: 0, Upper: math.Inf(1)}, []float64{0, 1, 413081.25, 1e8}},
		{"upper only", Bound{Lower: math.Inf(-1), Upper: 1}, []float64{-5e5, -1, 0.5, 1}},
		{"both sides", Bound{Lower: -2, Upper: 8}, []float64{-2, -1.5, 0, 3, 7.9, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := newTransform(tt.bound)
			if err != nil {
				t.Fatalf("newTransform() error = %v", err)
			}
			for _, x := range tt.values {
				got := tr.external(tr.internal(x))
				if !scalar.EqualWithinAbsOrRel(got, x, 1e-6, 1e-9) {
					t.Errorf("external(internal(%v)) = %v", x, got)
				}
			}
			for _, u := range []float64{-100, -1, 0, 2, 1e4} {
				x := tr.external(u)
				if x < tt.bound.Lower || x > tt.bound.Upper {
					t.Errorf("external(%v) = %v outside [%v, %v]", u, x, tt.bound.Lower, tt.bound.Upper)
				}
			}
		})
	}
}
