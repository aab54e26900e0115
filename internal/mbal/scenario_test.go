package mbal

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const exampleScenario = `{
  "name": "Ahmed example 11-1",
  "description": "Gas-cap drive reservoir after 1 MMSTB of production",
  "initial": {"M": 0.25, "P": 3000, "N": 1e7, "Sw": 0.2, "Bo": 1.58, "Bw": 1.0,
              "Bg": 0.0008, "Rs": 1040, "cw": 1.5e-6, "cf": 1e-6},
  "current": {"P": 2800, "Bo": 1.48, "Rs": 850, "Bg": 0.00092,
              "Np": 1e6, "Gp": 1.1e9, "Wp": 5e4},
  "solve": {
    "unknowns": {"We": 100},
    "method": "NelderMead",
    "bounds": {"We": [0, null]},
    "max_evaluations": 2000
  }
}`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.json")
	if err := os.WriteFile(path, []byte(exampleScenario), 0o644); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}
	if s.Name != "Ahmed example 11-1" {
		t.Errorf("Name = %q", s.Name)
	}
	if len(s.Initial) != 10 || len(s.Current) != 7 {
		t.Errorf("got %d initial and %d current fields, want 10 and 7", len(s.Initial), len(s.Current))
	}

	tank := s.Tank(WithLogger(quietLogger()))
	want := exampleTank().TotalDriveIndex()
	if got := tank.TotalDriveIndex(); got != want {
		t.Errorf("scenario TotalDriveIndex() = %v, want %v", got, want)
	}

	opts := s.Solve.Options()
	if opts.Method != MethodNelderMead || opts.MaxEvaluations != 2000 {
		t.Errorf("Options() = %+v", opts)
	}
	b, ok := opts.Bounds["We"]
	if !ok {
		t.Fatal("Options() lost the We bound")
	}
	if b.Lower != 0 || !math.IsInf(b.Upper, 1) {
		t.Errorf("We bound = %+v, want [0, +Inf)", b)
	}

	sol, err := tank.Minimize(s.Solve.AlterInitial, opts, s.Solve.Unknowns)
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if !sol.Success {
		t.Errorf("Minimize() did not converge: %s", sol.Status)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadScenario() error = %v, want os.ErrNotExist", err)
	}
}

func TestScenarioWithoutCurrent(t *testing.T) {
	s, err := ParseScenario([]byte(`{"name": "initial only", "initial": {"N": 1e7, "M": 0.25, "Bg": 0.0008}}`))
	if err != nil {
		t.Fatalf("ParseScenario() error = %v", err)
	}
	tank := s.Tank(WithLogger(quietLogger()))
	if *tank.Current() != *tank.Initial() {
		t.Error("current snapshot should equal the initial one when no current fields are given")
	}
}

func TestParseScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"valid", `{"initial": {"N": 1}}`, false},
		{"malformed json", `{"initial": `, true},
		{"no initial", `{"name": "x"}`, true},
		{"empty initial", `{"initial": {}}`, true},
		{"solve without unknowns", `{"initial": {"N": 1}, "solve": {"unknowns": {}}}`, true},
		{"solve with bad unknown", `{"initial": {"N": 1}, "solve": {"unknowns": {"Bx": 1}}}`, true},
		{"solve with qualified unknown", `{"initial": {"N": 1}, "solve": {"unknowns": {"reservoir.We": 1}}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseScenario() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorType(t *testing.T) {
	_, err := ParseScenario([]byte(`{"initial": {}}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a *ValidationError", err)
	}
	if verr.Error() == "" {
		t.Error("ValidationError has an empty message")
	}
}
