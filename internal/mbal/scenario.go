package mbal

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scenario is a tank analysis read from a JSON file: the initial state, the
// current operating conditions and, optionally, what to solve for.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Initial Fields `json:"initial"`
	Current Fields `json:"current,omitempty"`

	Solve *SolveSection `json:"solve,omitempty"`
}

// SolveSection describes a Minimize run.
type SolveSection struct {
	Unknowns     Fields `json:"unknowns"`
	AlterInitial bool   `json:"alter_initial,omitempty"`
	Method       string `json:"method,omitempty"`

	// Bounds per unknown as [lower, upper]; null leaves that side open.
	Bounds map[string][2]*float64 `json:"bounds,omitempty"`

	MaxIterations  int     `json:"max_iterations,omitempty"`
	MaxEvaluations int     `json:"max_evaluations,omitempty"`
	Tolerance      float64 `json:"tolerance,omitempty"`
}

// Options converts the solve section into optimizer options.
func (s *SolveSection) Options() *OptimizerOptions {
	opts := &OptimizerOptions{
		Method:         s.Method,
		MaxIterations:  s.MaxIterations,
		MaxEvaluations: s.MaxEvaluations,
		Tolerance:      s.Tolerance,
	}
	if len(s.Bounds) > 0 {
		opts.Bounds = make(map[string]Bound, len(s.Bounds))
		for name, pair := range s.Bounds {
			b := Unbounded()
			if pair[0] != nil {
				b.Lower = *pair[0]
			}
			if pair[1] != nil {
				b.Upper = *pair[1]
			}
			opts.Bounds[name] = b
		}
	}
	return opts
}

// LoadScenario loads a scenario definition from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a JSON scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the scenario can be run.
func (s *Scenario) Validate() error {
	if len(s.Initial) == 0 {
		return &ValidationError{"scenario must define initial fields"}
	}
	if s.Solve != nil {
		if len(s.Solve.Unknowns) == 0 {
			return &ValidationError{"solve must name at least one unknown"}
		}
		for name := range s.Solve.Unknowns {
			if _, ok := lookupField(name); !ok {
				return &ValidationError{fmt.Sprintf("solve unknown %q is not a model field", name)}
			}
		}
	}
	return nil
}

// Tank builds the tank described by the scenario, with the current state
// set when the scenario has current fields.
func (s *Scenario) Tank(opts ...Option) *Tank {
	t := NewTank(s.Initial, opts...)
	if len(s.Current) > 0 {
		t.Transition(s.Current)
	}
	return t
}

// ValidationError represents a scenario validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
