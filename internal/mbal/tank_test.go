package mbal

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestTransitionResetsGasCapRatio(t *testing.T) {
	tank := exampleTank()
	initial, current := tank.Initial(), tank.Current()

	if got := mustKnown(t, "initial M", initial.M()); got != 0.25 {
		t.Errorf("initial M = %v, want 0.25", got)
	}
	if initial.Basis() != BasisOilAndRatio {
		t.Errorf("initial Basis() = %v, want %v", initial.Basis(), BasisOilAndRatio)
	}

	if current.Basis() != BasisOilAndGas {
		t.Fatalf("current Basis() = %v, want %v", current.Basis(), BasisOilAndGas)
	}
	if got := mustKnown(t, "current M", current.M()); !scalar.EqualWithinAbsOrRel(got, 0.3069256756756757, 1e-12, 1e-12) {
		t.Errorf("current M = %v, want 0.3069256756756757", got)
	}
	if got := mustKnown(t, "current N", current.N()); got != 10_000_000 {
		t.Errorf("current N = %v, want 1e7", got)
	}
	if got := mustKnown(t, "current G", current.G()); !scalar.EqualWithinAbsOrRel(got, 4.9375e9, 1e-3, 1e-12) {
		t.Errorf("current G = %v, want 4.9375e9", got)
	}

	if initial.Phase().Bo != 1.58 || initial.Operation().Np != 0 {
		t.Errorf("Transition modified the initial model: %+v %+v", initial.Phase(), initial.Operation())
	}
}

func TestTransitionAlwaysStartsFromInitial(t *testing.T) {
	tank := exampleTank()
	tank.Transition(Fields{"P": 2500})

	c := tank.Current()
	if got := mustKnown(t, "P", c.Reservoir().P); got != 2500 {
		t.Errorf("P = %v, want 2500", got)
	}
	if c.Operation().Np != 0 {
		t.Errorf("Np = %v, want 0: previous current state leaked into the transition", c.Operation().Np)
	}
	if c.Phase().Bo != 1.58 {
		t.Errorf("Bo = %v, want initial 1.58", c.Phase().Bo)
	}
	if got := mustKnown(t, "M", c.M()); !scalar.EqualWithinAbsOrRel(got, 0.25, 1e-12, 1e-12) {
		t.Errorf("M = %v, want 0.25 re-derived from initial N and G", got)
	}
}

func TestTransitionWithRatioOverride(t *testing.T) {
	current := exampleCurrent()
	current["M"] = 0.3
	tank := NewTank(exampleInitial(), WithLogger(quietLogger())).Transition(current)

	c := tank.Current()
	if c.Basis() != BasisOilAndRatio {
		t.Fatalf("Basis() = %v, want %v", c.Basis(), BasisOilAndRatio)
	}
	want := 10_000_000 * 1.48 * 0.3 / 0.00092
	if got := mustKnown(t, "G", c.G()); !scalar.EqualWithinAbsOrRel(got, want, 1e-3, 1e-12) {
		t.Errorf("G = %v, want %v", got, want)
	}
}

func TestReplaceCurrentKeepsPreviousSnapshot(t *testing.T) {
	tank := exampleTank()
	before := tank.Current()
	beforeTotal := tank.TotalDriveIndex()

	tank.ReplaceCurrent(Fields{"We": 413081.25})

	if before.Reservoir().We != 0 {
		t.Errorf("previous snapshot We = %v, want 0", before.Reservoir().We)
	}
	if tank.Current() == before {
		t.Fatal("ReplaceCurrent reused the previous snapshot")
	}
	if got := tank.Current().Operation().Np; got != 1_000_000 {
		t.Errorf("Np = %v, want the current state kept", got)
	}
	if got := TotalDriveIndex(tank.Initial(), before); got != beforeTotal {
		t.Errorf("previous snapshot total changed to %v, want %v", got, beforeTotal)
	}
	if got := tank.TotalDriveIndex(); !scalar.EqualWithinAbsOrRel(got, 1, 1e-9, 1e-9) {
		t.Errorf("TotalDriveIndex() = %v, want 1", got)
	}
}

func TestNewTankCurrentIsIndependentCopy(t *testing.T) {
	tank := NewTank(exampleInitial(), WithLogger(quietLogger()))

	if tank.Current() == tank.Initial() {
		t.Fatal("current snapshot aliases the initial one")
	}
	if *tank.Current() != *tank.Initial() {
		t.Error("current snapshot differs from the initial one before any transition")
	}

	tank.ReplaceCurrent(Fields{"Bo": 2})
	if tank.Initial().Phase().Bo != 1.58 {
		t.Errorf("initial Bo = %v, want 1.58", tank.Initial().Phase().Bo)
	}
}
