package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gopetro/internal/pipe"
	"github.com/alexiusacademia/gopetro/internal/units"
	"github.com/spf13/cobra"
)

var (
	tpGasRate         float64
	tpLiquidRate      float64
	tpGasDensity      float64
	tpGasViscosity    float64
	tpLiquidDensity   float64
	tpLiquidViscosity float64
	tpSlip            float64
)

var pipeTwoPhaseCmd = &cobra.Command{
	Use:   "twophase",
	Short: "Two-phase gas-liquid frictional pressure drop",
	Long: `Compute the two-phase frictional pressure drop of a gas-liquid flow with
the homogeneous model and with the Lockhart-Martinelli separated-flow
model using Chisholm's constant.

The homogeneous model lumps both phases into one pseudo-fluid. The
separated-flow model evaluates each phase as if it flowed alone, with
Reynolds limits of 1000 (laminar) and 2000 (turbulent). A phase in the
transition zone has no Chisholm constant and is reported as an error.

Gas rate is at flowing conditions (ft³/d).

Examples:
  gopetro pipe twophase -d 4 -L 1000 --gas-rate 200000 --liquid-rate 1500

  # Heavier oil, slip between phases
  gopetro pipe twophase -d 3 -L 2000 --gas-rate 50000 --liquid-rate 800 \
      --liquid-density 55 --liquid-viscosity 8 --slip 1.5`,
	Run: runPipeTwoPhase,
}

func init() {
	pipeCmd.AddCommand(pipeTwoPhaseCmd)

	// Rates
	pipeTwoPhaseCmd.Flags().Float64Var(&tpGasRate, "gas-rate", 0, "Gas rate at flowing conditions (ft³/d) [required]")
	pipeTwoPhaseCmd.Flags().Float64Var(&tpLiquidRate, "liquid-rate", 0, "Liquid rate (bbl/d) [required]")
	pipeTwoPhaseCmd.MarkFlagRequired("gas-rate")
	pipeTwoPhaseCmd.MarkFlagRequired("liquid-rate")

	// Fluid properties
	pipeTwoPhaseCmd.Flags().Float64Var(&tpGasDensity, "gas-density", 5.0, "Gas density (lb/ft³)")
	pipeTwoPhaseCmd.Flags().Float64Var(&tpGasViscosity, "gas-viscosity", 0.015, "Gas viscosity (cp)")
	pipeTwoPhaseCmd.Flags().Float64Var(&tpLiquidDensity, "liquid-density", 62.4, "Liquid density (lb/ft³)")
	pipeTwoPhaseCmd.Flags().Float64Var(&tpLiquidViscosity, "liquid-viscosity", 1.0, "Liquid viscosity (cp)")
	pipeTwoPhaseCmd.Flags().Float64Var(&tpSlip, "slip", 1.0, "Gas-to-liquid velocity ratio for the homogeneous model")
}

func runPipeTwoPhase(cmd *cobra.Command, args []string) {
	p, method, err := pipeFromFlags()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	gas := pipe.Fluid{
		Density:   units.PoundsPerCubicFoot(tpGasDensity),
		Viscosity: tpGasViscosity * units.Centipoise,
	}
	liquid := pipe.Fluid{
		Density:   units.PoundsPerCubicFoot(tpLiquidDensity),
		Viscosity: tpLiquidViscosity * units.Centipoise,
	}
	for _, f := range []pipe.Fluid{gas, liquid} {
		if err := f.Validate(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
	if tpGasRate <= 0 || tpLiquidRate <= 0 {
		fmt.Println("Error: gas and liquid rates must be positive")
		return
	}
	if tpSlip <= 0 {
		fmt.Println("Error: slip must be positive")
		return
	}

	qg := units.CubicFeetPerDay(tpGasRate)
	ql := units.BarrelsPerDay(tpLiquidRate)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     TWO-PHASE PIPE PRESSURE DROP")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printPipeGeometry(p, method)

	fmt.Println("FLUIDS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Phase\tRate\tDensity (lb/ft³)\tViscosity (cp)\n")
	fmt.Fprintf(w, "  ─────\t────\t────────────────\t──────────────\n")
	fmt.Fprintf(w, "  Gas\t%.0f ft³/d\t%.3f\t%.4f\n", tpGasRate, tpGasDensity, tpGasViscosity)
	fmt.Fprintf(w, "  Liquid\t%.1f bbl/d\t%.3f\t%.4f\n", tpLiquidRate, tpLiquidDensity, tpLiquidViscosity)
	w.Flush()
	fmt.Println()

	// Homogeneous model
	mix := &pipe.Mixture{
		Pipe:   p,
		Gas:    gas,
		Liquid: liquid,
		Slip:   tpSlip,
		Method: method,
	}
	mf := mix.Fluid(qg, ql)
	mixDrop := mix.PressureDrop(qg, ql)

	fmt.Println("HOMOGENEOUS MODEL:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Quality (gas mass fraction):\t%.4f\n", mf.Quality)
	fmt.Fprintf(w, "  Voidage (gas volume fraction):\t%.4f\n", mf.Voidage)
	fmt.Fprintf(w, "  Mixture density:\t%.2f kg/m³\n", mf.Density)
	fmt.Fprintf(w, "  Mixture viscosity:\t%.4f cp\n", mf.Viscosity/units.Centipoise)
	fmt.Fprintf(w, "  Mixture rate:\t%.6f m³/s\n", mf.Rate)
	fmt.Fprintf(w, "  Reynolds number:\t%.0f\n", pipe.Reynolds(p, mf.Fluid, mf.Rate))
	fmt.Fprintf(w, "  Pressure drop:\t%.1f Pa\t(%.3f psi)\n", mixDrop, units.ToPsi(mixDrop))
	w.Flush()
	fmt.Println()

	// Separated-flow model
	lm := &pipe.LockhartMartinelli{
		Pipe:   p,
		Gas:    gas,
		Liquid: liquid,
		Method: method,
		Logger: logger,
	}

	fmt.Println("LOCKHART-MARTINELLI (CHISHOLM):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	res, err := lm.Chisholm(qg, ql)
	if err != nil {
		if errors.Is(err, pipe.ErrTransitionRegime) {
			fmt.Printf("  ✗ %v\n", err)
			fmt.Println("    Change the rates or the pipe size to leave the transition zone.")
			fmt.Println()
			return
		}
		fmt.Printf("Error: %v\n", err)
		return
	}

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Superficial gas:\t%s\t%.1f Pa\n", res.GasRegime, res.DropGas)
	fmt.Fprintf(w, "  Superficial liquid:\t%s\t%.1f Pa\n", res.LiquidRegime, res.DropLiquid)
	fmt.Fprintf(w, "  Martinelli parameter X:\t%.4f\n", res.X)
	fmt.Fprintf(w, "  Chisholm constant C:\t%.0f\n", res.C)
	fmt.Fprintf(w, "  Multipliers φG, φL:\t%.4f\t%.4f\n", res.PhiG, res.PhiL)
	fmt.Fprintf(w, "  Pressure drop:\t%.1f Pa\t(%.3f psi)\n", res.PressureDrop, units.ToPsi(res.PressureDrop))
	w.Flush()
	fmt.Println()

	fmt.Println("FLOW-PATTERN COEFFICIENTS AT X:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for pattern := pipe.DispersedBubbly; pattern <= pipe.AnnularMist; pattern++ {
		fmt.Fprintf(w, "  %s\t%.3f\n", pattern, pattern.Coefficient(res.X))
	}
	w.Flush()
	fmt.Println()
}
