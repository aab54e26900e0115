package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gopetro/internal/diagram"
	"github.com/alexiusacademia/gopetro/internal/pipe"
	"github.com/alexiusacademia/gopetro/internal/units"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

var (
	dropRate       float64
	dropDensity    float64
	dropViscosity  float64
	dropHazenC     float64
	dropMoodyFile  string
	dropMoodyCurve []float64
)

var pipeDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Single-phase frictional pressure drop",
	Long: `Compute the Reynolds number, flow regime, Darcy friction factor, head
loss and pressure drop of a single-phase liquid in a pipe, together with
the Hazen-Williams head loss for comparison.

In the laminar zone the friction factor is 64/Re. Between the laminar and
turbulent limits (2000 and 4000) it is undefined and reported as NaN.

Examples:
  # 4 in line, 1000 ft, 2000 bbl/d of water
  gopetro pipe drop -d 4 -L 1000 --rate 2000

  # Oil with the Haaland correlation and a Moody chart
  gopetro pipe drop -d 6 -L 5280 --rate 5000 --density 53 --viscosity 5 \
      --method haaland --moody moody.png`,
	Run: runPipeDrop,
}

func init() {
	pipeCmd.AddCommand(pipeDropCmd)

	// Fluid and rate
	pipeDropCmd.Flags().Float64VarP(&dropRate, "rate", "q", 0, "Liquid rate (bbl/d) [required]")
	pipeDropCmd.MarkFlagRequired("rate")
	pipeDropCmd.Flags().Float64Var(&dropDensity, "density", 62.4, "Liquid density (lb/ft³)")
	pipeDropCmd.Flags().Float64Var(&dropViscosity, "viscosity", 1.0, "Liquid viscosity (cp)")
	pipeDropCmd.Flags().Float64Var(&dropHazenC, "hazen-c", pipe.DefaultHazenWilliamsC, "Hazen-Williams roughness coefficient")

	// Output options
	pipeDropCmd.Flags().StringVar(&dropMoodyFile, "moody", "", "Export a Moody chart to file (png, svg, pdf)")
	pipeDropCmd.Flags().Float64SliceVar(&dropMoodyCurve, "moody-roughness", []float64{0, 1e-4, 1e-3, 1e-2}, "Relative roughness curves on the Moody chart")
}

func runPipeDrop(cmd *cobra.Command, args []string) {
	p, method, err := pipeFromFlags()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fluid := pipe.Fluid{
		Density:   units.PoundsPerCubicFoot(dropDensity),
		Viscosity: dropViscosity * units.Centipoise,
	}
	if err := fluid.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if dropRate <= 0 {
		fmt.Println("Error: rate must be positive")
		return
	}

	dw := pipe.NewDarcyWeisbach(p, fluid)
	dw.Method = method
	hw := &pipe.HazenWilliams{Pipe: p, C: dropHazenC}

	q := units.BarrelsPerDay(dropRate)
	re := dw.Reynolds(q)
	regime := dw.Regime(q)
	f := dw.Friction(q)
	head := dw.HeadLoss(q)
	drop := dw.PressureDrop(q)
	hwHead := hw.HeadLoss(q)

	logger.Debug("single-phase pressure drop",
		"rate_m3s", q, "reynolds", re, "regime", regime.String(), "friction", f)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SINGLE-PHASE PIPE PRESSURE DROP")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printPipeGeometry(p, method)

	fmt.Println("FLUID:")
	fmt.Printf("  Density:             %.2f lb/ft³ (%.1f kg/m³)\n", dropDensity, fluid.Density)
	fmt.Printf("  Viscosity:           %.3f cp\n", dropViscosity)
	fmt.Printf("  Rate:                %.1f bbl/d (%.6f m³/s)\n", dropRate, q)
	fmt.Println()

	fmt.Println("DARCY-WEISBACH:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Velocity:\t%.3f m/s\t(%.3f ft/s)\n", dw.Velocity(q), dw.Velocity(q)/units.Foot)
	fmt.Fprintf(w, "  Reynolds number:\t%.0f\t%s\n", re, regime)
	fmt.Fprintf(w, "  Friction factor:\t%.6f\n", f)
	fmt.Fprintf(w, "  Head loss:\t%.3f m\t(%.3f ft)\n", head, head/units.Foot)
	fmt.Fprintf(w, "  Pressure drop:\t%.1f Pa\t(%.3f psi)\n", drop, units.ToPsi(drop))
	w.Flush()
	fmt.Println()

	if regime == pipe.Transition {
		fmt.Println("  ⚠ Flow is in the transition zone; the friction factor is undefined.")
		fmt.Println()
	}

	fmt.Println("HAZEN-WILLIAMS (water):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Coefficient C:\t%.0f\n", dropHazenC)
	fmt.Fprintf(w, "  Head loss:\t%.3f m\t(%.3f ft)\n", hwHead, hwHead/units.Foot)
	w.Flush()
	fmt.Println()

	if dropMoodyFile != "" {
		data := moodyData(p, method, re, f)
		if err := diagram.ExportMoodyChart(data, dropMoodyFile); err != nil {
			fmt.Printf("Error exporting Moody chart: %v\n", err)
		} else {
			fmt.Printf("Moody chart exported to: %s\n", dropMoodyFile)
		}
	}
}

// moodyData builds friction factor curves over Re = 10²..10⁸ for the
// requested roughness values and marks the operating point.
func moodyData(p pipe.Pipe, method pipe.FrictionMethod, re, f float64) diagram.PlotData {
	limits := pipe.DefaultLimits()
	reynolds := floats.LogSpan(make([]float64, 200), 1e2, 1e8)

	curves := append([]float64{}, dropMoodyCurve...)
	if !containsClose(curves, p.RelativeRoughness()) {
		curves = append(curves, p.RelativeRoughness())
	}

	data := diagram.PlotData{
		Title:  fmt.Sprintf("Moody chart (%s)", method),
		XLabel: "Reynolds number",
		YLabel: "Darcy friction factor",
		LogX:   true,
		LogY:   true,
	}
	for _, epd := range curves {
		ff := make([]float64, len(reynolds))
		for i, r := range reynolds {
			ff[i] = pipe.FrictionFactor(r, epd, limits, method)
		}
		data.Series = append(data.Series, diagram.Series{
			Name: fmt.Sprintf("ε/D = %g", epd),
			X:    reynolds,
			Y:    ff,
		})
	}
	data.Series = append(data.Series, diagram.Series{
		Name: "operating point",
		X:    []float64{re},
		Y:    []float64{f},
	})
	return data
}

func containsClose(xs []float64, v float64) bool {
	for _, x := range xs {
		if scalar.EqualWithinAbsOrRel(x, v, 1e-12, 1e-9) {
			return true
		}
	}
	return false
}
