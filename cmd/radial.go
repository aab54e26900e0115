package cmd

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gopetro/internal/diagram"
	"github.com/alexiusacademia/gopetro/internal/radial"
	"github.com/alexiusacademia/gopetro/internal/units"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

// Reservoir, fluid and well flags shared by the radial subcommands
var (
	radArea         float64
	radHeight       float64
	radPorosity     float64
	radPermeability float64
	radCompress     float64
	radPressure     float64
	radViscosity    float64
	radFVF          float64
	radWellRadius   float64
	radSkin         float64
	radRate         float64

	radTimes      []float64
	radNodes      []float64
	radCount      int
	radShowTable  bool
	radExportFile string
)

var radialCmd = &cobra.Command{
	Use:   "radial",
	Short: "Radial flow pressure solutions around a well",
	Long: `Pressure around a vertical well producing at constant rate from a
homogeneous reservoir of uniform thickness.

Subcommands:
  transient  - Line source solution for the infinite-acting period
  pss        - Pseudo-steady state solution for a closed drainage area

Inputs are oilfield units: acre, ft, md, cp, psi, 1/psi, bbl/STB, STB/d.
Times are in days and radial nodes in feet from the well.`,
}

func init() {
	rootCmd.AddCommand(radialCmd)

	f := radialCmd.PersistentFlags()

	// Reservoir
	f.Float64Var(&radArea, "area", 40, "Drainage area (acre)")
	f.Float64Var(&radHeight, "height", 50, "Net pay thickness (ft)")
	f.Float64Var(&radPorosity, "porosity", 0.2, "Porosity (fraction)")
	f.Float64VarP(&radPermeability, "permeability", "k", 50, "Permeability (md)")
	f.Float64Var(&radCompress, "ct", 1e-5, "Total compressibility (1/psi)")
	f.Float64Var(&radPressure, "pi", 4000, "Initial pressure (psi)")

	// Fluid
	f.Float64Var(&radViscosity, "viscosity", 1, "Oil viscosity (cp)")
	f.Float64Var(&radFVF, "fvf", 1.2, "Formation volume factor (bbl/STB)")

	// Well
	f.Float64Var(&radWellRadius, "rw", 0.3, "Wellbore radius (ft)")
	f.Float64Var(&radSkin, "skin", 0, "Skin factor")
	f.Float64VarP(&radRate, "rate", "q", 0, "Oil rate (STB/d) [required]")
	radialCmd.MarkPersistentFlagRequired("rate")

	// Grid and output
	f.Float64SliceVarP(&radTimes, "times", "t", nil, "Times (days); default spans the valid window")
	f.Float64SliceVar(&radNodes, "nodes", nil, "Radii (ft); default is log-spaced from rw to re")
	f.IntVar(&radCount, "count", 8, "Number of default times and nodes")
	f.BoolVar(&radShowTable, "diagram", true, "Show the pressure table")
	f.StringVarP(&radExportFile, "output", "o", "", "Export a pressure plot to file (png, svg, pdf)")
}

func radialInputs() (radial.Reservoir, radial.Fluid, radial.Well, error) {
	res := radial.Reservoir{
		Area:                 radArea,
		Height:               radHeight,
		Porosity:             radPorosity,
		Permeability:         radPermeability,
		TotalCompressibility: radCompress,
		InitialPressure:      radPressure,
	}
	fl := radial.Fluid{Viscosity: radViscosity, FVF: radFVF}
	w := radial.Well{Radius: radWellRadius, Skin: radSkin, Rate: radRate}
	if err := radial.Validate(res, fl, w); err != nil {
		return res, fl, w, err
	}
	if radCount < 2 {
		return res, fl, w, fmt.Errorf("count must be at least 2, got %d", radCount)
	}
	return res, fl, w, nil
}

// drainageRadius returns the radius (ft) of a circle with the flag area.
func drainageRadius() float64 {
	return math.Sqrt(radArea*units.Acre/math.Pi) / units.Foot
}

// defaultNodes spans rw to re on a log scale unless --nodes was given.
func defaultNodes() []float64 {
	if len(radNodes) > 0 {
		return radNodes
	}
	return floats.LogSpan(make([]float64, radCount), radWellRadius, drainageRadius())
}

func printRadialInputs(res radial.Reservoir, fl radial.Fluid, w radial.Well) {
	fmt.Println("INPUT PARAMETERS:")
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Drainage area:\t%.1f acre\t(re = %.1f ft)\n", res.Area, drainageRadius())
	fmt.Fprintf(tw, "  Thickness h:\t%.1f ft\n", res.Height)
	fmt.Fprintf(tw, "  Porosity φ:\t%.3f\n", res.Porosity)
	fmt.Fprintf(tw, "  Permeability k:\t%.1f md\n", res.Permeability)
	fmt.Fprintf(tw, "  Total compressibility ct:\t%.2e 1/psi\n", res.TotalCompressibility)
	fmt.Fprintf(tw, "  Initial pressure pi:\t%.1f psi\n", res.InitialPressure)
	fmt.Fprintf(tw, "  Viscosity μ:\t%.3f cp\n", fl.Viscosity)
	fmt.Fprintf(tw, "  FVF B:\t%.3f bbl/STB\n", fl.FVF)
	fmt.Fprintf(tw, "  Well radius rw:\t%.3f ft\n", w.Radius)
	fmt.Fprintf(tw, "  Skin s:\t%.2f\n", w.Skin)
	fmt.Fprintf(tw, "  Rate q:\t%.1f STB/d\n", w.Rate)
	tw.Flush()
	fmt.Println()
}

// solveRadial runs a solver and prints or exports the result. With history
// set the plot shows the pressure at the first node against time, otherwise
// one radial profile per time.
func solveRadial(solver radial.Solver, title string, times, nodes []float64, history bool) {
	result, err := solver.Solve(times, nodes)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if radShowTable {
		fmt.Println("PRESSURE (psi):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawPressureTable(result.Times, result.Nodes, result.Pressure))
	}

	if radExportFile == "" {
		return
	}

	data := diagram.PlotData{Title: title, YLabel: "Pressure (psi)"}
	if history {
		// every node carries the wellbore pressure
		data.XLabel = "Time (days)"
		data.Series = []diagram.Series{{Name: "wellbore", X: result.Times, Y: result.At(0)}}
	} else {
		data.XLabel = "Radius (ft)"
		data.LogX = true
		for i, t := range result.Times {
			data.Series = append(data.Series, diagram.Series{
				Name: fmt.Sprintf("t = %.4g d", t),
				X:    result.Nodes,
				Y:    result.Pressure[i],
			})
		}
	}

	if err := diagram.ExportPressureProfile(data, radExportFile); err != nil {
		fmt.Printf("Error exporting plot: %v\n", err)
	} else {
		fmt.Printf("Plot exported to: %s\n", radExportFile)
	}
}

func radialHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", strings.ToUpper(title))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}
