package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gopetro/internal/radial"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

var radShape string

var radialPSSCmd = &cobra.Command{
	Use:   "pss",
	Short: "Pseudo-steady state wellbore pressures",
	Long: `Evaluate the pseudo-steady state flowing pressure of a well centred in a
closed drainage area:

  pwf = pi − q·B·μ/(2πkh)·(½·ln(4A/(γ·C_A·rw²)) + s) − q·B·t/(Vp·ct)

The Dietz shape factor C_A and the start of pseudo-steady state come
from the drainage shape: circle, hexagon, square or triangle.
Times before the start are reported as "—".

Examples:
  gopetro radial pss --rate 300 --skin 2

  gopetro radial pss -q 300 --shape square -t 2,5,10,30 -o decline.png`,
	Run: runRadialPSS,
}

func init() {
	radialCmd.AddCommand(radialPSSCmd)

	radialPSSCmd.Flags().StringVar(&radShape, "shape", "circle", "Drainage shape: "+strings.Join(radial.ShapeNames(), ", "))
}

func runRadialPSS(cmd *cobra.Command, args []string) {
	res, fl, w, err := radialInputs()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	solver := &radial.PseudoSteady{Reservoir: res, Fluid: fl, Well: w, Shape: radShape, Logger: logger}
	boundary, err := solver.Boundary()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	start, _ := solver.StartTime()

	times := radTimes
	if len(times) == 0 {
		times = floats.Span(make([]float64, radCount), start, 10*start)
	}

	nodes := radNodes
	if len(nodes) == 0 {
		nodes = []float64{radWellRadius}
	}

	radialHeader("Radial pseudo-steady state")
	printRadialInputs(res, fl, w)

	fmt.Println("DRAINAGE SHAPE:")
	fmt.Printf("  Shape:                 %s\n", radShape)
	fmt.Printf("  Shape factor C_A:      %.4f\n", boundary.Factor)
	fmt.Printf("  Exact for tDA >        %.2f\n", boundary.ExactAfter)
	fmt.Printf("  PSS start time:        %.4f days\n", start)
	fmt.Println()

	solveRadial(solver, fmt.Sprintf("Pseudo-steady state (%s)", radShape), times, nodes, true)
}
