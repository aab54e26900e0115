package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopetro/internal/radial"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

var radialTransientCmd = &cobra.Command{
	Use:   "transient",
	Short: "Infinite-acting line source pressures",
	Long: `Evaluate the line source solution of the radial diffusivity equation

  p(r, t) = pi − q·B·μ/(2πkh)·(−½·Ei(−r²/(4ηt)) + s)

The solution is valid between tmin = 100·rw²/η, when the finite wellbore
stops mattering, and tmax = 0.25·re²/η, when the outer boundary is felt.
Times outside that window are reported as "—".

Examples:
  gopetro radial transient --rate 300 --skin 2

  gopetro radial transient -q 300 -t 0.01,0.1,0.5 --nodes 0.3,10,100,500 -o profile.png`,
	Run: runRadialTransient,
}

func init() {
	radialCmd.AddCommand(radialTransientCmd)
}

func runRadialTransient(cmd *cobra.Command, args []string) {
	res, fl, w, err := radialInputs()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	solver := &radial.Transient{Reservoir: res, Fluid: fl, Well: w, Logger: logger}
	tmin, tmax := solver.TimeLimits()

	times := radTimes
	if len(times) == 0 {
		times = floats.LogSpan(make([]float64, radCount), tmin, tmax)
		// pin the ends against exp(log(x)) round-off
		times[0], times[len(times)-1] = tmin, tmax
	}

	radialHeader("Radial transient (line source)")
	printRadialInputs(res, fl, w)

	fmt.Println("VALIDITY WINDOW:")
	fmt.Printf("  tmin = %.4e days (%.2f min)\n", tmin, tmin*24*60)
	fmt.Printf("  tmax = %.4f days (%.2f h)\n", tmax, tmax*24)
	fmt.Println()

	solveRadial(solver, "Line source pressure profile", times, defaultNodes(), false)
}
