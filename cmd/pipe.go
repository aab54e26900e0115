package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopetro/internal/pipe"
	"github.com/spf13/cobra"
)

// Geometry flags shared by the pipe subcommands
var (
	pipeDiameter  float64
	pipeLength    float64
	pipeRoughness float64
	pipeMethod    string
)

var pipeCmd = &cobra.Command{
	Use:   "pipe",
	Short: "Pipe flow pressure drop calculations",
	Long: `Frictional pressure drop in a straight pipe.

Subcommands:
  drop      - Single-phase Darcy-Weisbach and Hazen-Williams losses
  twophase  - Homogeneous and Lockhart-Martinelli (Chisholm) two-phase losses

Geometry is given in field units: diameter in inches, length in feet and
a relative roughness ε/D.

Friction correlations: colebrook (default), haaland, chen, blasius.`,
}

func init() {
	rootCmd.AddCommand(pipeCmd)

	pipeCmd.PersistentFlags().Float64VarP(&pipeDiameter, "diameter", "d", 0, "Inner diameter (in) [required]")
	pipeCmd.PersistentFlags().Float64VarP(&pipeLength, "length", "L", 0, "Pipe length (ft) [required]")
	pipeCmd.PersistentFlags().Float64Var(&pipeRoughness, "roughness", 0.0001, "Relative roughness ε/D")
	pipeCmd.PersistentFlags().StringVar(&pipeMethod, "method", "colebrook", "Turbulent friction correlation")
	pipeCmd.MarkPersistentFlagRequired("diameter")
	pipeCmd.MarkPersistentFlagRequired("length")
}

// pipeFromFlags builds and validates the pipe and friction method.
func pipeFromFlags() (pipe.Pipe, pipe.FrictionMethod, error) {
	p := pipe.NewPipeField(pipeDiameter, pipeLength, pipeRoughness)
	if err := p.Validate(); err != nil {
		return p, 0, err
	}
	method, err := pipe.ParseFrictionMethod(pipeMethod)
	if err != nil {
		return p, 0, err
	}
	return p, method, nil
}

func printPipeGeometry(p pipe.Pipe, method pipe.FrictionMethod) {
	fmt.Println("PIPE:")
	fmt.Printf("  Diameter:            %.3f in (%.4f m)\n", pipeDiameter, p.Diameter)
	fmt.Printf("  Length:              %.1f ft (%.2f m)\n", pipeLength, p.Length)
	fmt.Printf("  Relative roughness:  %.2e\n", p.RelativeRoughness())
	fmt.Printf("  Flow area:           %.6f m²\n", p.CrossSection())
	fmt.Printf("  Internal volume:     %.4f m³\n", p.Volume())
	fmt.Printf("  Friction method:     %s\n", method)
	fmt.Println()
}
