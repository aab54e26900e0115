package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gopetro/internal/diagram"
	"github.com/alexiusacademia/gopetro/internal/mbal"
	"github.com/spf13/cobra"
)

var (
	solveFile         string
	solveSet          map[string]string
	solveUnknowns     map[string]string
	solveMethod       string
	solveAlterInitial bool
	solveLower        map[string]string
	solveUpper        map[string]string
	solveMaxEvals     int
	solveMaxIter      int
	solveTolerance    float64
	solveWriteBack    bool
	solveShowDiagram  bool
	solveExportFile   string
)

var tankSolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve for unknown inputs that balance the tank",
	Long: `Search values for one or more unknown fields so that the total drive
index of the tank equals 1.

Unknowns and their initial guesses come from --unknown, or from the
"solve" section of the scenario file when no --unknown is given.
By default the unknowns are applied to the current state; with
--alter-initial they are applied to the initial state instead.

Methods: NelderMead (default), BFGS, LBFGS, CG.
Gradient-based methods use central finite differences.

Examples:
  # Water influx that balances the tank
  gopetro tank solve -f example.json --unknown We=1e5 --lower We=0

  # Oil in place from the initial state
  gopetro tank solve -f example.json --unknown N=8e6 --alter-initial

  # Accept the result and show the new drive indices
  gopetro tank solve -f example.json --unknown We=1e5 --write-back --diagram`,
	Run: runTankSolve,
}

func init() {
	tankCmd.AddCommand(tankSolveCmd)

	tankSolveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Path to scenario JSON file [required]")
	tankSolveCmd.MarkFlagRequired("file")
	tankSolveCmd.Flags().StringToStringVar(&solveSet, "set", nil, "Override current fields before solving")

	// Problem definition
	tankSolveCmd.Flags().StringToStringVarP(&solveUnknowns, "unknown", "u", nil, "Unknowns with initial guesses, e.g. --unknown We=1e5")
	tankSolveCmd.Flags().BoolVar(&solveAlterInitial, "alter-initial", false, "Apply the unknowns to the initial state")
	tankSolveCmd.Flags().StringToStringVar(&solveLower, "lower", nil, "Lower bounds, e.g. --lower We=0")
	tankSolveCmd.Flags().StringToStringVar(&solveUpper, "upper", nil, "Upper bounds, e.g. --upper We=1e7")

	// Optimizer settings
	tankSolveCmd.Flags().StringVarP(&solveMethod, "method", "m", "", "Optimizer method (default NelderMead)")
	tankSolveCmd.Flags().IntVar(&solveMaxEvals, "max-evals", 0, "Maximum objective evaluations (0 = no limit)")
	tankSolveCmd.Flags().IntVar(&solveMaxIter, "max-iter", 0, "Maximum major iterations (0 = no limit)")
	tankSolveCmd.Flags().Float64Var(&solveTolerance, "tolerance", 0, "Absolute convergence tolerance on the residual")

	// Output options
	tankSolveCmd.Flags().BoolVar(&solveWriteBack, "write-back", false, "Apply the solution to the tank and report drive indices")
	tankSolveCmd.Flags().BoolVar(&solveShowDiagram, "diagram", false, "Show ASCII drive-index bars after write-back")
	tankSolveCmd.Flags().StringVarP(&solveExportFile, "output", "o", "", "Export bar chart after write-back (png, svg, pdf)")
}

func runTankSolve(cmd *cobra.Command, args []string) {
	s, tank, err := loadTank(solveFile, solveSet)
	if err != nil {
		fmt.Printf("Error loading scenario: %v\n", err)
		return
	}

	unknowns, alterInitial, opts, err := solveRequest(s)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printScenarioHeader("MATERIAL BALANCE SOLVER", s)

	target := "current"
	if alterInitial {
		target = "initial"
	}
	method := opts.Method
	if method == "" {
		method = mbal.MethodNelderMead
	}
	fmt.Println("PROBLEM:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Applied to:\t%s state\n", target)
	fmt.Fprintf(w, "  Method:\t%s\n", method)
	for _, name := range unknowns.Keys() {
		bound := "unbounded"
		if b, ok := opts.Bounds[name]; ok {
			bound = fmt.Sprintf("[%g, %g]", b.Lower, b.Upper)
		}
		fmt.Fprintf(w, "  %s:\tguess %g\t%s\n", name, unknowns[name], bound)
	}
	w.Flush()
	fmt.Println()

	sol, err := tank.Minimize(alterInitial, opts, unknowns)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("SOLUTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, name := range sol.Names {
		fmt.Fprintf(w, "  %s\t= %.6g\n", name, sol.X[i])
	}
	w.Flush()
	fmt.Println()

	status := "CONVERGED"
	if !sol.Success {
		status = "NOT CONVERGED"
	}
	lines := []string{
		fmt.Sprintf("Status:      %s (%s)", status, sol.Status),
		fmt.Sprintf("Residual:    %.3e", sol.Residual),
		fmt.Sprintf("Evaluations: %d", sol.Evaluations),
		fmt.Sprintf("Iterations:  %d", sol.Iterations),
	}
	if sol.Message != "" {
		lines = append(lines, "Message:     "+sol.Message)
	}
	fmt.Println(diagram.DrawSummaryBox("OPTIMIZER", lines))
	fmt.Println()

	if !solveWriteBack {
		return
	}

	if alterInitial {
		// Rebuild so the current state is derived from the solved initial one.
		overrides, _ := parseFields(solveSet)
		tank = mbal.NewTank(mergeFields(s.Initial, sol.Values), mbal.WithLogger(logger))
		if current := mergeFields(s.Current, overrides); len(current) > 0 {
			tank.Transition(current)
		}
	} else {
		tank.ReplaceCurrent(sol.Values)
	}

	b := tank.Crunch()
	printBreakdown(b)

	data := driveIndexData(s.Name, b)
	if solveShowDiagram {
		fmt.Println(diagram.DrawDriveIndexBars(data))
	}
	if solveExportFile != "" {
		if err := diagram.ExportDriveIndexChart(data, solveExportFile); err != nil {
			fmt.Printf("Error exporting chart: %v\n", err)
		} else {
			fmt.Printf("Chart exported to: %s\n", solveExportFile)
		}
	}
}

// solveRequest merges the command-line problem with the scenario's solve
// section. Flags win; the scenario is used only when no --unknown is given.
func solveRequest(s *mbal.Scenario) (mbal.Fields, bool, *mbal.OptimizerOptions, error) {
	var (
		unknowns     mbal.Fields
		alterInitial = solveAlterInitial
		opts         = &mbal.OptimizerOptions{}
		err          error
	)

	if len(solveUnknowns) > 0 {
		if unknowns, err = parseFields(solveUnknowns); err != nil {
			return nil, false, nil, err
		}
	} else if s.Solve != nil {
		unknowns = s.Solve.Unknowns
		opts = s.Solve.Options()
		alterInitial = alterInitial || s.Solve.AlterInitial
	} else {
		return nil, false, nil, fmt.Errorf("no unknowns: pass --unknown NAME=GUESS or add a solve section to %s", solveFile)
	}

	if solveMethod != "" {
		opts.Method = solveMethod
	}
	if solveMaxEvals > 0 {
		opts.MaxEvaluations = solveMaxEvals
	}
	if solveMaxIter > 0 {
		opts.MaxIterations = solveMaxIter
	}
	if solveTolerance > 0 {
		opts.Tolerance = solveTolerance
	}

	lower, err := parseFields(solveLower)
	if err != nil {
		return nil, false, nil, fmt.Errorf("lower bound: %w", err)
	}
	upper, err := parseFields(solveUpper)
	if err != nil {
		return nil, false, nil, fmt.Errorf("upper bound: %w", err)
	}
	if len(lower)+len(upper) > 0 && opts.Bounds == nil {
		opts.Bounds = make(map[string]mbal.Bound)
	}
	for name, lo := range lower {
		b, ok := opts.Bounds[name]
		if !ok {
			b = mbal.Unbounded()
		}
		b.Lower = lo
		opts.Bounds[name] = b
	}
	for name, hi := range upper {
		b, ok := opts.Bounds[name]
		if !ok {
			b = mbal.Unbounded()
		}
		b.Upper = hi
		opts.Bounds[name] = b
	}

	logger.Debug("solve request",
		"unknowns", strings.Join(unknowns.Keys(), ","),
		"alter_initial", alterInitial,
		"bounded", len(opts.Bounds),
	)
	return unknowns, alterInitial, opts, nil
}

// mergeFields returns a new map with the entries of b laid over a.
func mergeFields(a, b mbal.Fields) mbal.Fields {
	out := make(mbal.Fields, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
