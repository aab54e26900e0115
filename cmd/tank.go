package cmd

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gopetro/internal/diagram"
	"github.com/alexiusacademia/gopetro/internal/mbal"
	"github.com/spf13/cobra"
)

var tankCmd = &cobra.Command{
	Use:   "tank",
	Short: "Material balance tank analysis",
	Long: `Analyze an oil reservoir as a material balance tank.

A tank is described in a JSON scenario file holding the initial state
and the current operating conditions as flat name/value maps.

Subcommands:
  drive   - Compute the drive indices of the current state
  solve   - Find unknown inputs that make the total drive index equal 1
  fields  - List the recognized field names

All volumes are oilfield units (STB, scf, bbl, psi).`,
}

var tankFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the field names accepted in scenario files",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Field\tDescription\n")
		fmt.Fprintf(w, "  ─────\t───────────\n")
		for _, name := range mbal.FieldNames() {
			fmt.Fprintf(w, "  %s\t%s\n", name, fieldDescriptions[name])
		}
		w.Flush()
	},
}

var fieldDescriptions = map[string]string{
	"M":    "Gas-cap to oil-zone reservoir volume ratio (bbl/bbl)",
	"P":    "Volumetric average pressure (psi)",
	"Sw":   "Water saturation (fraction)",
	"N":    "Oil in place (STB)",
	"G":    "Gas-cap gas (scf)",
	"We":   "Cumulative water influx (bbl)",
	"Bo":   "Oil formation volume factor (bbl/STB)",
	"Bw":   "Water formation volume factor (bbl/STB)",
	"Bg":   "Gas formation volume factor (bbl/scf)",
	"cw":   "Water compressibility (1/psi)",
	"cf":   "Formation compressibility (1/psi)",
	"Rs":   "Gas solubility (scf/STB)",
	"Np":   "Cumulative oil produced (STB)",
	"Gp":   "Cumulative gas produced (scf)",
	"Wp":   "Cumulative water produced (bbl)",
	"Ginj": "Cumulative gas injected (scf)",
	"Winj": "Cumulative water injected (STB)",
	"GOR":  "Instantaneous gas-oil ratio (scf/STB)",
}

func init() {
	rootCmd.AddCommand(tankCmd)
	tankCmd.AddCommand(tankFieldsCmd)
}

// parseFields converts NAME=VALUE flag pairs into model fields.
func parseFields(pairs map[string]string) (mbal.Fields, error) {
	fields := make(mbal.Fields, len(pairs))
	for name, raw := range pairs {
		x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		fields[name] = x
	}
	return fields, nil
}

// loadTank reads a scenario file and applies the --set overrides on top of
// its current state.
func loadTank(file string, set map[string]string) (*mbal.Scenario, *mbal.Tank, error) {
	s, err := mbal.LoadScenario(file)
	if err != nil {
		return nil, nil, err
	}
	overrides, err := parseFields(set)
	if err != nil {
		return nil, nil, err
	}
	tank := s.Tank(mbal.WithLogger(logger))
	if len(overrides) > 0 {
		tank.ReplaceCurrent(overrides)
	}
	return s, tank, nil
}

// driveIndexData converts a breakdown for the diagram package.
func driveIndexData(title string, b mbal.Breakdown) diagram.DriveIndexData {
	data := diagram.DriveIndexData{Title: title, Total: b.Total.Or(0)}
	for _, d := range mbal.DriveIndices {
		v := b.Index(d)
		data.Bars = append(data.Bars, diagram.Bar{Label: d.String(), Value: v.Or(0), Known: v.IsKnown()})
	}
	return data
}

func printScenarioHeader(title string, s *mbal.Scenario) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if s.Name != "" {
		fmt.Printf("  Scenario: %s\n", s.Name)
	}
	if s.Description != "" {
		fmt.Printf("  Description: %s\n", s.Description)
	}
	fmt.Println()
}

func printTankState(tank *mbal.Tank) {
	initial, current := tank.Initial(), tank.Current()

	fmt.Println("TANK STATE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Quantity\tInitial\tCurrent\n")
	fmt.Fprintf(w, "  ────────\t───────\t───────\n")
	fmt.Fprintf(w, "  Oil in place N (STB)\t%s\t%s\n", initial.N(), current.N())
	fmt.Fprintf(w, "  Gas-cap gas G (scf)\t%s\t%s\n", initial.G(), current.G())
	fmt.Fprintf(w, "  Gas-cap ratio M\t%s\t%s\n", initial.M(), current.M())
	fmt.Fprintf(w, "  Volume basis\t%s\t%s\n", initial.Basis(), current.Basis())
	fmt.Fprintf(w, "  Pressure P (psi)\t%s\t%s\n", initial.Reservoir().P, current.Reservoir().P)
	fmt.Fprintf(w, "  Bo (bbl/STB)\t%g\t%g\n", initial.Phase().Bo, current.Phase().Bo)
	fmt.Fprintf(w, "  Bg (bbl/scf)\t%s\t%s\n", initial.Phase().Bg, current.Phase().Bg)
	fmt.Fprintf(w, "  Rs (scf/STB)\t%s\t%s\n", initial.Phase().Rs, current.Phase().Rs)
	fmt.Fprintf(w, "  Water influx We (bbl)\t%g\t%g\n", initial.Reservoir().We, current.Reservoir().We)
	fmt.Fprintf(w, "  Np (STB)\t%g\t%g\n", initial.Operation().Np, current.Operation().Np)
	fmt.Fprintf(w, "  Rp (scf/STB)\t%g\t%g\n", initial.Operation().Rp(), current.Operation().Rp())
	w.Flush()
	fmt.Println()
}

func printBreakdown(b mbal.Breakdown) {
	fmt.Println("DRIVE INDICES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, d := range mbal.DriveIndices {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", d, d.Description(), formatValue(b.Index(d), "%.6f"))
	}
	w.Flush()
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Underground withdrawal (bbl):\t%s\n", formatValue(b.TotalProduction, "%.2f"))
	fmt.Fprintf(w, "  Two-phase FVF Bt (bbl/STB):\t%s\n", formatValue(b.TwoPhaseFVF, "%.6f"))
	w.Flush()
	fmt.Println()

	total := b.Total.Or(0)
	fmt.Printf("  ╔═════════════════════════════════════════╗\n")
	fmt.Printf("  ║  TOTAL DRIVE INDEX = %-19.6f║\n", total)
	fmt.Printf("  ╚═════════════════════════════════════════╝\n")
	fmt.Println()
}

func formatValue(v mbal.Value, format string) string {
	x, ok := v.Float64()
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf(format, x)
}

// finiteFields drops NaN and infinite values, which JSON cannot carry.
func finiteFields(f mbal.Fields) mbal.Fields {
	out := make(mbal.Fields, len(f))
	for k, v := range f {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}
