package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gopetro/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gopetro",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gopetro v%s\n", version.Version)
		fmt.Println("Petroleum Engineering Calculation Tool")
		if verbose {
			fmt.Printf("Commit: %s\n", version.GitCommit)
			fmt.Printf("Built:  %s\n", version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
