package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title			Patient Summary API
// @version		1.0
// @description	Widgets de resumen clínico (condiciones, medicación, historia) sobre OpenMRS.
// @BasePath		/
func main() {
	rootCmd := &cobra.Command{
		Use:          "patient-summary",
		Short:        "Patient summary widgets API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(manifestCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
