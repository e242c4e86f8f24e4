// Package cmd implements the smartcalc CLI's cobra commands: root (launch
// REPL), eval (evaluate a file or stdin), and version.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcalc/go-smartcalc/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "smartcalc [file]",
	Short: "SmartCalc - a natural-language calculator",
	Long: `SmartCalc reads plain-English lines like "$25/hour * 14 hours of work"
or "120 + 30% + 10%" and evaluates them, line by line, carrying variables
forward between lines.

Examples:
  smartcalc                   Start the interactive REPL
  smartcalc eval calc.txt     Evaluate a file and print every line's result
  smartcalc eval < input.txt  Evaluate from stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return runEval(args)
		}
		return runREPL()
	},
}

// Execute runs the root command.
func Execute() {
	if _, err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "smartcalc: config load:", err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
