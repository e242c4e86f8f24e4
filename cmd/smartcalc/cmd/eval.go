package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	smartcalc "github.com/smartcalc/go-smartcalc"
	"github.com/smartcalc/go-smartcalc/internal/config"
)

var evalVerbose bool

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate SmartCalc input and print each line's result",
	Long: `Evaluate a file or stdin, one line at a time, printing each result.

Examples:
  smartcalc eval calc.txt       Evaluate a file
  smartcalc eval -v calc.txt    Also print each input line
  echo "10% of 250" | smartcalc eval`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(args)
	},
}

func init() {
	evalCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print each line alongside its result")
	rootCmd.AddCommand(evalCmd)
}

func runEval(args []string) error {
	var input string

	if len(args) > 0 {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		input = string(bytes)
	} else {
		bytes, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = string(bytes)
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("no input provided")
		}
	}

	cliCfg := config.Get()
	results := smartcalc.Execute(cliCfg.Language, input, cliCfg.CoreConfig())
	lines := strings.Split(input, "\n")

	for i, result := range results {
		if evalVerbose && i < len(lines) {
			fmt.Printf("%s\n", lines[i])
		}
		switch {
		case result.Err != nil:
			fmt.Printf("  error: %s\n", result.Err)
		case result.Value != nil:
			fmt.Printf("  %s\n", result.Value.String())
		}
	}
	return nil
}
