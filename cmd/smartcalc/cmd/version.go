package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	smartcalc "github.com/smartcalc/go-smartcalc"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("smartcalc %s\n", smartcalc.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
