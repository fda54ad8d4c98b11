package cmd

import (
	"github.com/spf13/cobra"
)

var ansiOutput bool

var highlightCmd = &cobra.Command{
	Use:   "highlight [files...]",
	Short: "Print formulas as colored HTML fragments",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ansiOutput {
			return printEach(cmd, args, func(f string) string {
				return service.Terminal(f, true)
			})
		}
		return printEach(cmd, args, service.Highlight)
	},
}

func init() {
	highlightCmd.Flags().BoolVar(&ansiOutput, "ansi", false, "Color for a terminal instead of HTML")
}
