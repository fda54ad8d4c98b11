package cmd

import (
	"github.com/spf13/cobra"
)

var condenseCmd = &cobra.Command{
	Use:   "condense [files...]",
	Short: "Print formulas on one line without insignificant whitespace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printEach(cmd, args, service.Condense)
	},
}
