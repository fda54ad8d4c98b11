package cmd

import (
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Print formulas laid out for reading",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printEach(cmd, args, service.Format)
	},
}
