package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listFunctions bool

var fieldsCmd = &cobra.Command{
	Use:   "fields [files...]",
	Short: "List the fields each formula references",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(cmd, args)
		if err != nil {
			return err
		}

		list := service.FieldRefs
		if listFunctions {
			list = service.Functions
		}
		out := cmd.OutOrStdout()
		for _, in := range inputs {
			for _, name := range list(in.formula) {
				fmt.Fprintln(out, name)
			}
		}
		return nil
	},
}

func init() {
	fieldsCmd.Flags().BoolVar(&listFunctions, "functions", false, "List called functions instead of fields")
}
