package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/formulafmt/formula"
)

var tokensJsonOutput bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [files...]",
	Short: "Print the tokens of each formula",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readInputs(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, in := range inputs {
			tokens := service.Tokenize(in.formula)
			if tokensJsonOutput {
				if tokens == nil {
					tokens = []formula.Token{}
				}
				d, err := json.Marshal(tokens)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(d))
				continue
			}
			for _, tok := range tokens {
				fmt.Fprintf(out, "%s\t%d\t%q\n", tok.Kind, tok.Depth, tok.Text)
			}
		}
		return nil
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensJsonOutput, "json", false, "Output tokens in JSON format")
}
