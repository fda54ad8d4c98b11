package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/formulafmt/batch"
)

const stdinName = "-"

// input is one formula read from a file or from stdin.
type input struct {
	name    string
	formula string
}

// readInputs reads one formula per argument. No argument, or "-", reads
// stdin.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{stdinName}
	}

	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		if arg == stdinName {
			content, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, fmt.Errorf("error reading stdin: %w", err)
			}
			inputs = append(inputs, input{
				name:    stdinName,
				formula: strings.TrimRight(string(content), "\r\n"),
			})
			continue
		}

		f, err := batch.ReadFormula(arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: arg, formula: f})
	}
	return inputs, nil
}

// printEach writes render(formula) for every input, one block per input.
func printEach(cmd *cobra.Command, args []string, render func(string) string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, in := range inputs {
		fmt.Fprintln(out, render(in.formula))
	}
	return nil
}
