package main

import (
	"fmt"
	"io"
	"os"

	"contract-assistant-be/pkg/textformat"

	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Clean LLM markdown into wrapped plain text (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runNormalize(in, cmd.OutOrStdout(), width)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", textformat.DefaultLineLength, "maximum line length")
	return cmd
}

func runNormalize(in io.Reader, out io.Writer, width int) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	_, err = fmt.Fprintln(out, textformat.Normalize(string(raw), width))
	return err
}
