package main

import (
	"fmt"
	"io"

	"ecaverify/internal/dot"
	"ecaverify/internal/ioformat"
	"github.com/spf13/cobra"
)

func newDotCommand() *cobra.Command {
	var kind, inPath, outPath string

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Render a serialized NBW or DRW as a Graphviz graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(inPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer closeIn()

			out, closeOut, err := openOutput(outPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeOut()

			return renderDot(in, out, kind)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "buechi", "automaton kind: buechi, rabin, or gast")
	cmd.Flags().StringVar(&inPath, "in", "", "input file (default: stdin)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")
	return cmd
}

func renderDot(in io.Reader, out io.Writer, kind string) error {
	switch kind {
	case "buechi", "":
		a, err := ioformat.ParseBuechi(in)
		if err != nil {
			return err
		}
		dot.WriteNBW(out, a)
		return nil
	case "gast":
		a, err := ioformat.ParseGASt(in)
		if err != nil {
			return err
		}
		dot.WriteNBW(out, a)
		return nil
	case "rabin":
		d, err := ioformat.ParseRabin(in)
		if err != nil {
			return err
		}
		dot.WriteDRW(out, d)
		return nil
	default:
		return fmt.Errorf("dot: unknown automaton kind %q", kind)
	}
}
