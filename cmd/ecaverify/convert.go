package main

import (
	"fmt"
	"io"
	"os"

	"ecaverify/internal/automaton/drw"
	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/ioformat"
	"github.com/spf13/cobra"
)

func newConvertCommand() *cobra.Command {
	var from, to, inPath, outPath string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Round-trip an automaton between the BUECHI, RABIN, and GASt formats",
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

			return convert(in, out, from, to)
		},
	}

	cmd.Flags().StringVar(&from, "from", "buechi", "input format: buechi, rabin, or gast")
	cmd.Flags().StringVar(&to, "to", "buechi", "output format: buechi, rabin, or gast")
	cmd.Flags().StringVar(&inPath, "in", "", "input file (default: stdin)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")
	return cmd
}

func convert(in io.Reader, out io.Writer, from, to string) error {
	switch from {
	case "buechi", "bucchi", "":
		a, err := ioformat.ParseBuechi(in)
		if err != nil {
			return err
		}
		return writeNBW(out, a, to)
	case "gast":
		a, err := ioformat.ParseGASt(in)
		if err != nil {
			return err
		}
		return writeNBW(out, a, to)
	case "rabin":
		d, err := ioformat.ParseRabin(in)
		if err != nil {
			return err
		}
		return writeDRW(out, d, to)
	default:
		return fmt.Errorf("convert: unknown input format %q", from)
	}
}

func writeNBW(out io.Writer, a *nbw.NBW, to string) error {
	switch to {
	case "buechi", "bucchi", "":
		return ioformat.WriteBuechi(out, a)
	case "gast":
		return ioformat.WriteGASt(out, a)
	default:
		return fmt.Errorf("convert: cannot convert an NBW to format %q", to)
	}
}

func writeDRW(out io.Writer, d *drw.DRW, to string) error {
	switch to {
	case "rabin", "":
		return ioformat.WriteRabin(out, d)
	default:
		return fmt.Errorf("convert: cannot convert a DRW to format %q", to)
	}
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("convert: opening %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("convert: creating %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
