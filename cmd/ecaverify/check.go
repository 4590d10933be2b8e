package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"ecaverify/internal/logic"
	"ecaverify/internal/telemetry"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	var formulaFlag string
	var boundaryFlag string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Decide whether a quantified formula is satisfiable over the chosen orbit shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			src := formulaFlag
			if src == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("check: reading formula from stdin: %w", err)
				}
				src = string(data)
			}

			boundary, err := parseBoundary(boundaryFlag)
			if err != nil {
				return err
			}

			logger := telemetry.Discard()
			if verbose {
				logger = telemetry.New(os.Stderr, slog.LevelDebug)
			}

			f, err := logic.Parse(src)
			if err != nil {
				return fmt.Errorf("check: parsing formula: %w", err)
			}
			f.Boundary = boundary

			logger.Debug("compiling formula", "conjuncts", len(f.Conjuncts), "quantifiers", len(f.Prefix))
			a, err := logic.Compile(f)
			if err != nil {
				return fmt.Errorf("check: compiling formula: %w", err)
			}

			if a.IsEmpty() {
				fmt.Fprintln(cmd.OutOrStdout(), "not valid")
				return withExitCode(0, nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return withExitCode(1, nil)
		},
	}

	cmd.Flags().StringVar(&formulaFlag, "formula", "", "formula text (default: read from stdin)")
	cmd.Flags().StringVar(&boundaryFlag, "boundary", "omega", "orbit shape: omega or zeta")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log compilation progress to stderr")
	return cmd
}

func parseBoundary(s string) (logic.Boundary, error) {
	switch s {
	case "omega", "":
		return logic.OMEGA, nil
	case "zeta":
		return logic.ZETA, nil
	default:
		return 0, fmt.Errorf("check: unknown boundary %q, want omega or zeta", s)
	}
}
