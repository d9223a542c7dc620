package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/webriots/cotoolz"
)

func ZipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zip FILE...",
		Short: "Print corresponding lines of the files side by side",
		Long: `This subcommand prints one line per line number, holding the
corresponding line of every file joined by the separator. It stops at
the end of the shortest file. "-" reads standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runZip,
	}
}

func runZip(cmd *cobra.Command, args []string) (err error) {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	src, err := openSources(args, cmd.InOrStdin(), log)
	if err != nil {
		return err
	}

	z := cotoolz.Zip(src.coros[0], src.coros[1:]...)
	defer func() { err = multierr.Append(err, z.Close()) }()

	out := cmd.OutOrStdout()
	rows := 0
	for tuple := range cotoolz.All(z) {
		if _, err := fmt.Fprintln(out, strings.Join(tuple, cfg.Separator)); err != nil {
			return err
		}
		rows++
	}
	log.Debug("zip done", zap.Int("rows", rows), zap.Stringer("combinator", z))
	return src.err()
}
