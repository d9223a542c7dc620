package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/webriots/cotoolz"
)

var ErrUnknownOp = errors.New("unknown op (known: concat, sum, max)")

// lineOp combines the corresponding lines of every input into one
// output line.
type lineOp func(fields ...string) (string, error)

func lookupOp(name, sep string) (lineOp, error) {
	switch name {
	case "concat":
		return func(fields ...string) (string, error) {
			return strings.Join(fields, sep), nil
		}, nil
	case "sum":
		return func(fields ...string) (string, error) {
			nums, err := parseInts(fields)
			if err != nil {
				return "", err
			}
			total := 0
			for _, n := range nums {
				total += n
			}
			return strconv.Itoa(total), nil
		}, nil
	case "max":
		return func(fields ...string) (string, error) {
			nums, err := parseInts(fields)
			if err != nil {
				return "", err
			}
			best := nums[0]
			for _, n := range nums[1:] {
				best = max(best, n)
			}
			return strconv.Itoa(best), nil
		}, nil
	}
	return nil, errors.Wrapf(ErrUnknownOp, "op %q", name)
}

func parseInts(fields []string) ([]int, error) {
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i+1)
		}
		nums[i] = n
	}
	return nums, nil
}

type mapped struct {
	line string
	err  error
}

func MapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map FILE...",
		Short: "Combine corresponding lines of the files with an operation",
		Long: `This subcommand applies an operation to the corresponding lines of
every file and prints one result per line number. It stops at the end
of the shortest file. "-" reads standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMap,
	}
	cmd.Flags().String(opF, defaultOp, opUsage)
	return cmd
}

func runMap(cmd *cobra.Command, args []string) (err error) {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	op, err := lookupOp(cfg.Op, cfg.Separator)
	if err != nil {
		return err
	}

	src, err := openSources(args, cmd.InOrStdin(), log)
	if err != nil {
		return err
	}

	m := cotoolz.Map(func(fields ...string) mapped {
		line, err := op(fields...)
		return mapped{line: line, err: err}
	}, src.coros[0], src.coros[1:]...)
	defer func() { err = multierr.Append(err, m.Close()) }()

	out := cmd.OutOrStdout()
	line := 0
	for r := range cotoolz.All(m) {
		line++
		if r.err != nil {
			return errors.Wrapf(r.err, "line %d", line)
		}
		if _, err := fmt.Fprintln(out, r.line); err != nil {
			return err
		}
	}
	log.Debug("map done", zap.Int("lines", line), zap.String("op", cfg.Op), zap.Stringer("combinator", m))
	return src.err()
}
