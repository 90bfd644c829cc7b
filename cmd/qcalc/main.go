// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Command qcalc evaluates fixed-point arithmetic expressions.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"src.elv.sh/pkg/diag"
	"src.elv.sh/pkg/sys"

	"github.com/avdva/qcalc/calc"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errFailed means that at least one expression was not evaluated.
// The details have already been printed.
var errFailed = errors.New("evaluation failed")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qcalc [expression...]",
		Short: "Q32.32 fixed-point calculator",
		Long: `qcalc evaluates arithmetic expressions over signed Q32.32 fixed-point numbers.

Arguments are joined with spaces into one expression. Without arguments,
expressions are read from stdin, one per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	cmd.SetVersionTemplate("qcalc version {{.Version}}\n")

	cmd.Flags().IntP("precision", "p", -1, "Digits after the decimal point, -1 for up to 9 without trailing zeros (env QCALC_PRECISION)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if err != errFailed {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	prec, err := precision(cmd)
	if err != nil {
		return err
	}
	p := &printer{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), prec: prec}
	switch {
	case len(args) > 0:
		if !p.eval(strings.Join(args, " ")) {
			return errFailed
		}
		return nil
	case sys.IsATTY(os.Stdin.Fd()):
		return p.repl(cmd.InOrStdin())
	default:
		return p.evalLines(cmd.InOrStdin())
	}
}

func precision(cmd *cobra.Command) (int, error) {
	prec, _ := cmd.Flags().GetInt("precision")
	if cmd.Flags().Changed("precision") {
		return prec, nil
	}
	if v := envOrDefault("QCALC_PRECISION", ""); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("bad QCALC_PRECISION %q: %w", v, err)
		}
		return p, nil
	}
	return prec, nil
}

type printer struct {
	out    io.Writer
	errOut io.Writer
	prec   int
}

// eval evaluates expr and prints either the result or the error.
// Returns false on error.
func (p *printer) eval(expr string) bool {
	v, err := calc.Eval(expr)
	if err != nil {
		p.showError(expr, err)
		return false
	}
	fmt.Fprintln(p.out, v.Text(p.prec))
	return true
}

func (p *printer) showError(expr string, err error) {
	fmt.Fprintln(p.errOut, "err:", err)
	var perr *calc.ParseError
	if !errors.As(err, &perr) {
		return
	}
	ctx := diag.NewContext("expression", expr, diag.PointRanging(byteOffset(expr, perr.Index)))
	fmt.Fprintf(p.errOut, "  %s\n", ctx.ShowCompact(""))
}

// evalLines evaluates every non-blank line of r.
func (p *printer) evalLines(r io.Reader) error {
	failed := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !p.eval(line) {
			failed = true
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failed {
		return errFailed
	}
	return nil
}

func (p *printer) repl(r io.Reader) error {
	stdin := bufio.NewReader(r)
	for {
		fmt.Fprint(p.out, "qcalc> ")
		input, err := stdin.ReadString('\n')
		if line := strings.TrimRight(input, "\r\n"); strings.TrimSpace(line) != "" {
			p.eval(line)
		}
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(p.out)
				return nil
			}
			return err
		}
	}
}

// byteOffset converts an index in runes to an index in bytes.
// Indices past the end are mapped to len(s).
func byteOffset(s string, runeIndex int) int {
	n := 0
	for i := range s {
		if n == runeIndex {
			return i
		}
		n++
	}
	return len(s)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
