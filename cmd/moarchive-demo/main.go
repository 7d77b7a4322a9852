// Command moarchive-demo reads objective vectors from a file or
// stdin and prints the indicator values from lib/indicator. It
// contains no archive logic of its own (spec §1 "Command-line or
// packaging surface... out of scope... external collaborators with a
// minimal interface only").
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/cma-es/moarchiving-go/lib/archive"
	"github.com/cma-es/moarchiving-go/lib/archiveerr"
	"github.com/cma-es/moarchiving-go/lib/indicator"
	"github.com/cma-es/moarchiving-go/lib/scalar"
	"github.com/cma-es/moarchiving-go/lib/xlog"
)

// result is the --format=json payload: the same hypervolume/resident
// figures the plain-text output prints, plus the resident vectors
// themselves (the text mode only reports a count).
type result struct {
	Hypervolume    float64     `json:"hypervolume"`
	HypervolumeErr string      `json:"hypervolume_error,omitempty"`
	Residents      [][]float64 `json:"residents"`
}

func writeResultJSON(w io.Writer, r result) error {
	return lowmemjson.Encode(&lowmemjson.ReEncoder{
		Out:                   w,
		Indent:                "  ",
		ForceTrailingNewlines: true,
	}, r)
}

func main() {
	var verbosity xlog.LevelFlag
	verbosity.Level = dlog.LogLevelWarn

	var refFlag string
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "moarchive-demo [file]",
		Short: "build a non-dominated archive from objective vectors and print its indicators",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := xlog.WithLevel(context.Background(), verbosity.Level)

			var r io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			points, err := readVectors(r)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				return fmt.Errorf("no objective vectors given")
			}

			ref, err := parseVector(refFlag)
			if err != nil && refFlag != "" {
				return fmt.Errorf("invalid --ref: %w", err)
			}

			debug := verbosity.Level == dlog.LogLevelDebug || verbosity.Level == dlog.LogLevelTrace

			a, err := archive.GetMOArchive(archive.Config[scalar.Float64, scalar.Float64, struct{}]{
				Dim:     len(points[0]),
				Ref:     ref,
				ToFinal: scalar.IdentityFloat64,
				Debug:   debug,
			})
			if err != nil {
				return err
			}
			accepted := a.AddList(points, nil)
			dlog.Debugf(ctx, "accepted %d/%d vectors", accepted, len(points))

			if debug {
				xlog.TracedCheck(ctx, "moarchive-demo: post-add invariants", a.CheckInvariants, archiveerr.Inconsistent)
			}

			shell := indicator.New(a)
			h, hvErr := shell.Hypervolume()

			switch formatFlag {
			case "json":
				res := result{Residents: make([][]float64, a.Len())}
				for i := 0; i < a.Len(); i++ {
					p, _, err := a.At(i)
					if err != nil {
						return err
					}
					vec := make([]float64, len(p))
					for j, c := range p {
						vec[j] = c.Float64()
					}
					res.Residents[i] = vec
				}
				if hvErr != nil {
					res.HypervolumeErr = hvErr.Error()
				} else {
					res.Hypervolume = h.Float64()
				}
				return writeResultJSON(cmd.OutOrStdout(), res)
			case "", "text":
				if hvErr != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "hypervolume: unavailable (%v)\n", hvErr)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "hypervolume: %v\n", h.Float64())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "residents: %d\n", a.Len())
				return nil
			default:
				return fmt.Errorf("invalid --format: %q (want text|json)", formatFlag)
			}
		},
	}
	cmd.Flags().Var(&verbosity, "verbosity", "log level: error|warn|debug|trace")
	cmd.Flags().StringVar(&refFlag, "ref", "", "reference point, comma-separated (e.g. 10,10)")
	cmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text|json")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readVectors parses one objective vector per line, comma-separated.
func readVectors(r io.Reader) ([][]scalar.Float64, error) {
	var out [][]scalar.Float64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := parseVector(line)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseVector(s string) ([]scalar.Float64, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]scalar.Float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q: %w", field, err)
		}
		out[i] = scalar.NewFloat64(v)
	}
	return out, nil
}
