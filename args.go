package emitter

import (
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// ErrUsage is the cause of every error returned by ParseArgs
// except flag.ErrHelp.
var ErrUsage = errors.New("invalid arguments")

// Options contains the parsed command line.
type Options struct {
	ConfigPath string
	Position   Position
}

func newFlagSet(name string, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.ConfigPath, "c", "", "configuration file path")
	return fs
}

// ParseArgs parses "[-c config] <x> <y> <z>", args must not contain
// the program name. Negative coordinates are never read as flags.
func ParseArgs(args []string) (*Options, error) {
	var opts Options
	fs := newFlagSet("emitter", &opts)
	err := fs.Parse(splitArgs(args))
	if err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, errors.Wrap(ErrUsage, err.Error())
	}
	coords := fs.Args()
	if len(coords) != 3 {
		return nil, errors.Wrapf(ErrUsage, "expected 3 coordinates, got %d", len(coords))
	}
	var v [3]float32
	for i, name := range [3]string{"x", "y", "z"} {
		v[i], err = parseCoordinate(coords[i])
		if err != nil {
			return nil, errors.Wrapf(ErrUsage, "invalid %s \"%s\"", name, coords[i])
		}
	}
	opts.Position = Position{X: v[0], Y: v[1], Z: v[2]}
	return &opts, nil
}

// splitArgs inserts "--" before the first number so that "-1.5" stops
// flag parsing instead of being read as an unknown flag.
func splitArgs(args []string) []string {
	out := make([]string, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if isNumber(arg) {
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		out = append(out, arg)
		switch arg {
		case "-c", "--c":
			if i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		}
	}
	return out
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func parseCoordinate(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("%s is not a finite number", s)
	}
	return float32(f), nil
}

// PrintUsage writes the usage message of the command line.
func PrintUsage(w io.Writer, name string) {
	_, _ = fmt.Fprintf(w, "usage: %s [-c config] <x> <y> <z>\n", name)
	fs := newFlagSet(name, new(Options))
	fs.SetOutput(w)
	fs.PrintDefaults()
}
