package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const helpWidth = 72

// FlagSet wraps flag.FlagSet to render help in the style of the other
// command help text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Output from the standard flag package is discarded;
// commands print errors and help through their UI.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(discard{})
	return &FlagSet{FlagSet: f}
}

// Help returns the options section of a command's help text.
func (f *FlagSet) Help() string {
	var out bytes.Buffer
	out.WriteString("\n\nOptions:\n")

	f.VisitAll(func(fl *flag.Flag) {
		name, usage := flag.UnquoteUsage(fl)
		fmt.Fprintf(&out, "\n  -%s", fl.Name)
		if name != "" {
			fmt.Fprintf(&out, "=<%s>", name)
		}
		if fl.DefValue != "" && fl.DefValue != "false" && fl.DefValue != "0" {
			fmt.Fprintf(&out, " (default: %s)", fl.DefValue)
		}
		out.WriteString("\n")

		for _, line := range strings.Split(wordwrap.WrapString(usage, helpWidth), "\n") {
			fmt.Fprintf(&out, "      %s\n", line)
		}
	})

	return strings.TrimRight(out.String(), "\n")
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
