package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// palette holds the color functions for terminal output.
type palette struct {
	Pos   func(a ...any) string
	Tag   func(a ...any) string
	Attr  func(a ...any) string
	Text  func(a ...any) string
	Error func(a ...any) string
}

// newPalette creates a palette for w. Mode "auto" colors only if w is a
// terminal.
func newPalette(mode string, w io.Writer) (*palette, error) {
	var on bool
	switch mode {
	case "always":
		on = true
	case "never":
		on = false
	case "auto", "":
		if f, ok := w.(*os.File); ok {
			on = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	default:
		return nil, fmt.Errorf("unknown color mode %q", mode)
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &palette{
		Pos:   mk(color.FgCyan),
		Tag:   mk(color.FgBlue, color.Bold),
		Attr:  mk(color.FgYellow),
		Text:  mk(color.FgGreen),
		Error: mk(color.FgRed, color.Bold),
	}, nil
}
