// Package cli provides the cobra command structure of the htree tool.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/htree"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"golang.org/x/net/html/atom"
)

// settings collects the global flags.
type settings struct {
	configPath string
	fragment   string
	color      string
	trace      string
}

// NewRootCommand creates the root htree command with all subcommands.
func NewRootCommand() *cobra.Command {
	s := &settings{}
	rootCmd := &cobra.Command{
		Use:   "htree",
		Short: "Inspect HTML documents with source positions",
		Long: `htree parses HTML the way browsers do and shows the resulting tree,
together with the position of every element and attribute in the source.

Input is read from the file given as last argument, or from stdin.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupTracing(s.trace)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&s.configPath, "config", "", "YAML file with parser options")
	rootCmd.PersistentFlags().StringVar(&s.fragment, "fragment", "",
		"parse input as the content of this element, e.g. tbody")
	rootCmd.PersistentFlags().StringVar(&s.color, "color", "auto", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&s.trace, "trace", "Error", "trace level: Error, Info, Debug")
	//
	rootCmd.AddCommand(newDumpCommand(s))
	rootCmd.AddCommand(newQueryCommand(s))
	rootCmd.AddCommand(newErrorsCommand(s))
	return rootCmd
}

func setupTracing(level string) error {
	switch strings.ToLower(level) {
	case "error", "info", "debug":
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	t := gologadapter.New()
	t.SetTraceLevel(tracing.TraceLevelFromString(level))
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace { return t }))
	return nil
}

// parseInput reads the file named by the last argument, or stdin if there is
// none, and parses it with the configured options.
func (s *settings) parseInput(cmd *cobra.Command, args []string) (*htree.Output, error) {
	opts, err := loadOptions(s.configPath)
	if err != nil {
		return nil, err
	}
	var src []byte
	if len(args) > 0 && args[len(args)-1] != "-" {
		src, err = os.ReadFile(args[len(args)-1])
	} else {
		src, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return nil, err
	}
	if s.fragment == "" {
		return htree.ParseDocument(src, htree.WithOptions(opts))
	}
	context := atom.Lookup([]byte(strings.ToLower(s.fragment)))
	if context == 0 {
		return nil, fmt.Errorf("unknown fragment context <%s>", s.fragment)
	}
	return htree.ParseFragment(src, context, htree.WithOptions(opts))
}
