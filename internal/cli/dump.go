package cli

import (
	"github.com/npillmayer/htree/dom"
	"github.com/npillmayer/htree/dom/domdbg"
	"github.com/spf13/cobra"
)

func newDumpCommand(s *settings) *cobra.Command {
	var dot, styles bool
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the parse tree",
		Long: `Print the parse tree as an outline, with the source position of every
element. With --dot the tree is written in GraphViz format instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := s.parseInput(cmd, args)
			if err != nil {
				return err
			}
			defer out.Drop()
			doc := dom.FromDocument(out.Document())
			if dot {
				return domdbg.ToGraphViz(doc, cmd.OutOrStdout(), styles)
			}
			return domdbg.Print(doc, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "write GraphViz DOT instead of an outline")
	cmd.Flags().BoolVar(&styles, "styles", false, "with --dot, draw inline styles")
	return cmd
}
