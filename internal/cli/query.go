package cli

import (
	"fmt"
	"strings"

	"github.com/npillmayer/htree"
	"github.com/npillmayer/htree/dom"
	"github.com/spf13/cobra"
)

func newQueryCommand(s *settings) *cobra.Command {
	var text, rules bool
	cmd := &cobra.Command{
		Use:   "query <selector> [file]",
		Short: "List the elements matching a CSS selector",
		Long: `List the elements matching a CSS selector, one per line, with their
source position and start tag as written in the source.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := s.parseInput(cmd, args[1:])
			if err != nil {
				return err
			}
			defer out.Drop()
			p, err := newPalette(s.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			matches, err := out.Document().QuerySelectorAll(args[0])
			if err != nil {
				return err
			}
			var sheets []*dom.StyleSheet
			if rules {
				if sheets, err = dom.StyleSheets(out.Document()); err != nil {
					return err
				}
			}
			w := cmd.OutOrStdout()
			for _, e := range matches {
				fmt.Fprintf(w, "%s %s\n", p.Pos(position(e.StartPos())), startTag(e, p))
				if text {
					fmt.Fprintf(w, "\t%s\n", p.Text(fmt.Sprintf("%q", e.TextContent())))
				}
				for _, r := range dom.MatchingRules(sheets, e) {
					fmt.Fprintf(w, "\t%s { %s }\n", r.Selector(), strings.Join(declarations(r), "; "))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print the text content of every match")
	cmd.Flags().BoolVar(&rules, "rules", false, "print the <style> rules applying to every match")
	return cmd
}

func position(pos htree.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// startTag prints the tag as written, or rebuilds it for implied elements.
func startTag(e *htree.Element, p *palette) string {
	if orig := e.OriginalTag(); orig != "" {
		return p.Tag(orig)
	}
	var sb strings.Builder
	sb.WriteString(p.Tag("<" + e.TagName()))
	for _, a := range e.Attributes() {
		sb.WriteString(" " + p.Attr(a.Name()) + "=" + fmt.Sprintf("%q", a.Value()))
	}
	sb.WriteString(p.Tag(">"))
	return sb.String()
}

func declarations(r dom.Rule) []string {
	props := r.Properties()
	decls := make([]string, len(props))
	for i, prop := range props {
		decls[i] = prop + ": " + r.Value(prop)
		if r.IsImportant(prop) {
			decls[i] += " !important"
		}
	}
	return decls
}
