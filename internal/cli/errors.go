package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newErrorsCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "errors [file]",
		Short: "List the markup errors the parser recovered from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := s.parseInput(cmd, args)
			if err != nil {
				return err
			}
			defer out.Drop()
			p, err := newPalette(s.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			errs := out.Errors()
			for _, e := range errs {
				msg := e.Msg
				if msg == "" {
					msg = e.Original
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", p.Pos(position(e.Pos)), p.Error(e.Kind), msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d markup errors\n", len(errs))
			return nil
		},
	}
}
