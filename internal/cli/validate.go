package cli

import (
	"fmt"

	"github.com/interpretive-systems/difftable/internal/diffview"
	"github.com/interpretive-systems/difftable/internal/unified"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|->",
		Short: "Check a patch or diff model file",
		Long: "Check that every file of a patch or diff model file is well formed, renders in both table modes, and " +
			"reconstructs to the same unified text from either table.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range src.Files() {
				var texts [2]string
				for i, mode := range []diffview.Mode{diffview.SideBySide, diffview.Inline} {
					t, err := diffview.RenderFile(f, mode)
					if err != nil {
						return err
					}
					if texts[i], err = unified.RenderTable(t, unified.Options{EOL: "\n"}); err != nil {
						return err
					}
				}
				if texts[0] != texts[1] {
					return fmt.Errorf("%s: side-by-side and inline tables reconstruct differently", f.Name)
				}
				if !f.HasChanges() {
					fmt.Fprintf(out, "ok  %s  no changes\n", f.Name)
					continue
				}
				fmt.Fprintf(out, "ok  %s  %d blocks  -%d +%d lines\n", f.Name, len(f.Blocks), f.OldLineCount(), f.NewLineCount())
			}
			return nil
		},
	}
}
