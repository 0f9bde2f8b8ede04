package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
	"github.com/interpretive-systems/difftable/internal/diffmodel"
	"github.com/interpretive-systems/difftable/internal/theme"
	"github.com/interpretive-systems/difftable/internal/tui/components"
	"github.com/interpretive-systems/difftable/internal/unified"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// showOptions are the flags of the show command.
type showOptions struct {
	mode    components.ViewMode
	width   int
	noColor bool
	eol     string
	theme   string
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file|->",
		Short: "Print every file of a patch or diff model file",
		Long: "Print every file of a patch or diff model file as a side-by-side or inline table, or as unified diff text " +
			"reconstructed from the rendered table.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts showOptions
			var err error
			if opts.mode, err = modeFlag(cmd); err != nil {
				return err
			}
			opts.width, _ = cmd.Flags().GetInt("width")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			if opts.eol, err = eolFlag(cmd); err != nil {
				return err
			}
			opts.theme = mustGetStringFlag(cmd.Root().PersistentFlags(), "theme")
			if opts.width < 20 {
				return fmt.Errorf("--width must be at least 20, got %d", opts.width)
			}

			src, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			if opts.noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			return show(cmd.OutOrStdout(), src.Files(), opts)
		},
	}
	addModeFlag(cmd, "unified")
	cmd.Flags().IntP("width", "w", 120, "Output width in columns for table modes")
	cmd.Flags().Bool("no-color", false, "Disable colors")
	cmd.Flags().String("eol", "auto", "Line terminator of unified output: auto, lf or crlf")
	return cmd
}

func eolFlag(cmd *cobra.Command) (string, error) {
	s, _ := cmd.Flags().GetString("eol")
	switch strings.ToLower(s) {
	case "auto", "":
		return unified.DefaultEOL(), nil
	case "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	}
	return "", fmt.Errorf("unknown --eol %q (want auto, lf or crlf)", s)
}

func show(w io.Writer, files []diffmodel.File, opts showOptions) error {
	th := theme.Base(opts.theme)
	for i, f := range files {
		glog.V(1).Infof("show: %s as %s", f.Name, opts.mode)
		if opts.mode == components.Unified {
			text, err := unified.FromFile(f, unified.Options{EOL: opts.eol})
			if err != nil {
				return err
			}
			if text != "" {
				fmt.Fprint(w, text+opts.eol)
			}
			continue
		}

		pane := components.NewDiffPane(th)
		if err := pane.SetFile(f, false); err != nil {
			return err
		}
		pane.SetMode(opts.mode)
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, th.MetaText(fmt.Sprintf("%s  (%s → %s)", f.Name, f.OldLabel, f.NewLabel)))
		for _, line := range pane.Render(opts.width) {
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	}
	return nil
}
