// Package cli wires the difftable commands.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/interpretive-systems/difftable/internal/source"
	"github.com/interpretive-systems/difftable/internal/tui/components"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the root command with os.Args.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

// NewRootCmd builds the command tree. glog's flags (-v, -logtostderr, -log_dir, ...) are exposed alongside the command flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "difftable",
		Short:        "Side-by-side, inline and unified views of diffs",
		Long:         "difftable: review git changes, patches and diff model files as side-by-side or inline tables, or as unified diff text.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its settings from the standard flag set.
			return flag.CommandLine.Parse(nil)
		},
	}

	root.PersistentFlags().StringP("repo", "r", ".", "Path to repository root (default: current dir)")
	root.PersistentFlags().String("theme", "dark", "Base theme: dark or light")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newWatchCmd(), newViewCmd(), newShowCmd(), newValidateCmd())
	return root
}

func addModeFlag(cmd *cobra.Command, def string) {
	cmd.Flags().StringP("mode", "m", def, "View mode: sidebyside, inline or unified")
}

func modeFlag(cmd *cobra.Command) (components.ViewMode, error) {
	s, err := cmd.Flags().GetString("mode")
	if err != nil {
		return 0, err
	}
	return components.ParseViewMode(s)
}

// openInput loads a patch or model file; "-" reads a patch from the command's input.
func openInput(cmd *cobra.Command, path string) (*source.Static, error) {
	if path == "-" {
		return source.Read(cmd.InOrStdin())
	}
	return source.Open(path)
}

func mustGetStringFlag(fs *pflag.FlagSet, name string) string {
	v, err := fs.GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}
