package cli

import (
	"fmt"

	"github.com/interpretive-systems/difftable/internal/gitx"
	"github.com/interpretive-systems/difftable/internal/source"
	"github.com/interpretive-systems/difftable/internal/tui"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the viewer on a git working tree and watch for changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := gitx.RepoRoot(mustGetStringFlag(cmd.Root().PersistentFlags(), "repo"))
			if err != nil {
				return fmt.Errorf("not a git repo: %w", err)
			}
			mode, err := modeFlag(cmd)
			if err != nil {
				return err
			}
			staged, _ := cmd.Flags().GetBool("staged")
			return tui.Run(tui.Options{
				Source:   source.Repo{Root: root, Staged: staged},
				RepoRoot: root,
				Mode:     mode,
				Theme:    mustGetStringFlag(cmd.Root().PersistentFlags(), "theme"),
			})
		},
	}
	cmd.Flags().Bool("staged", false, "Compare HEAD against the index instead of the working tree")
	addModeFlag(cmd, "sidebyside")
	return cmd
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file|->",
		Short: "Open the viewer on a patch or diff model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := modeFlag(cmd)
			if err != nil {
				return err
			}
			src, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			return tui.Run(tui.Options{
				Source:        src,
				Mode:          mode,
				Theme:         mustGetStringFlag(cmd.Root().PersistentFlags(), "theme"),
				StdinConsumed: args[0] == "-",
			})
		},
	}
	addModeFlag(cmd, "sidebyside")
	return cmd
}
