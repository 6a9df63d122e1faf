package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// blocksCmd represents the blocks command.
var blocksCmd = newBlocksCmd()

func newBlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks [file]",
		Short: "List the blocks of a system file",
		Long: `Parse a system markup file and list every block in the tree with its
path, type, SID and evaluated mask display (file defaults to ` + defaultSystemFile + `).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Blocks(context.Background(), parseArgs(args, systemFileConfigKey))
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(blocksCmd)
}
