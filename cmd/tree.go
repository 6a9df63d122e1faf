package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// treeCmd represents the tree command.
var treeCmd = newTreeCmd()

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Show the subsystem hierarchy of a system file",
		Long: `Parse a system markup file, resolve its cross-file subsystem references
and render the block hierarchy as a tree (file defaults to ` + defaultSystemFile + `).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Tree(context.Background(), parseArgs(args, systemFileConfigKey))
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
