package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slinx.dev/pkg/slinx/internal/domain"
	m "slinx.dev/pkg/slinx/internal/model"
)

var refsLibPathsFlag []string

// refsCmd represents the refs command.
var refsCmd = newRefsCmd()

func newRefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs [file]",
		Short: "List the external file references of a model",
		Long: `Parse the graphical-interface manifest and list its external file
references, solver and referenced libraries, resolving each library to its
file on the search paths (file defaults to ` + defaultManifestFile + `).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Refs(context.Background(), domain.RefsArgs{
				ParseArgs:    parseArgs(args, manifestFileConfigKey),
				LibraryPaths: libraryPaths(),
			})
		},
	}

	configureRefsFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(refsCmd)
}

func configureRefsFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&refsLibPathsFlag, libPathFlagName, "L", viper.GetStringSlice(libraryPathsConfigKey), "library search path, relative to the model root (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(libPathFlagName), libraryPathsConfigKey)
}

func libraryPaths() []m.Path {
	raw := viper.GetStringSlice(libraryPathsConfigKey)
	paths := make([]m.Path, 0, len(raw))
	for _, p := range raw {
		paths = append(paths, m.Path(p))
	}

	return paths
}
