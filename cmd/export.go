package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"slinx.dev/pkg/slinx/internal/domain"
)

var exportFormatFlag string
var exportOutFlag string

// exportCmd represents the export command.
var exportCmd = newExportCmd()

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a parsed model tree",
		Long: `Parse a system markup file and serialize the resolved tree, either as
YAML on stdout or as a gob snapshot written to --out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Export(context.Background(), domain.ExportArgs{
				ParseArgs: parseArgs(args, systemFileConfigKey),
				Format:    domain.ExportFormat(exportFormatFlag),
				Out:       exportOutFlag,
			})
		},
	}

	configureExportFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func configureExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&exportFormatFlag, formatFlagName, "f", string(domain.ExportYAML), "export format: yaml or gob")
	cmd.Flags().StringVarP(&exportOutFlag, outFlagName, "o", "", "output file for gob exports")
}
