// Package cmd provides the root command and CLI setup for slinx.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"slinx.dev/pkg/slinx/internal/adapter"
	"slinx.dev/pkg/slinx/internal/controller"
	"slinx.dev/pkg/slinx/internal/domain"
	m "slinx.dev/pkg/slinx/internal/model"
)

var modelStore adapter.ModelStore
var workflow domain.Workflow
var ui controller.UI

// rootFlag is the model root directory (or zip archive) all file paths
// resolve against.
var rootFlag string

// diagnosticsFlag surfaces contained parse issues as warnings on stderr.
var diagnosticsFlag bool

// verboseFlag raises the log level to Debug.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	modelStore = adapter.NewGobModelStore()
	workflow = domain.NewWorkflow(newContentSource, modelStore, ui)
}

const rootLongDescription = `Slinx reads file-tree based block-diagram models and turns them into an
in-memory tree you can list, inspect and export. It parses system markup
files (blocks, lines, annotations, masks), resolves cross-file subsystem
references and reads the model's graphical-interface manifest.

Point it at a model root directory (or a zip archive of one) with --root;
file arguments are resolved relative to that root.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slinx",
		Short: "Block-diagram model inspector",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&rootFlag, rootFlagName, "r",
			viper.GetString(rootConfigKey),
			"model root directory or zip archive",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rootFlagName), rootConfigKey)

	cmd.PersistentFlags().BoolVar(&diagnosticsFlag, diagnosticsFlagName, viper.GetBool(diagnosticsConfigKey), "print contained parse issues as warnings")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(diagnosticsFlagName), diagnosticsConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "log file location (defaults to "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newContentSource opens the content source for a model root. A root ending
// in .zip opens the archive; anything else is a directory on disk.
func newContentSource(root m.Path) (adapter.ContentSource, error) {
	if strings.EqualFold(filepath.Ext(string(root)), ".zip") {
		return adapter.OpenArchiveSource(string(root))
	}

	return adapter.NewFSSource(string(root)), nil
}

func parseArgs(args []string, defaultFileKey string) domain.ParseArgs {
	file := viper.GetString(defaultFileKey)
	if len(args) > 0 {
		file = args[0]
	}

	return domain.ParseArgs{
		Root:            m.Path(viper.GetString(rootConfigKey)),
		File:            m.Path(file),
		ShowDiagnostics: viper.GetBool(diagnosticsConfigKey),
	}
}
