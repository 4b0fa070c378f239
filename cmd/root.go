// Package cmd provides the root command and CLI setup for bytemut.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bytemut.dev/pkg/bytemut/internal/adapter"
	"bytemut.dev/pkg/bytemut/internal/controller"
	"bytemut.dev/pkg/bytemut/internal/domain"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var unitAdapter adapter.UnitFileAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters unit files for applicable commands.
var excludePatterns []string

var verboseFlag bool
var logFileFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	unitAdapter = adapter.NewLocalUnitFileAdapter()
	reportStore = adapter.NewReportStore(fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		unitAdapter,
		reportStore,
		ui,
	)
}

const pathPatternsHelp = `Unit paths follow Go-style patterns:
  - ./...              recursively scan the current directory
  - ./classes/...      recursively scan the classes directory
  - ./a ./b            scan multiple directories (non-recursive)
  - ./a/Foo.unit.yaml  a single unit file`

const rootLongDescription = `Bytemut finds and applies small, localized mutations to compiled
instruction listings. Units are YAML files (*.unit.yaml) describing one
class and its method bodies; every mutant is written back in the same
format so downstream tooling can run tests against it.

` + pathPatternsHelp

const runLongDescription = `Write every mutant of the given units into the reports directory
together with a manifest (default: current directory, recursively).

` + pathPatternsHelp

const listLongDescription = `List unit files and the number of mutation candidates in each.

` + pathPatternsHelp

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bytemut",
		Short:        "Instruction-level mutation tool",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configErr != nil {
				slog.Warn("ignoring config file", "error", configErr)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for mutants and their manifest",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude unit files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFlagName), logFilenameKey)
}

// configureSelectionFlags adds the mutator selection flags. They are bound
// to config when the command runs, since several commands share the keys.
func configureSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice(mutatorsFlagName, viper.GetStringSlice(mutatorsConfigKey), "mutation kinds to enable, by name or id (default: NEGATE_CONDITIONALS, CONDITIONALS_BOUNDARY, MATH)")
}

func configureEnumerationFlags(cmd *cobra.Command) {
	configureSelectionFlags(cmd)
	cmd.Flags().Int(maxCandidatesFlagName, viper.GetInt(maxCandidatesConfigKey), "stop after this many candidates (0 = unlimited)")
}

// bindCommandFlags binds whichever shared flags the running command defines.
func bindCommandFlags(cmd *cobra.Command) {
	shared := map[string]string{
		mutatorsFlagName:      mutatorsConfigKey,
		maxCandidatesFlagName: maxCandidatesConfigKey,
		runParallelFlagName:   runParallelConfigKey,
	}

	for name, key := range shared {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			bindFlagToConfig(flag, key)
		}
	}
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
// An interrupt cancels the running command; mutants not yet written are
// reported as skipped.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// defaultPaths scans the current directory recursively when no path is given.
func defaultPaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	return parsePaths(args)
}
