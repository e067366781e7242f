// Package cmd provides the root command and CLI setup for intlcode.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"intlcode.dev/pkg/intlcode/internal/adapter"
	"intlcode.dev/pkg/intlcode/internal/controller"
	"intlcode.dev/pkg/intlcode/internal/domain"
	m "intlcode.dev/pkg/intlcode/internal/model"
)

var sourceFSAdapter adapter.SourceFSAdapter
var goFileAdapter adapter.GoFileAdapter
var reportStore adapter.ReportStore
var buildRunner adapter.BuildRunnerAdapter
var configStore adapter.ConfigStore
var resourceParser adapter.ResourceParser
var synthesizer domain.Synthesizer
var renderer domain.Renderer
var workflow domain.Workflow
var ui controller.UI

// excludePatterns is a root-level flag that filters packages for every command.
var excludePatterns []string

var parallelFlag int
var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	goFileAdapter = adapter.NewLocalGoFileAdapter(sourceFSAdapter)
	reportStore = adapter.NewReportStore(sourceFSAdapter)
	buildRunner = adapter.NewLocalBuildRunnerAdapter(buildTimeout())
	configStore = adapter.NewViperConfigStore(viper.GetViper(), configFileName, sourceFSAdapter)
	resourceParser = adapter.NewPropertiesParser(viper.GetString(resourceEncodingKey))
	synthesizer = domain.NewSynthesizer(
		domain.NewResourceFieldSynthesizer(sourceFSAdapter, resourceParser),
		domain.NewAccessorSynthesizer(configStore),
	)
	renderer = domain.NewRenderer()
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		goFileAdapter,
		reportStore,
		buildRunner,
		ui,
		synthesizer,
		renderer,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

const rootLongDescription = `intlcode generates result-code constants and accessor methods for struct
types annotated with @InternationlCode. Codes are read from a
.properties resource under the project's internationl/ directory.

` + pathPatternsHelp

const generateLongDescription = `Generate <package>_intlcode.go for every package with annotated types
(default: current module). Stale generated files are removed.

` + pathPatternsHelp

const checkLongDescription = `Render generated files without writing them and print a diff against
the files on disk. Exits non-zero when they differ.

` + pathPatternsHelp

const listLongDescription = `List annotated types with their synthesized members, field usage and
diagnostics.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intlcode",
		Short: "Result-code generator for annotated Go types",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configReadErr != nil {
				slog.Warn("Failed to read config", "error", configReadErr)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

// newRootCmd builds an unregistered root command that leaves the logger alone.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	cmd.PersistentPreRun = nil

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude packages whose path matches regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, generateParallelFlagName, "p", viper.GetInt(generateParallelConfigKey), "number of packages processed in parallel")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(generateParallelFlagName), generateParallelConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
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

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func scanArgs(args []string) domain.ScanArgs {
	return domain.ScanArgs{
		Paths:   parsePaths(args),
		Exclude: viper.GetStringSlice(excludeConfigKey),
		Threads: viper.GetInt(generateParallelConfigKey),
		Suffix:  viper.GetString(generateSuffixConfigKey),
	}
}
