package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formulafmt/batch"
	"github.com/gnoswap-labs/formulafmt/formula"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger  *zap.Logger
	config  batch.Config
	service *formula.Service
)

var rootCmd = &cobra.Command{
	Use:               "formulafmt [paths...]",
	Short:             "formulafmt - condense, format and highlight formulas",
	Args:              cobra.ArbitraryArgs,
	TraverseChildren:  true, // Prioritize subcommands
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			return cmd.Help()
		}
		// Format: formulafmt [path1 path2 ...] => behaves like the render subcommand
		return runRender(cmd, args)
	},
}

func Execute() error {
	defer syncLogger()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", batch.DefaultConfigPath, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for batch rendering")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(condenseCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(renderCmd)
}

// setup builds the logger, then the service described by the configuration
// file.
func setup(cmd *cobra.Command, _ []string) error {
	if err := setupLogger(); err != nil {
		return err
	}

	var err error
	config, err = batch.LoadConfig(cfgFile)
	if err != nil {
		logger.Error("Failed to load configuration", zap.String("path", cfgFile), zap.Error(err))
		return err
	}
	service, err = config.NewService(formula.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to initialize formula service", zap.Error(err))
		return err
	}
	return nil
}

func setupLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	return err
}

func syncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
