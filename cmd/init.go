package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formulafmt/batch"
)

// initCmd: formulafmt init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Args:  cobra.NoArgs,
	// an existing configuration may be broken, so only the logger is set up
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return setupLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", cfgFile)
		return nil
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = batch.DefaultConfigPath
	}
	return batch.SaveConfig(configurationPath, batch.DefaultConfig())
}
