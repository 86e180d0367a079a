package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/xuan/check"
)

var forceInit bool

// initCmd: xuan init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile, forceInit)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", path)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing configuration file")
}

// initConfigurationFile writes the default configuration, as TOML when the
// path ends in .toml.
func initConfigurationFile(configurationPath string, force bool) (string, error) {
	if configurationPath == "" {
		configurationPath = check.DefaultConfigFile
	}
	if !force {
		if _, err := os.Stat(configurationPath); err == nil {
			return "", fmt.Errorf("%s already exists", configurationPath)
		}
	}
	return configurationPath, check.WriteConfig(configurationPath, check.DefaultConfig())
}
