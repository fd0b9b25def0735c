// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/render-shortcodes/render/internal/config"
	"github.com/render-shortcodes/render/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "render",
	Short: "Render is a shortcode library with a web based admin",
	Long: `Render is a shortcode library with a web based admin that lets
administrators browse, disable and enable shortcodes, manage the license and
expand shortcodes in editor content.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	configPath string // Path to the configuration directory
	cfg        config.Config
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Configuration directory holding main.toml")
}

// loadConfig reads the configuration and sets up logging.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
