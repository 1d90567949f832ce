package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bhanujeet/stackpad/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and STACKPAD_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → STACKPAD_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("stackpad")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/stackpad/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/stackpad", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("STACKPAD")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addSocketFlag adds the --socket flag to a command.
func addSocketFlag(cmd *cobra.Command) {
	cmd.Flags().String("socket", "", "backend socket path (default: platform runtime dir)")
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "info", "log level: debug|info|warn|error")
}

// setupCLILogging configures slog on stderr for the non-interactive verbs.
func setupCLILogging(v *viper.Viper) {
	logging.Setup(logging.ParseFormat(v.GetString("log-format")), logging.ParseLevel(v.GetString("log-level")))
}

// setupTUILogging sends logs to a file: the terminal belongs to the surface.
func setupTUILogging(v *viper.Viper) (io.Closer, error) {
	path := v.GetString("log-file")
	if path == "" {
		path = logging.DefaultLogPath()
	}
	return logging.SetupFile(path, logging.ParseLevel(v.GetString("log-level")))
}
