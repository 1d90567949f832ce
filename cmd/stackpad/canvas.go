package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bhanujeet/stackpad/internal/clip"
	"github.com/Bhanujeet/stackpad/internal/logging"
	"github.com/Bhanujeet/stackpad/internal/message"
	"github.com/Bhanujeet/stackpad/internal/tui"
)

func newCanvasCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Open the full clip management surface",
		Long: `The canvas is the main stackpad surface: every clip of the active
pastebook as a card, with search, multi-select, reorder, merge, pastebook
switching, magic sort and chat.

Logs go to a file (--log-file) because the terminal belongs to the UI.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runCanvas(v) },
	}

	addSocketFlag(cmd)
	addConfigFlag(cmd)
	cmd.Flags().String("log-level", "info", "log level: debug|info|warn|error")
	cmd.Flags().String("log-file", logging.DefaultLogPath(), "log file path")

	return cmd
}

func runCanvas(v *viper.Viper) error {
	closer, err := setupTUILogging(v)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := dialBridge(v, message.SourceCanvas)
	if err != nil {
		return err
	}
	defer client.Close()

	w := clip.New()
	defer w.Close()
	slog.Info("local clipboard ready", "writer", w.Name())

	return tui.RunCanvas(client, w)
}
