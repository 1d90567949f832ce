package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bhanujeet/stackpad/internal/logging"
	"github.com/Bhanujeet/stackpad/internal/message"
	"github.com/Bhanujeet/stackpad/internal/tui"
)

func newSidebarCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sidebar",
		Short: "Open the minimal capture feed",
		Long: `The sidebar shows captures as they land, one row per clip. Enter opens
the clip in a running canvas; d deletes it. Meant to sit in a narrow split
next to whatever you are copying from.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runSidebar(v) },
	}

	addSocketFlag(cmd)
	addConfigFlag(cmd)
	cmd.Flags().String("log-level", "info", "log level: debug|info|warn|error")
	cmd.Flags().String("log-file", logging.DefaultLogPath(), "log file path")

	return cmd
}

func runSidebar(v *viper.Viper) error {
	closer, err := setupTUILogging(v)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := dialBridge(v, message.SourceSidebar)
	if err != nil {
		return err
	}
	defer client.Close()

	return tui.RunSidebar(client)
}
