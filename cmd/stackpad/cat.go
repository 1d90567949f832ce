package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bhanujeet/stackpad/internal/bridge"
)

func newCatCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "cat",
		Short: "Print every clip's content to stdout (like pbpaste)",
		Long: `Prints the joined contents of the active pastebook to stdout, newest
first, separated by blank lines — the same text "copy all" places on the
clipboard.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runCat(v) },
	}

	addSocketFlag(cmd)
	addConfigFlag(cmd)
	addLoggingFlags(cmd)

	return cmd
}

func runCat(v *viper.Viper) error {
	setupCLILogging(v)

	client, err := dialBridge(v, sourceCLI)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), bridge.DefaultTimeout)
	defer cancel()
	content, err := client.GetAllContent(ctx)
	if err != nil {
		return fmt.Errorf("get all content: %w", err)
	}

	fmt.Print(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		fmt.Println()
	}
	return nil
}
