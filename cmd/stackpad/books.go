package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bhanujeet/stackpad/internal/bridge"
)

func newBooksCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "books",
		Short:   "List pastebooks with clip counts",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runBooks(v) },
	}

	addSocketFlag(cmd)
	addConfigFlag(cmd)
	addLoggingFlags(cmd)
	cmd.Flags().Bool("json", false, "output raw pastebook entries")

	return cmd
}

func runBooks(v *viper.Viper) error {
	setupCLILogging(v)

	client, err := dialBridge(v, sourceCLI)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), bridge.DefaultTimeout)
	defer cancel()
	entries, err := client.ListPastebooks(ctx)
	if err != nil {
		return fmt.Errorf("list pastebooks: %w", err)
	}
	active, err := client.GetActivePastebook(ctx)
	if err != nil {
		return fmt.Errorf("get active pastebook: %w", err)
	}

	if v.GetBool("json") {
		enc, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(enc))
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "\tNAME\tCLIPS\n")
	for _, e := range entries {
		marker := ""
		if active != nil && e.ID == active.ID {
			marker = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", marker, e.Name, e.Count)
	}
	return tw.Flush()
}
