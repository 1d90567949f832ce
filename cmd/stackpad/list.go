package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bhanujeet/stackpad/internal/bridge"
)

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the clips of the active pastebook",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runList(v) },
	}

	addSocketFlag(cmd)
	addConfigFlag(cmd)
	addLoggingFlags(cmd)
	cmd.Flags().Bool("json", false, "output raw clip records")

	return cmd
}

func runList(v *viper.Viper) error {
	setupCLILogging(v)

	client, err := dialBridge(v, sourceCLI)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), bridge.DefaultTimeout)
	defer cancel()
	clips, err := client.GetClips(ctx)
	if err != nil {
		return fmt.Errorf("get clips: %w", err)
	}

	if v.GetBool("json") {
		enc, err := json.MarshalIndent(clips, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(enc))
		return nil
	}

	if len(clips) == 0 {
		fmt.Println("No clips.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "#\tSOURCE\tAGE\tCONTENT\n")
	for i, c := range clips {
		first, _, _ := strings.Cut(c.Content, "\n")
		first = truncateRunes(first, 60)
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, c.Metadata.SourceApp, fmtAge(c.Metadata.Timestamp), first)
	}
	return tw.Flush()
}
