package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bhanujeet/stackpad/internal/backendtest"
	"github.com/Bhanujeet/stackpad/internal/ipc"
)

func newDevBackendCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:    "dev-backend",
		Hidden: true,
		Short:  "Run the in-memory protocol double of the backend",
		Long: `Serves the full bridge protocol on the stackpad socket, backed by an
in-memory store. Nothing is persisted, nothing is captured and AI replies are
canned. Useful for developing and demoing the surfaces without the real
backend.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDevBackend(v) },
	}

	addSocketFlag(cmd)
	addConfigFlag(cmd)
	addLoggingFlags(cmd)
	cmd.Flags().Int("seed", 0, "number of sample clips to pre-fill")

	return cmd
}

func runDevBackend(v *viper.Viper) error {
	setupCLILogging(v)

	path := v.GetString("socket")
	if path == "" {
		path = ipc.SocketPath()
	}
	// ListenAt unlinks the socket file; probe first so a live backend's
	// socket is never pulled out from under it.
	if ipc.IsRunningAt(path) {
		return fmt.Errorf("a backend is already listening on %s", path)
	}
	ln, err := ipc.ListenAt(path)
	if err != nil {
		return fmt.Errorf("listen %s: %w", path, err)
	}

	b := backendtest.New()
	for i := v.GetInt("seed"); i > 0; i-- {
		b.Store().AddClip(b.Store().NewClip(
			fmt.Sprintf("sample clip %d", i), "dev-backend", "seed"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	slog.Info("dev backend listening", "socket", path)
	b.Serve(ln)
	return nil
}
