// stackpad: terminal front-end for the Stack clipboard manager.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "stackpad",
		Short: "Terminal front-end for the Stack clipboard manager",
		Long: `stackpad is the terminal front-end of the Stack clipboard manager. The
backend process owns capture, storage and AI; stackpad talks to it over a
local socket.

Run "stackpad canvas" for the full management surface (search, select,
reorder, merge, pastebooks, magic sort, chat) and "stackpad sidebar" for the
minimal capture feed. "list", "books" and "cat" are non-interactive views of
the same state.

Config file search order (first found wins):
  /etc/stackpad/stackpad.toml
  $HOME/.config/stackpad/stackpad.toml
  path supplied via --config

All flags can be set via STACKPAD_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCanvasCmd(),
		newSidebarCmd(),
		newListCmd(),
		newBooksCmd(),
		newCatCmd(),
		newDevBackendCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("stackpad %s\n", Version)
		},
	}
}
