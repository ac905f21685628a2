package cmd

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/backend"
	"taskboard/cli/internal/mockserver"
	"taskboard/cli/internal/workspace"
)

var (
	mockAddr    string
	mockLatency time.Duration
)

// mockServerCmd serves the demo API locally so the http provider and data source can
// be used without a real backend.
var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run a local taskboard API with demo users and data",
	Long: `The mock-server command serves the taskboard REST API from memory with the demo
accounts and projects. Point the CLI at it with:

  taskboard config set provider http
  taskboard config set data_source http
  taskboard config set api_url http://localhost:3000`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annNoApp: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := mockserver.New(backend.NewDemoDirectory(), workspace.NewMemoryStore(mockLatency), Version, nil)
		return srv.ListenAndServe(ctx, mockAddr, func(addr net.Addr) {
			pterm.Printf("🧪 Mock API listening on http://%s (Ctrl+C to stop)\n", addr)
			for _, u := range backend.DemoUsers() {
				pterm.Printf("   %s / %s\n", u.Username, u.Password)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(mockServerCmd)
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", "127.0.0.1:3000", "Address to listen on")
	mockServerCmd.Flags().DurationVar(&mockLatency, "latency", 0, "Artificial latency of data operations")
}
