package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/PneumoDetect/internal/emoji"
	"github.com/yildizm/PneumoDetect/internal/mockserver"
)

var (
	mockAddr     string
	mockSeed     int64
	mockLatency  time.Duration
	mockDuration time.Duration
)

func newMockServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local stand-in for the classification service",
		Long: `Run an in-memory backend that speaks the classification service API.

Uploads are classified with seeded random probabilities after a simulated
inference delay and kept in memory, so history and image lookups work
until the server stops. Useful for trying the interface without a model.

Endpoints: POST /analyze, GET /history, GET /images/{id}, GET /healthz

Examples:
  pneumodetect mock-server
  pneumodetect mock-server --addr :8080 --latency 0
  pneumodetect mock-server --seed 42 --duration 10m`,
		Args: cobra.NoArgs,
		RunE: runMockServer,
	}

	cmd.Flags().StringVar(&mockAddr, "addr", "", "listen address (default from config)")
	cmd.Flags().Int64Var(&mockSeed, "seed", 0, "random seed for predictions (0 = time-based)")
	cmd.Flags().DurationVar(&mockLatency, "latency", 0, "simulated inference delay (default from config)")
	cmd.Flags().DurationVar(&mockDuration, "duration", 0, "stop after this long (0 = until interrupted)")

	return cmd
}

func runMockServer(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := GetLogger("mock-server")

	serverConfig := mockserver.Config{
		Seed:        cfg.MockServer.Seed,
		Latency:     cfg.MockServer.Latency,
		MaxFileSize: cfg.Upload.MaxFileSize,
	}
	addr := cfg.MockServer.Addr

	if cmd.Flags().Changed("addr") {
		addr = mockAddr
	}
	if cmd.Flags().Changed("seed") {
		serverConfig.Seed = mockSeed
	}
	if cmd.Flags().Changed("latency") {
		serverConfig.Latency = mockLatency
	}

	ctx := commandContext(cmd)
	if mockDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, mockDuration)
		defer cancel()
	}

	server := mockserver.New(serverConfig, mockserver.WithLogger(log))

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Mock classification service listening on %s (Ctrl+C to stop)\n",
		emoji.GetEmoji("server"), addr)

	if err := server.ListenAndServe(ctx, addr); err != nil {
		return err
	}

	log.Info("mock server stopped after %d analyses", server.Len())
	return nil
}
