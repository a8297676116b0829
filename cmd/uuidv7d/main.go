package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	serverrun "github.com/sazikov-a/userver/internal/cmd/server"
	cfgpkg "github.com/sazikov-a/userver/internal/config"
	pebblestore "github.com/sazikov-a/userver/internal/storage/pebble"
	logpkg "github.com/sazikov-a/userver/pkg/log"
	"github.com/sazikov-a/userver/pkg/uuidv7"
	"github.com/spf13/cobra"
)

func main() {
	level := os.Getenv("UUIDV7D_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(&logpkg.ConsoleOutput{}),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "uuidv7d",
		Short: "Monotonic UUIDv7 generator CLI",
		Long:  "uuidv7d generates monotonic, per-node UUIDv7 identifiers and runs a small identifier service exposing gRPC health checks and an HTTP generation API.",
	}

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newServerCommand())
	rootCmd.AddCommand(newNamespaceCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newGenerateCommand generates one or more identifiers locally, with no
// dependency on a running server: it exercises pkg/uuidv7 directly.
func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more UUIDv7 identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			for i := 0; i < count; i++ {
				fmt.Println(uuidv7.GenerateString())
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 1, "number of identifiers to generate")
	return cmd
}

func newServerCommand() *cobra.Command {
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}

	startCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the identifier service (gRPC health + HTTP generation API)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			grpcAddr, _ := cmd.Flags().GetString("grpc")
			httpAddr, _ := cmd.Flags().GetString("http")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")
			nodeID, _ := cmd.Flags().GetString("node-id")
			policyExpr, _ := cmd.Flags().GetString("policy")
			maxBatch, _ := cmd.Flags().GetInt("max-batch-size")
			auditEnabled, _ := cmd.Flags().GetBool("audit")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "interval":
				mode = pebblestore.FsyncModeInterval
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg := cfgpkg.Default()
			if nodeID != "" {
				cfg.NodeID = nodeID
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}
			if policyExpr != "" {
				cfg.Policy.Expression = policyExpr
			}
			if maxBatch > 0 {
				cfg.Policy.MaxBatchSize = maxBatch
			}
			cfg.Audit.Enabled = auditEnabled

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       dataDir,
				GRPCAddr:      grpcAddr,
				HTTPAddr:      httpAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(fsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	startCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	startCmd.Flags().String("grpc", ":7443", "gRPC listen address")
	startCmd.Flags().String("http", ":7080", "HTTP listen address")
	startCmd.Flags().String("fsync", "always", "Fsync mode: always|interval|never")
	startCmd.Flags().Int("fsync-interval-ms", 5, "When --fsync=interval, group-commit window in ms")
	startCmd.Flags().String("log-level", os.Getenv("UUIDV7D_LOG_LEVEL"), "Log level: debug|info|warn|error")
	startCmd.Flags().String("log-format", os.Getenv("UUIDV7D_LOG_FORMAT"), "Log format: text|json")
	startCmd.Flags().String("node-id", "", "Node identifier recorded in the audit ledger")
	startCmd.Flags().String("policy", "", "CEL expression gating generation requests")
	startCmd.Flags().Int("max-batch-size", 0, "Maximum batch size accepted by the default policy")
	startCmd.Flags().Bool("audit", true, "Record generated identifiers to the audit ledger")
	serverCmd.AddCommand(startCmd)
	return serverCmd
}

func newNamespaceCommand() *cobra.Command {
	nsCmd := &cobra.Command{Use: "namespace", Short: "Namespace operations against a running server"}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recently generated identifiers for a namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			resp, err := http.Get(apiURL() + "/v1/ids/stats?namespace=" + name)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			var out bytes.Buffer
			if _, err := io.Copy(&out, resp.Body); err != nil {
				return err
			}
			fmt.Println(out.String())
			return nil
		},
	}
	statsCmd.Flags().String("name", "default", "Namespace name")
	nsCmd.AddCommand(statsCmd)

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an identifier against a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			body, err := json.Marshal(map[string]string{"namespace": name})
			if err != nil {
				return err
			}
			resp, err := http.Post(apiURL()+"/v1/ids/generate", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			var out bytes.Buffer
			if _, err := io.Copy(&out, resp.Body); err != nil {
				return err
			}
			fmt.Println(out.String())
			return nil
		},
	}
	generateCmd.Flags().String("name", "default", "Namespace name")
	nsCmd.AddCommand(generateCmd)

	return nsCmd
}

func apiURL() string {
	if v := os.Getenv("UUIDV7D_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:7080"
}
