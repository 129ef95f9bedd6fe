// Package main is the credkit command line: roster and search operations run
// directly against the configured storage backend.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"credkit/internal/app"
	"credkit/internal/platform/config"
	"credkit/internal/roster"
	rostermetrics "credkit/internal/roster/metrics"
	"credkit/internal/search"
	searchmetrics "credkit/internal/search/metrics"
)

var (
	storageFlag   string
	namespaceFlag string
	verboseFlag   bool
)

// env holds the services a command runs against.
type env struct {
	roster  *roster.Service
	engine  *search.Engine
	history *search.History
	closer  io.Closer
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "credkit",
		Short:         "Manage the credkit client roster and search history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend: memory, sqlite, redis, postgres or none (defaults to CREDKIT_STORAGE, else sqlite at CREDKIT_SQLITE_PATH)")
	root.PersistentFlags().StringVar(&namespaceFlag, "namespace", "", "Storage key namespace (defaults to CREDKIT_STORAGE_NAMESPACE)")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log to stderr")

	root.AddCommand(newClientsCmd(), newSearchCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openEnv builds the services from the environment and command flags.
func openEnv(ctx context.Context) (*env, error) {
	cfg := config.FromEnv()
	switch {
	case storageFlag != "":
		cfg.Storage = storageFlag
	case os.Getenv("CREDKIT_STORAGE") == "":
		// Each command is its own process, so the in-memory default would
		// drop every write on exit.
		cfg.Storage = config.StorageSQLite
	}
	if namespaceFlag != "" {
		cfg.StorageNamespace = namespaceFlag
	}

	out := io.Discard
	if verboseFlag {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Log.Level}))

	kv, closer, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	sm := searchmetrics.New(reg)
	svc := roster.NewService(kv, cfg.StorageNamespace, logger, rostermetrics.New(reg))
	return &env{
		roster:  svc,
		engine:  search.NewEngine(svc, sm),
		history: search.NewHistory(kv, cfg.StorageNamespace, logger, sm),
		closer:  closer,
	}, nil
}

func withEnv(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.closer.Close()
		return fn(cmd, args, e)
	}
}
