package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hirosato/lidere-backoffice/internal/app"
	envconfig "github.com/hirosato/lidere-backoffice/internal/common/config"
)

// run like AWS_PROFILE=lidere-dev go run ./cmd/operation import-contacts --file contacts.csv
func newRootCmd(log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "operation",
		Short:         "Back-office operations for Lidere",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newImportContactsCmd(log))
	root.AddCommand(newNegotiateDebtCmd(log))
	return root
}

// loadApp builds the services from the environment. Service logs go to
// stderr as JSON, leaving stdout for command results.
func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := envconfig.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return app.New(ctx, cfg, logger)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
