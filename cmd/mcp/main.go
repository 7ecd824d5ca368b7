package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/hirosato/lidere-backoffice/internal/api/mcp/resources"
	"github.com/hirosato/lidere-backoffice/internal/api/mcp/tools"
	"github.com/hirosato/lidere-backoffice/internal/api/middleware"
	"github.com/hirosato/lidere-backoffice/internal/app"
	envconfig "github.com/hirosato/lidere-backoffice/internal/common/config"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
)

// newRegistry exposes every back-office action as a tool and every list as
// a resource
func newRegistry(a *app.App) *mcp.HandlerRegistry {
	registry := mcp.NewHandlerRegistry()

	registry.RegisterTool(tools.NewCreateAccountTool(a.Accounts))
	registry.RegisterTool(tools.NewMarkAccountPaidTool(a.Accounts))
	registry.RegisterTool(tools.NewMarkAccountPendingTool(a.Accounts))
	registry.RegisterTool(tools.NewCreateDebtTool(a.Debts))
	registry.RegisterTool(tools.NewNegotiateDebtTool(a.Debts))
	registry.RegisterTool(tools.NewMarkDebtPaidTool(a.Debts))
	registry.RegisterTool(tools.NewCreateLedgerEntryTool(a.Ledger))
	registry.RegisterTool(tools.NewDeleteAccountTool(a.Accounts))
	registry.RegisterTool(tools.NewDeleteDebtTool(a.Debts))
	registry.RegisterTool(tools.NewDeleteLedgerEntryTool(a.Ledger))
	registry.RegisterTool(tools.NewCreateContactTool(a.Contacts))
	registry.RegisterTool(tools.NewImportContactsTool(a.Importer))

	registry.RegisterResource(resources.NewAccountsResource(a.Accounts))
	registry.RegisterResource(resources.NewLedgerEntriesResource(a.Ledger))
	registry.RegisterResource(resources.NewDebtsResource(a.Debts))
	registry.RegisterResource(resources.NewContactsResource(a.Contacts))

	return registry
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	// Local runs read a .env file; Lambda has none
	_ = godotenv.Load()

	config, err := envconfig.LoadFromEnv()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(config.LogLevel)}))
	slog.SetDefault(logger)

	ctx := context.Background()
	application, err := app.New(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	mcpService := mcp.NewService(logger, newRegistry(application))
	handler := NewMCPRequestHandler(mcpService)

	chain := middleware.Chain(handler.HandleRequest,
		middleware.NewRecoveryMiddleware(),
		middleware.NewLoggingMiddleware(!config.IsProd()),
		middleware.NewTenantMiddleware(),
	)

	lambda.Start(func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return chain(ctx, logger, request)
	})
}
