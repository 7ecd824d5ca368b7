package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// LoggingMiddleware is a middleware for logging requests and responses
type LoggingMiddleware struct {
	// logBodies adds request and response bodies to the log, for dev only
	logBodies bool
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logBodies bool) LoggingMiddleware {
	return LoggingMiddleware{logBodies: logBodies}
}

// Handle handles the logging middleware. Downstream handlers receive a
// logger annotated with the request id.
func (m LoggingMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		startTime := time.Now()
		logger = logger.With("requestId", request.RequestContext.RequestID)

		m.logRequest(ctx, request, logger)

		response, err := next(ctx, logger, request)

		m.logResponse(ctx, response, err, time.Since(startTime), logger)
		return response, err
	}
}

func (m LoggingMiddleware) logRequest(ctx context.Context, request events.APIGatewayProxyRequest, logger *slog.Logger) {
	attrs := []any{
		"method", request.HTTPMethod,
		"path", request.Path,
		"companyId", header(request.Headers, companyIDHeader),
		"headers", maskSensitiveHeaders(request.Headers),
	}
	if m.logBodies && request.Body != "" {
		attrs = append(attrs, "body", request.Body)
	}
	logger.InfoContext(ctx, "request", attrs...)
}

func (m LoggingMiddleware) logResponse(ctx context.Context, response events.APIGatewayProxyResponse, err error, duration time.Duration, logger *slog.Logger) {
	if err != nil {
		logger.ErrorContext(ctx, "handler failed", "error", err)
	}

	attrs := []any{
		"status", response.StatusCode,
		"duration", duration,
	}
	if m.logBodies && response.Body != "" {
		attrs = append(attrs, "body", response.Body)
	}
	logger.InfoContext(ctx, "response", attrs...)
}

// maskSensitiveHeaders masks sensitive headers
func maskSensitiveHeaders(headers map[string]string) map[string]string {
	maskedHeaders := make(map[string]string, len(headers))
	for k, v := range headers {
		maskedHeaders[k] = v
	}

	sensitiveHeaders := []string{
		"Authorization",
		"authorization",
		"X-Api-Key",
		"Cookie",
	}
	for _, h := range sensitiveHeaders {
		if _, ok := maskedHeaders[h]; ok {
			maskedHeaders[h] = "***"
		}
	}

	return maskedHeaders
}
