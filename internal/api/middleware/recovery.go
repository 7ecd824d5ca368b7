package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/lidere-backoffice/internal/api/response"
	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
)

// RecoveryMiddleware is a middleware for recovering from panics
type RecoveryMiddleware struct{}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware() RecoveryMiddleware {
	return RecoveryMiddleware{}
}

// Handle turns panics and returned errors into error responses
func (m RecoveryMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
		requestID := request.RequestContext.RequestID

		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", r, "stack", string(debug.Stack()))
				resp = response.InternalError("an unexpected error occurred", fmt.Errorf("panic: %v", r), requestID)
				err = nil
			}
		}()

		resp, err = next(ctx, logger, request)
		if err != nil {
			appErr := errors.AsAppError(err)
			logger.ErrorContext(ctx, "request failed", "code", appErr.Code, "error", appErr.Error())
			return response.Error(appErr, requestID), nil
		}
		return resp, nil
	}
}
