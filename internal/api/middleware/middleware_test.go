package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonErrors "github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/tenant"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func request(headers map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodPost,
		Path:           "/",
		Headers:        headers,
		RequestContext: events.APIGatewayProxyRequestContext{RequestID: "req-1"},
	}
}

func TestTenantMiddleware(t *testing.T) {
	t.Run("scopes request to the header company", func(t *testing.T) {
		// Setup
		var seen string
		next := func(ctx context.Context, logger *slog.Logger, r events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			seen = tenant.CompanyID(ctx)
			return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
		}
		handler := NewTenantMiddleware().Handle(next)

		// Act
		resp, err := handler(context.Background(), discard, request(map[string]string{"x-company-id": "lidere"}))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "lidere", seen)
	})

	t.Run("rejects a malformed company", func(t *testing.T) {
		// Setup
		called := false
		next := func(ctx context.Context, logger *slog.Logger, r events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			called = true
			return events.APIGatewayProxyResponse{}, nil
		}
		handler := NewTenantMiddleware().Handle(next)

		// Act
		resp, err := handler(context.Background(), discard, request(map[string]string{"X-Company-Id": "a#b"}))

		// Assert
		require.NoError(t, err)
		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("panic becomes internal error", func(t *testing.T) {
		// Setup
		next := func(ctx context.Context, logger *slog.Logger, r events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			panic("boom")
		}
		handler := Chain(next, NewRecoveryMiddleware(), NewLoggingMiddleware(false))

		// Act
		resp, err := handler(context.Background(), discard, request(nil))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, resp.Body, "boom")
	})

	t.Run("returned error becomes error response", func(t *testing.T) {
		// Setup
		next := func(ctx context.Context, logger *slog.Logger, r events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return events.APIGatewayProxyResponse{}, commonErrors.NewNotFoundError("account not found")
		}
		handler := NewRecoveryMiddleware().Handle(next)

		// Act
		resp, err := handler(context.Background(), discard, request(nil))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, resp.Body, "account not found")
	})

	t.Run("plain error is internal", func(t *testing.T) {
		// Setup
		next := func(ctx context.Context, logger *slog.Logger, r events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return events.APIGatewayProxyResponse{}, errors.New("raw")
		}
		handler := NewRecoveryMiddleware().Handle(next)

		// Act
		resp, err := handler(context.Background(), discard, request(nil))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestMaskSensitiveHeaders(t *testing.T) {
	masked := maskSensitiveHeaders(map[string]string{"Authorization": "Bearer x", "X-Company-Id": "lidere"})
	assert.Equal(t, "***", masked["Authorization"])
	assert.Equal(t, "lidere", masked["X-Company-Id"])
}
