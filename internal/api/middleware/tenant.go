package middleware

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/lidere-backoffice/internal/api/response"
	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/tenant"
)

const (
	companyIDHeader   = "X-Company-Id"
	companyNameHeader = "X-Company-Name"
)

// TenantMiddleware scopes the request to the company named by the
// X-Company-Id header. Requests without the header are unscoped.
type TenantMiddleware struct{}

// NewTenantMiddleware creates a new tenant middleware
func NewTenantMiddleware() TenantMiddleware {
	return TenantMiddleware{}
}

// Handle handles the tenant middleware for Lambda functions
func (m TenantMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		companyID := header(request.Headers, companyIDHeader)
		if companyID != "" {
			if err := utils.ValidateCompanyID(companyID); err != nil {
				return response.ValidationError("invalid X-Company-Id header", request.RequestContext.RequestID), nil
			}
			logger = logger.With("companyId", companyID)
		}

		ctx = tenant.WithContext(ctx, &tenant.TenantContext{
			CompanyID:   companyID,
			CompanyName: header(request.Headers, companyNameHeader),
			RequestID:   request.RequestContext.RequestID,
		})
		return next(ctx, logger, request)
	}
}
