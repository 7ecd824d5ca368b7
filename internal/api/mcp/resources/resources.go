package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
	"github.com/hirosato/lidere-backoffice/internal/domain/tenant"
)

const (
	scheme   = "lidere://"
	mimeJSON = "application/json"
)

// jsonContents renders data as the single JSON content of a resource read
func jsonContents(uri string, data any) (*mcp.ReadResourceResult, error) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, errors.NewInternalError("failed to format resource", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      uri,
				MimeType: mimeJSON,
				Text:     string(body),
			},
		},
	}, nil
}

// oneOf returns the query parameter when it is empty or one of allowed
func oneOf(query url.Values, key string, allowed ...string) (string, error) {
	value := strings.TrimSpace(query.Get(key))
	if value == "" {
		return "", nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", errors.NewValidationError(fmt.Sprintf("%s must be one of %s", key, strings.Join(allowed, ", ")))
}

// inScope hides entities owned by a company other than the request's
func inScope(ctx context.Context, ownerCompanyID, entity string) error {
	scope := tenant.CompanyID(ctx)
	if scope != "" && scope != ownerCompanyID {
		return errors.NewNotFoundError(entity + " not found")
	}
	return nil
}
