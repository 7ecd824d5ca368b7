package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/tenant"
)

// decodeArguments unmarshals tool arguments, reporting bad input as a
// validation error
func decodeArguments(arguments json.RawMessage, v any) error {
	if len(arguments) == 0 {
		arguments = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(arguments, v); err != nil {
		return errors.NewValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

// scopedCompany resolves the company a write applies to. A request scoped by
// X-Company-Id may only write to that company.
func scopedCompany(ctx context.Context, companyID, companyName string) (string, string, error) {
	scope := tenant.CompanyID(ctx)
	if scope == "" {
		return companyID, companyName, nil
	}
	if companyID != "" && companyID != scope {
		return "", "", errors.NewValidationError("companyId does not match X-Company-Id")
	}
	if companyName == "" {
		companyName = tenant.CompanyName(ctx)
	}
	return scope, companyName, nil
}

// checkScope rejects access to an entity owned by another company than the
// one the request is scoped to. The entity is reported as missing.
func checkScope(ctx context.Context, ownerCompanyID, entity string) error {
	scope := tenant.CompanyID(ctx)
	if scope != "" && scope != ownerCompanyID {
		return errors.NewNotFoundError(entity + " not found")
	}
	return nil
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func dateProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description + " (YYYY-MM-DD)",
		"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
	}
}

func amountProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description + " as a decimal string, e.g. \"1500.00\"",
		"pattern":     "^[0-9]+(\\.[0-9]+)?$",
	}
}

func enumProp(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        values,
	}
}

func idProp(entity string) map[string]interface{} {
	return stringProp(fmt.Sprintf("ID of the %s", entity))
}

var noExtraProperties = false
