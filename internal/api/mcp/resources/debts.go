package resources

import (
	"context"
	"net/url"

	"github.com/hirosato/lidere-backoffice/internal/domain/debt"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
	"github.com/hirosato/lidere-backoffice/internal/domain/tenant"
)

type DebtsResource struct {
	debtService *debt.Service
}

func NewDebtsResource(debtService *debt.Service) *DebtsResource {
	return &DebtsResource{debtService: debtService}
}

func (r *DebtsResource) GetURI() string {
	return scheme + "debts"
}

func (r *DebtsResource) GetName() string {
	return "Debts"
}

func (r *DebtsResource) GetDescription() string {
	return "Debts and their negotiated installment plans, newest first. " +
		"Query parameters: status (open|negotiated|paid), or id for a single debt."
}

func (r *DebtsResource) GetMimeType() string {
	return mimeJSON
}

func (r *DebtsResource) Read(ctx context.Context, query url.Values) (*mcp.ReadResourceResult, error) {
	if id := query.Get("id"); id != "" {
		found, err := r.debtService.GetDebt(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := inScope(ctx, found.CompanyID, "debt"); err != nil {
			return nil, err
		}
		return jsonContents(r.GetURI(), found)
	}

	status, err := oneOf(query, "status", string(debt.Open), string(debt.Negotiated), string(debt.Paid))
	if err != nil {
		return nil, err
	}

	debts, err := r.debtService.ListDebts(ctx, &debt.ListDebtsRequest{
		CompanyID: tenant.CompanyID(ctx),
		Status:    debt.Status(status),
	})
	if err != nil {
		return nil, err
	}
	return jsonContents(r.GetURI(), debts)
}
