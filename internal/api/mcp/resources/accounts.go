package resources

import (
	"context"
	"net/url"

	"github.com/hirosato/lidere-backoffice/internal/domain/account"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
	"github.com/hirosato/lidere-backoffice/internal/domain/tenant"
)

type AccountsResource struct {
	accountService *account.Service
}

func NewAccountsResource(accountService *account.Service) *AccountsResource {
	return &AccountsResource{accountService: accountService}
}

func (r *AccountsResource) GetURI() string {
	return scheme + "accounts"
}

func (r *AccountsResource) GetName() string {
	return "Accounts"
}

func (r *AccountsResource) GetDescription() string {
	return "Payable and receivable accounts ordered by due date. " +
		"Query parameters: status (pending|paid), kind (payable|receivable), debtId, or id for a single account."
}

func (r *AccountsResource) GetMimeType() string {
	return mimeJSON
}

func (r *AccountsResource) Read(ctx context.Context, query url.Values) (*mcp.ReadResourceResult, error) {
	if id := query.Get("id"); id != "" {
		found, err := r.accountService.GetAccount(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := inScope(ctx, found.CompanyID, "account"); err != nil {
			return nil, err
		}
		return jsonContents(r.GetURI(), found)
	}

	status, err := oneOf(query, "status", string(account.Pending), string(account.Paid))
	if err != nil {
		return nil, err
	}
	kind, err := oneOf(query, "kind", string(account.Payable), string(account.Receivable))
	if err != nil {
		return nil, err
	}

	accounts, err := r.accountService.ListAccounts(ctx, &account.ListAccountsRequest{
		CompanyID: tenant.CompanyID(ctx),
		Kind:      account.Kind(kind),
		Status:    account.Status(status),
		DebtID:    query.Get("debtId"),
	})
	if err != nil {
		return nil, err
	}
	return jsonContents(r.GetURI(), accounts)
}
