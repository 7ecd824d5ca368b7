package resources

import (
	"context"
	"net/url"

	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
	"github.com/hirosato/lidere-backoffice/internal/domain/tenant"
)

type LedgerEntriesResource struct {
	ledgerService *ledger.Service
}

func NewLedgerEntriesResource(ledgerService *ledger.Service) *LedgerEntriesResource {
	return &LedgerEntriesResource{ledgerService: ledgerService}
}

func (r *LedgerEntriesResource) GetURI() string {
	return scheme + "ledger-entries"
}

func (r *LedgerEntriesResource) GetName() string {
	return "Ledger Entries"
}

func (r *LedgerEntriesResource) GetDescription() string {
	return "Realized income and expenses, newest first. Query parameters: type (income|expense), or id for a single entry."
}

func (r *LedgerEntriesResource) GetMimeType() string {
	return mimeJSON
}

func (r *LedgerEntriesResource) Read(ctx context.Context, query url.Values) (*mcp.ReadResourceResult, error) {
	if id := query.Get("id"); id != "" {
		entry, err := r.ledgerService.GetEntry(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := inScope(ctx, entry.CompanyID, "ledger entry"); err != nil {
			return nil, err
		}
		return jsonContents(r.GetURI(), entry)
	}

	entryType, err := oneOf(query, "type", string(ledger.Income), string(ledger.Expense))
	if err != nil {
		return nil, err
	}

	entries, err := r.ledgerService.ListEntries(ctx, &ledger.ListEntriesRequest{
		CompanyID: tenant.CompanyID(ctx),
		Type:      ledger.EntryType(entryType),
	})
	if err != nil {
		return nil, err
	}
	return jsonContents(r.GetURI(), entries)
}
