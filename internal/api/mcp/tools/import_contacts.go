package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
)

// ImportContactsTool imports a batch of tabular contact records
type ImportContactsTool struct {
	importer *contact.Importer
}

func NewImportContactsTool(importer *contact.Importer) *ImportContactsTool {
	return &ImportContactsTool{importer: importer}
}

func (t *ImportContactsTool) GetName() string {
	return "import-contacts"
}

func (t *ImportContactsTool) GetDescription() string {
	return "Imports contacts from tabular records. Each record is imported on its own, " +
		"optionally provisioning student logins and formation access. Returns per-record diagnostics."
}

func (t *ImportContactsTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"records": map[string]interface{}{
				"type":        "array",
				"description": "Rows keyed by column name",
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": map[string]interface{}{"type": "string"},
				},
			},
			"fieldMapping": map[string]interface{}{
				"type":        "object",
				"description": "Column holding each contact field. Unmapped fields are read from the column of the same name.",
				"properties": map[string]interface{}{
					string(contact.FieldName):       stringProp("Name column"),
					string(contact.FieldPhone):      stringProp("Phone column"),
					string(contact.FieldEmail):      stringProp("Email column"),
					string(contact.FieldCompany):    stringProp("Company column"),
					string(contact.FieldTags):       stringProp("Comma separated tags column"),
					string(contact.FieldStudent):    stringProp("Student flag column"),
					string(contact.FieldFormations): stringProp("Comma separated formation names column"),
				},
			},
			"studentConfig": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grantAccess": map[string]interface{}{"type": "boolean"},
					"expiresAt":   dateProp("Expiry of granted formation access"),
				},
			},
		},
		Required:             []string{"records"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *ImportContactsTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		Records       []contact.Record     `json:"records"`
		FieldMapping  contact.FieldMapping `json:"fieldMapping"`
		StudentConfig struct {
			GrantAccess bool   `json:"grantAccess"`
			ExpiresAt   string `json:"expiresAt"`
		} `json:"studentConfig"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return nil, err
	}

	cfg := contact.StudentConfig{GrantAccess: args.StudentConfig.GrantAccess}
	if args.StudentConfig.ExpiresAt != "" {
		expiresAt, err := utils.ParseDate(args.StudentConfig.ExpiresAt)
		if err != nil {
			return nil, err
		}
		cfg.ExpiresAt = &expiresAt
	}

	result, err := t.importer.ImportContacts(ctx, args.Records, args.FieldMapping, cfg)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("Imported %d of %d records (%d failed, %d skipped):",
		result.SuccessCount, len(args.Records), result.FailedCount, result.SkippedCount)
	return mcp.JSONResult(summary, result)
}
