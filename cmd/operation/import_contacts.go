package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
)

var knownFields = map[contact.Field]bool{
	contact.FieldName:       true,
	contact.FieldPhone:      true,
	contact.FieldEmail:      true,
	contact.FieldCompany:    true,
	contact.FieldTags:       true,
	contact.FieldStudent:    true,
	contact.FieldFormations: true,
}

func newImportContactsCmd(log *zap.Logger) *cobra.Command {
	var (
		file        string
		delimiter   string
		columns     map[string]string
		grantAccess bool
		expiresAt   string
	)

	cmd := &cobra.Command{
		Use:   "import-contacts",
		Short: "Import contacts from a CSV file",
		Long: `Import contacts from a CSV file whose first row holds the column names.

Each row is imported on its own. With --grant-access, rows flagged as students
get a login and access to the formations listed in their row.`,
		Example: `  operation import-contacts --file alunos.csv \
    --map name=Nome --map phone=Telefone --map email=E-mail \
    --map student=Aluno --map formations=Cursos \
    --grant-access --expires-at 2027-01-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping, err := parseMapping(columns)
			if err != nil {
				return err
			}
			cfg := contact.StudentConfig{GrantAccess: grantAccess}
			if expiresAt != "" {
				t, err := utils.ParseDate(expiresAt)
				if err != nil {
					return fmt.Errorf("--expires-at: %w", err)
				}
				cfg.ExpiresAt = &t
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := readRecords(f, delimiter)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			log.Info("Importing contacts", zap.String("file", file), zap.Int("records", len(records)), zap.Bool("grantAccess", grantAccess))

			ctx := cmd.Context()
			application, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			result, err := application.Importer.ImportContacts(ctx, records, mapping, cfg)
			if err != nil {
				return err
			}

			log.Info("Import finished",
				zap.Int("success", result.SuccessCount),
				zap.Int("failed", result.FailedCount),
				zap.Int("skipped", result.SkippedCount))
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to import")
	cmd.Flags().StringVar(&delimiter, "delimiter", ",", "Column delimiter")
	cmd.Flags().StringToStringVar(&columns, "map", nil, "field=column mapping, repeatable")
	cmd.Flags().BoolVar(&grantAccess, "grant-access", false, "Provision student logins and formation access")
	cmd.Flags().StringVar(&expiresAt, "expires-at", "", "Expiry of granted formation access (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// parseMapping validates --map keys against the contact fields
func parseMapping(columns map[string]string) (contact.FieldMapping, error) {
	mapping := make(contact.FieldMapping, len(columns))
	for field, column := range columns {
		f := contact.Field(strings.ToLower(strings.TrimSpace(field)))
		if !knownFields[f] {
			return nil, fmt.Errorf("unknown field %q in --map", field)
		}
		mapping[f] = column
	}
	return mapping, nil
}

// readRecords reads CSV rows keyed by the header row. Short rows leave the
// missing columns empty.
func readRecords(r io.Reader, delimiter string) ([]contact.Record, error) {
	comma, size := utf8.DecodeRuneInString(delimiter)
	if size == 0 || size != len(delimiter) {
		return nil, errors.New("delimiter must be a single character")
	}

	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []contact.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	records := []contact.Record{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		record := make(contact.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}
