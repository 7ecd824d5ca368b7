package contact

import (
	"strings"
	"time"
)

// Contact is a person in the school's address book, optionally a student
type Contact struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Phone           string            `json:"phone"`
	Email           string            `json:"email,omitempty"`
	Company         string            `json:"company,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	StudentAccess   *StudentAccess    `json:"studentAccess,omitempty"`
	FormationAccess []FormationAccess `json:"formationAccess,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// IsStudent reports whether the contact has a provisioned identity
func (c *Contact) IsStudent() bool {
	return c.StudentAccess != nil && c.StudentAccess.UserID != ""
}

// StudentAccess binds a contact to its external identity
type StudentAccess struct {
	UserID    string    `json:"userId"`
	GrantedAt time.Time `json:"grantedAt"`
}

// FormationAccess grants a student access to one formation
type FormationAccess struct {
	FormationID string     `json:"formationId"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// Field names a contact attribute that a FieldMapping can source
type Field string

const (
	FieldName       Field = "name"
	FieldPhone      Field = "phone"
	FieldEmail      Field = "email"
	FieldCompany    Field = "company"
	FieldTags       Field = "tags"
	FieldStudent    Field = "student"
	FieldFormations Field = "formations"
)

// Record is one row of tabular input keyed by column name
type Record map[string]string

// FieldMapping maps each contact field to the column that holds it. A field
// without a mapping is read from the column of the same name.
type FieldMapping map[Field]string

// Value returns the trimmed value of field in record
func (m FieldMapping) Value(record Record, field Field) string {
	column, ok := m[field]
	if !ok || column == "" {
		column = string(field)
	}
	return strings.TrimSpace(record[column])
}

// StudentConfig controls student provisioning for an import batch
type StudentConfig struct {
	GrantAccess bool       `json:"grantAccess"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// ImportResult aggregates the per-record outcomes of an import
type ImportResult struct {
	SuccessCount int      `json:"successCount"`
	FailedCount  int      `json:"failedCount"`
	SkippedCount int      `json:"skippedCount"`
	Diagnostics  []string `json:"diagnostics"`
}

// CreateContactRequest represents the request to create a single contact
type CreateContactRequest struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email,omitempty"`
	Company string   `json:"company,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// ListContactsRequest filters contacts. Empty fields match everything.
type ListContactsRequest struct {
	Tag          string `json:"tag,omitempty"`
	StudentsOnly bool   `json:"studentsOnly,omitempty"`
}

// SplitValues splits a comma-delimited cell into trimmed, de-duplicated
// values in first-seen order
func SplitValues(raw string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		v := strings.TrimSpace(part)
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		out = append(out, v)
	}
	return out
}

// NormalizeEmail is the comparison key for emails
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
