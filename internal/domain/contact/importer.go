package contact

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/oklog/ulid/v2"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/auth"
	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/events"
	"github.com/hirosato/lidere-backoffice/internal/domain/formation"
)

// maxSuggestionDistance bounds the edit distance of a "did you mean" hint
const maxSuggestionDistance = 2

var studentFlags = map[string]bool{
	"true": true, "1": true, "yes": true, "y": true, "sim": true, "s": true, "x": true,
}

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeSkipped
	outcomeFailed
)

// recordOutcome is the result of importing one record
type recordOutcome struct {
	kind     outcomeKind
	reason   string
	err      error
	warnings []string
}

func succeeded(warnings []string) recordOutcome {
	return recordOutcome{kind: outcomeSuccess, warnings: warnings}
}

func skipped(reason string) recordOutcome {
	return recordOutcome{kind: outcomeSkipped, reason: reason}
}

func failed(err error, warnings []string) recordOutcome {
	return recordOutcome{kind: outcomeFailed, err: err, warnings: warnings}
}

// fold adds the outcome of the record at index (0-based) to the result
func (r *ImportResult) fold(index int, o recordOutcome) {
	label := fmt.Sprintf("record %d", index+1)
	switch o.kind {
	case outcomeSuccess:
		r.SuccessCount++
	case outcomeSkipped:
		r.SkippedCount++
		r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("%s: skipped: %s", label, o.reason))
	case outcomeFailed:
		r.FailedCount++
		r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("%s: %s", label, errors.AsAppError(o.err).Message))
	}
	for _, w := range o.warnings {
		r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("%s: warning: %s", label, w))
	}
}

// formationIndex resolves formation names case-insensitively
type formationIndex struct {
	byName map[string]string
	names  []string
}

func newFormationIndex(formations []*formation.Formation) *formationIndex {
	idx := &formationIndex{byName: make(map[string]string, len(formations))}
	for _, f := range formations {
		key := formation.NormalizeName(f.Name)
		if _, dup := idx.byName[key]; dup {
			continue
		}
		idx.byName[key] = f.ID
		idx.names = append(idx.names, f.Name)
	}
	return idx
}

// resolve returns the ids of the known names and a warning per unknown one
func (idx *formationIndex) resolve(names []string) ([]string, []string) {
	var ids, warnings []string
	for _, name := range names {
		if id, ok := idx.byName[formation.NormalizeName(name)]; ok {
			ids = append(ids, id)
			continue
		}
		msg := fmt.Sprintf("formation %q not found", name)
		if suggestion := idx.suggest(name); suggestion != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
		warnings = append(warnings, msg)
	}
	return ids, warnings
}

func (idx *formationIndex) suggest(name string) string {
	target := formation.NormalizeName(name)
	best, bestDist := "", maxSuggestionDistance+1
	for _, candidate := range idx.names {
		d := levenshtein.ComputeDistance(target, formation.NormalizeName(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Importer provisions contacts and student logins from tabular records
type Importer struct {
	contacts    Repository
	formations  formation.Repository
	provisioner auth.Provisioner
	invalidator events.Invalidator
	logger      *slog.Logger
	now         func() time.Time
	newPassword func() (string, error)
}

// NewImporter creates a new contact importer
func NewImporter(contacts Repository, formations formation.Repository, provisioner auth.Provisioner, invalidator events.Invalidator, logger *slog.Logger) *Importer {
	return &Importer{
		contacts:    contacts,
		formations:  formations,
		provisioner: provisioner,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
		newPassword: utils.GenerateTemporaryPassword,
	}
}

// batch is the state shared by the records of one import
type batch struct {
	mapping     FieldMapping
	cfg         StudentConfig
	formations  *formationIndex
	provisioned map[string]bool // normalized emails given an identity in this batch
}

// ImportContacts imports every record independently: a failed record never
// aborts or rolls back the others. An error is returned only when the batch
// cannot start.
func (i *Importer) ImportContacts(ctx context.Context, records []Record, mapping FieldMapping, cfg StudentConfig) (*ImportResult, error) {
	b := &batch{
		mapping:     mapping,
		cfg:         cfg,
		formations:  newFormationIndex(nil),
		provisioned: make(map[string]bool),
	}

	if cfg.GrantAccess {
		formations, err := i.formations.ListFormations(ctx)
		if err != nil {
			return nil, err
		}
		b.formations = newFormationIndex(formations)
	}

	result := &ImportResult{Diagnostics: []string{}}
	created := false
	for n, record := range records {
		outcome, wrote := i.importRecord(ctx, b, record)
		created = created || wrote
		if outcome.kind == outcomeFailed {
			i.logger.WarnContext(ctx, "contact import record failed", "record", n+1, "error", outcome.err)
		}
		result.fold(n, outcome)
	}

	i.logger.InfoContext(ctx, "contact import finished",
		"records", len(records),
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount)

	if created {
		events.Notify(ctx, i.invalidator, i.logger, events.ViewContacts)
	}
	return result, nil
}

// importRecord runs one record to completion. It also reports whether a
// contact document was written, which stays true when a later step fails.
func (i *Importer) importRecord(ctx context.Context, b *batch, record Record) (recordOutcome, bool) {
	name := b.mapping.Value(record, FieldName)
	phone := b.mapping.Value(record, FieldPhone)
	email := b.mapping.Value(record, FieldEmail)

	if isBlank(record) {
		return skipped("empty record"), false
	}
	if name == "" {
		return failed(errors.NewValidationError("name is required"), nil), false
	}
	if phone == "" {
		return failed(errors.NewValidationError("phone is required"), nil), false
	}
	if email != "" {
		if err := utils.ValidateEmail(email); err != nil {
			return failed(errors.NewValidationError(fmt.Sprintf("invalid email %q", email)), nil), false
		}
	}

	student := b.cfg.GrantAccess && studentFlags[strings.ToLower(b.mapping.Value(record, FieldStudent))]
	if student {
		if email == "" {
			return failed(errors.NewValidationError("email is required to grant student access"), nil), false
		}
		if err := i.checkDuplicate(ctx, b, email); err != nil {
			return failed(err, nil), false
		}
	}

	contact := &Contact{
		ID:        ulid.Make().String(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Company:   b.mapping.Value(record, FieldCompany),
		Tags:      SplitValues(b.mapping.Value(record, FieldTags)),
		CreatedAt: i.now().UTC(),
	}
	if err := i.contacts.CreateContact(ctx, contact); err != nil {
		return failed(err, nil), false
	}
	if !student {
		return succeeded(nil), true
	}

	// the contact is kept when any step below fails
	warnings, err := i.provisionStudent(ctx, b, record, contact)
	if err != nil {
		return failed(err, warnings), true
	}
	return succeeded(warnings), true
}

func (i *Importer) provisionStudent(ctx context.Context, b *batch, record Record, contact *Contact) ([]string, error) {
	// re-validated right before identity creation
	if err := i.checkDuplicate(ctx, b, contact.Email); err != nil {
		return nil, err
	}

	password, err := i.newPassword()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate temporary password", err)
	}

	identity, err := i.provisioner.CreateIdentity(ctx, contact.Email, contact.Name, password)
	if err != nil {
		switch {
		case stderrors.Is(err, auth.ErrEmailInUse):
			return nil, errors.NewDuplicateRecordError(fmt.Sprintf("a login already exists for %s", contact.Email))
		case stderrors.Is(err, auth.ErrWeakPassword):
			return nil, errors.NewExternalServiceError("temporary password rejected by identity service", err)
		default:
			return nil, errors.NewExternalServiceError("failed to create student login", err)
		}
	}
	b.provisioned[NormalizeEmail(contact.Email)] = true

	ids, warnings := b.formations.resolve(SplitValues(b.mapping.Value(record, FieldFormations)))
	grants := make([]FormationAccess, 0, len(ids))
	for _, id := range ids {
		grant := FormationAccess{FormationID: id}
		if b.cfg.ExpiresAt != nil {
			expires := *b.cfg.ExpiresAt
			grant.ExpiresAt = &expires
		}
		grants = append(grants, grant)
	}

	access := &StudentAccess{UserID: identity.UserID, GrantedAt: i.now().UTC()}
	if err := i.contacts.GrantStudentAccess(ctx, contact.ID, access, grants); err != nil {
		return warnings, err
	}
	contact.StudentAccess = access
	contact.FormationAccess = grants
	return warnings, nil
}

func (i *Importer) checkDuplicate(ctx context.Context, b *batch, email string) error {
	key := NormalizeEmail(email)
	if b.provisioned[key] {
		return errors.NewDuplicateRecordError(fmt.Sprintf("student %s appears more than once in this import", email))
	}
	existing, err := i.contacts.FindStudentByEmail(ctx, key)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.NewDuplicateRecordError(fmt.Sprintf("student %s already exists", email)).
			WithDetail("contactId", existing.ID)
	}
	return nil
}

func isBlank(record Record) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
