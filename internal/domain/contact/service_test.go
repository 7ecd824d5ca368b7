package contact

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/events"
)

func TestService_CreateContact(t *testing.T) {
	newService := func() (*Service, *testContactRepository, *recordingInvalidator) {
		repo := newTestContactRepository()
		inv := &recordingInvalidator{}
		return NewService(repo, inv, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, inv
	}

	t.Run("trims and de-duplicates tags", func(t *testing.T) {
		// Setup
		svc, repo, inv := newService()

		// Act
		created, err := svc.CreateContact(context.Background(), &CreateContactRequest{
			Name:  "  Ana Souza ",
			Phone: "11999990000",
			Email: "ana@example.com",
			Tags:  []string{"Lead", "lead", " vip "},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Ana Souza", created.Name)
		assert.Equal(t, []string{"Lead", "vip"}, created.Tags)
		assert.Nil(t, created.StudentAccess)
		assert.Len(t, repo.contacts, 1)
		assert.Equal(t, []events.View{events.ViewContacts}, inv.views)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			req  CreateContactRequest
		}{
			{"missing name", CreateContactRequest{Phone: "1"}},
			{"missing phone", CreateContactRequest{Name: "Ana"}},
			{"bad email", CreateContactRequest{Name: "Ana", Phone: "1", Email: "not-an-email"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Setup
				svc, repo, _ := newService()

				// Act
				_, err := svc.CreateContact(context.Background(), &tt.req)

				// Assert
				assert.True(t, errors.HasCode(err, errors.CodeValidation))
				assert.Empty(t, repo.contacts)
			})
		}
	})

	t.Run("get missing contact", func(t *testing.T) {
		// Setup
		svc, _, _ := newService()

		// Act
		_, err := svc.GetContact(context.Background(), "nope")

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeNotFound))
	})
}
