package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
)

func TestError(t *testing.T) {
	t.Run("specific message for domain errors", func(t *testing.T) {
		// Act
		resp := Error(errors.NewInvalidStateError("debt is already negotiated"), "req-1")

		// Assert
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
		assert.Equal(t, errors.CodeInvalidState, body.Error)
		assert.Equal(t, "debt is already negotiated", body.ErrorDescription.Message)
		assert.Equal(t, "req-1", body.Metadata.RequestID)
	})

	t.Run("generic message for service failures", func(t *testing.T) {
		// Act
		resp := FromError(errors.NewExternalServiceError("failed to commit batch", stderrors.New("ProvisionedThroughputExceeded")), "req-2")

		// Assert
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.NotContains(t, resp.Body, "ProvisionedThroughputExceeded")
		assert.NotContains(t, resp.Body, "commit batch")
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		// Act
		resp := FromError(stderrors.New("nil pointer"), "")

		// Assert
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, resp.Body, errors.CodeInternal)
	})
}
