package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
)

func TestReadRecords(t *testing.T) {
	t.Run("header keyed rows", func(t *testing.T) {
		// Setup
		input := "\ufeffNome;Telefone;E-mail\nAna;1199;ana@example.com\nBruno;1188\n"

		// Act
		records, err := readRecords(strings.NewReader(input), ";")

		// Assert
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, contact.Record{"Nome": "Ana", "Telefone": "1199", "E-mail": "ana@example.com"}, records[0])
		assert.Equal(t, "", records[1]["E-mail"])
	})

	t.Run("empty file", func(t *testing.T) {
		// Act
		records, err := readRecords(strings.NewReader(""), ",")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("bad delimiter", func(t *testing.T) {
		// Act
		_, err := readRecords(strings.NewReader("a,b"), ",;")

		// Assert
		assert.Error(t, err)
	})
}

func TestParseMapping(t *testing.T) {
	t.Run("known fields", func(t *testing.T) {
		// Act
		mapping, err := parseMapping(map[string]string{"Name": "Nome", "formations": "Cursos"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, contact.FieldMapping{contact.FieldName: "Nome", contact.FieldFormations: "Cursos"}, mapping)
	})

	t.Run("unknown field", func(t *testing.T) {
		// Act
		_, err := parseMapping(map[string]string{"cpf": "CPF"})

		// Assert
		assert.ErrorContains(t, err, "cpf")
	})
}

func TestRootCmd_RequiresFile(t *testing.T) {
	// Setup
	root := newRootCmd(zap.NewNop())
	root.SetArgs([]string{"import-contacts"})
	root.SetOut(&bytes.Buffer{})

	// Act
	err := root.Execute()

	// Assert
	assert.ErrorContains(t, err, "file")
}
