package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitiesCmd_Use(t *testing.T) {
	assert.Equal(t, "entities [text]", entitiesCmd.Use)
}

func TestEntitiesCmd_ExtractsArticle(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"entities", "Selon l'article L.1234-1 du Code du travail, le préavis est dû."})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "article")
	assert.Contains(t, buf.String(), "L.1234-1")
}

func TestEntitiesCmd_NoReferences(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"entities", "Bonjour, comment allez-vous ?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No legal references found.")
}

func TestEntitiesCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"entities", "--json", "L'article 700 du Code de procédure civile s'applique."})
	defer func() {
		rootCmd.SetArgs(nil)
		entitiesJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Normalized"`)
}
