package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file...]", ingestCmd.Use)
}

func TestIngestCmd_RequiresFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "--tenant", "t1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestIngestCmd_IndexesFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := ingestService.(*mockIngestService)
	path := writeTempFile(t, "contrat.txt", "Le contrat de travail prévoit un préavis.")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "-t", "cabinet-martin", "-c", "case-1", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, mock.lastRaw)
	assert.Equal(t, "cabinet-martin", mock.lastRaw.TenantID)
	assert.Equal(t, "case-1", mock.lastRaw.CaseID)
	assert.Equal(t, "text/plain", mock.lastRaw.MIMEType)
	assert.Equal(t, path, mock.lastRaw.URI)
	assert.Contains(t, buf.String(), "Indexed "+path)
	assert.Contains(t, buf.String(), "Chunks:   3")
}

func TestIngestCmd_IDWithMultipleFilesFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	pathA := writeTempFile(t, "a.txt", "a")
	pathB := writeTempFile(t, "b.txt", "b")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "-t", "t1", "--id", "doc-1", pathA, pathB})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestDocID = ""
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id cannot be used with multiple files")
}

func TestIngestCmd_MissingFileFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "-t", "t1", "/nonexistent/fichier.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading /nonexistent/fichier.txt")
}

func TestRemoveCmd_RemovesDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := ingestService.(*mockIngestService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"remove", "doc-42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"doc-42"}, mock.removed)
	assert.Contains(t, buf.String(), "Removed document doc-42")
}

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		override string
		expected string
	}{
		{"override wins", "a.pdf", "application/json", "application/json"},
		{"pdf extension", "contrat.pdf", "", "application/pdf"},
		{"unknown extension", "fichier.zzz", "", "text/plain"},
		{"no extension", "NOTES", "", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectMIME(tt.path, tt.override))
		})
	}
}

func TestDetectMIME_StripsParameters(t *testing.T) {
	// Extensions registered with a charset parameter resolve to the
	// bare media type.
	mimeType := detectMIME("notes.txt", "")
	assert.Equal(t, "text/plain", mimeType)
}
