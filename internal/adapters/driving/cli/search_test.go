package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Long(t *testing.T) {
	assert.Contains(t, searchCmd.Long, "hybrid search")
	assert.Contains(t, searchCmd.Long, "BM25")
	assert.Contains(t, searchCmd.Long, "vector")
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--tenant", "t1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--tenant", "t1", "préavis"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Results:")
	assert.Contains(t, buf.String(), "doc-1")
	assert.Contains(t, buf.String(), "Case: case-1")
	assert.Contains(t, buf.String(), "Page: 2")
}

func TestSearchCmd_ForwardsTenantAndLimit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := searchService.(*mockSearchService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "-t", "cabinet-martin", "-c", "case-9", "-n", "5", "bail commercial"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "cabinet-martin", mock.lastOpts.TenantID)
	assert.Equal(t, "case-9", mock.lastOpts.CaseID)
	assert.Equal(t, 5, mock.lastOpts.TopK)
}

func TestSearchCmd_VectorMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "-t", "t1", "-m", "vector_only", "préavis"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchMode = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Results:")
}

func TestSearchCmd_LegalMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := legalSearchService.(*mockLegalSearchService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "-t", "t1", "-m", "legal", "préavis"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchMode = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "t1", mock.lastOpts.TenantID)
}

func TestSearchCmd_UnknownModeFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "-t", "t1", "-m", "telepathy", "préavis"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchMode = ""
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown search mode")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "-t", "t1", "--json", "préavis"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"ChunkID"`)
	assert.Contains(t, buf.String(), "doc-1")
}

func TestSearchCmd_FilterFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := searchService.(*mockSearchService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "-t", "t1", "-f", "document_type=contrat", "bail"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchFilters = nil
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "contrat", mock.lastOpts.Filters["document_type"])
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "empty",
			pairs: nil,
			want:  nil,
		},
		{
			name:  "single pair",
			pairs: []string{"document_type=contrat"},
			want:  map[string]string{"document_type": "contrat"},
		},
		{
			name:  "value with equals sign",
			pairs: []string{"clause=a=b"},
			want:  map[string]string{"clause": "a=b"},
		},
		{
			name:    "missing separator",
			pairs:   []string{"contrat"},
			wantErr: true,
		},
		{
			name:    "empty key",
			pairs:   []string{"=contrat"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilters(tt.pairs)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "court", snippet("court", 10))
	assert.Equal(t, "un deux", snippet("un\n  deux", 10))

	long := snippet("une phrase vraiment très longue", 10)
	assert.Equal(t, "une phrase…", long)
}
