package pdf

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocatech/juricite/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	normaliser := New()
	mimeTypes := normaliser.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "application/pdf")
}

func TestPriority(t *testing.T) {
	normaliser := New()
	assert.Equal(t, 80, normaliser.Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	normaliser := New()

	result, err := normaliser.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_EmptyContent(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		TenantID: "tenant-1",
		URI:      "/dossiers/vide.pdf",
		MIMEType: "application/pdf",
		Content:  nil,
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestJoinPages_EmptyPageKeepsItsPosition(t *testing.T) {
	content := joinPages([]string{"page un", "", "page trois"})

	assert.Equal(t, "page un\f\fpage trois", content)

	split := strings.Split(content, "\f")
	require.Len(t, split, 3)
	assert.Equal(t, "page trois", split[2])
}

func TestJoinPages_SinglePageHasNoSeparator(t *testing.T) {
	assert.Equal(t, "page un", joinPages([]string{"page un"}))
}

func TestNormalise_MalformedPDF(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		TenantID: "tenant-1",
		URI:      "/dossiers/corrompu.pdf",
		MIMEType: "application/pdf",
		Content:  []byte("this is not a pdf"),
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "corrompu.pdf")
	assert.Nil(t, result)
}
