package normalisers

import (
	"context"
	"sort"
	"sync"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the highest-priority normaliser
// registered for their MIME type. Unknown MIME types fall through to
// the fallback normaliser (priority below 10) instead of erroring, so
// an upload with a missing or wrong content type still gets indexed as
// lossy plain text.
type Registry struct {
	mu       sync.RWMutex
	byMIME   map[string][]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string][]driven.Normaliser),
	}
}

// Register adds a normaliser to the registry. Normalisers with
// priority below 10 also become the fallback for unknown MIME types;
// when several qualify, the highest priority wins.
func (r *Registry) Register(normaliser driven.Normaliser) {
	if normaliser == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range normaliser.SupportedMIMETypes() {
		list := append(r.byMIME[mimeType], normaliser)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byMIME[mimeType] = list
	}

	if normaliser.Priority() < 10 {
		if r.fallback == nil || normaliser.Priority() > r.fallback.Priority() {
			r.fallback = normaliser
		}
	}
}

// Normalise transforms a raw document using the best matching
// normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	normaliser, err := r.normaliserFor(raw.MIMEType)
	if err != nil {
		return nil, err
	}
	return normaliser.Normalise(ctx, raw)
}

// SupportedMIMETypes returns all MIME types that can be normalised,
// sorted for stable output.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mimeTypes := make([]string, 0, len(r.byMIME))
	for mimeType := range r.byMIME {
		mimeTypes = append(mimeTypes, mimeType)
	}
	sort.Strings(mimeTypes)
	return mimeTypes
}

// normaliserFor resolves the normaliser for a MIME type, falling back
// for unknown types.
func (r *Registry) normaliserFor(mimeType string) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if list := r.byMIME[mimeType]; len(list) > 0 {
		return list[0], nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, domain.ErrUnsupportedType
}
