package docmock

import (
	"context"
	"sync"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/document"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/download"
)

var (
	_ document.Store    = (*Store)(nil)
	_ document.Renderer = (*Renderer)(nil)
)

// Store is an in-memory document.Store.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewStore() *Store {
	return &Store{objects: make(map[string][]byte)}
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[key] = cp
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, document.ErrNotGenerated
	}
	return data, nil
}

// Keys returns the stored object keys, for assertions.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

// Renderer is a function-backed document.Renderer. The default renders a
// deterministic placeholder so tests can assert on content.
type Renderer struct {
	RenderFn func(ctx context.Context, app *application.Application, kind download.ArtifactKind) ([]byte, error)
}

func (r *Renderer) Render(ctx context.Context, app *application.Application, kind download.ArtifactKind) ([]byte, error) {
	if r.RenderFn != nil {
		return r.RenderFn(ctx, app, kind)
	}
	return []byte("pdf:" + app.ApplicationNumber + ":" + string(kind)), nil
}
