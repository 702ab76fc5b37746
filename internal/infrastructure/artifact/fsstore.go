package artifact

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/document"
)

// FSStore keeps generated artifacts on local disk under a base directory.
// Object keys map to file paths; a missing file is "not generated".
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) path(key string) string {
	return filepath.Join(s.base, filepath.FromSlash(key))
}

func (s *FSStore) Put(ctx context.Context, key string, data []byte) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *FSStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, document.ErrNotGenerated
	}
	return data, err
}
