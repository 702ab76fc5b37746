package document

import (
	"context"
	"errors"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/download"
)

// ErrNotGenerated means the requested artifact has not been rendered yet.
var ErrNotGenerated = errors.New("artifact not generated")

// Renderer produces the bytes of one artifact kind for a fully processed
// application. Rendering internals (layout, signatures, QR codes) are not
// part of this service.
type Renderer interface {
	Render(ctx context.Context, app *application.Application, kind download.ArtifactKind) ([]byte, error)
}

// Store is the binary object store for generated artifacts.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns ErrNotGenerated when no object exists under key.
	Get(ctx context.Context, key string) ([]byte, error)
}

// Key is the canonical object key for an application's artifact.
func Key(applicationNumber string, kind download.ArtifactKind) string {
	return applicationNumber + "/" + string(kind) + ".pdf"
}

// Filename is the name a downloaded artifact is served under.
func Filename(applicationNumber string, kind download.ArtifactKind) string {
	return applicationNumber + "-" + string(kind) + ".pdf"
}
