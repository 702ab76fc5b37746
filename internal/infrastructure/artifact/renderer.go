package artifact

import (
	"context"
	"fmt"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/download"
)

// StubRenderer produces a minimal single-page PDF carrying the application
// number and artifact kind. The production renderer (layout, seals, QR
// verification codes) is a separate service behind the same interface.
type StubRenderer struct{}

func NewStubRenderer() *StubRenderer { return &StubRenderer{} }

func (StubRenderer) Render(ctx context.Context, app *application.Application, kind download.ArtifactKind) ([]byte, error) {
	text := fmt.Sprintf("%s / %s / %s", app.ApplicationNumber, app.ApplicantName, kind)
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

	var pdf string
	pdf += "%PDF-1.4\n"
	pdf += "1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n"
	pdf += "2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj\n"
	pdf += "3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj\n"
	pdf += fmt.Sprintf("4 0 obj << /Length %d >> stream\n%s\nendstream endobj\n", len(content), content)
	pdf += "5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj\n"
	pdf += "trailer << /Root 1 0 R >>\n%%EOF\n"
	return []byte(pdf), nil
}
