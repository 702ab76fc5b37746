package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/adapter/repository/redisstore"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/audit"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/document"
	domainDL "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/download"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/testutil/challengemock"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/testutil/docmock"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/testutil/notifymock"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/testutil/uowmock"
	dlusecase "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/download"
	otpengine "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/otp"
)

const (
	dlTestToken  = "deadbeefdeadbeefdeadbeefdeadbeef"
	dlTestAppNum = "PMC-2026-483920"
)

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, *audit.DownloadAccess) error { return nil }

// setupDownloadEcho serves the public download route over a real redis-backed
// token store with one valid token already minted.
func setupDownloadEcho(t *testing.T, docs document.Store) *echo.Echo {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	now := time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC)
	tokens := redisstore.NewTokenStore(rdb)
	if err := tokens.Put(context.Background(), &domainDL.Token{
		Token:             dlTestToken,
		ApplicationNumber: dlTestAppNum,
		ApplicantName:     "A Applicant",
		IssuedAt:          now,
		ExpiresAt:         now.Add(10 * time.Minute),
	}, 20*time.Minute); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	challenges := challengemock.New()
	tx := uowmock.Passthrough(uow.Repos{Challenges: challenges}, func(string) (*application.Application, error) {
		return nil, application.ErrNotFound
	})
	engine := otpengine.NewEngine(challenges, tx, &notifymock.Sender{}, zap.NewNop(), 10*time.Minute)
	uc := dlusecase.NewUsecase(tx, engine, tokens, docs, noopRecorder{}, zap.NewNop(), 10*time.Minute).
		WithClock(func() time.Time { return now })

	e := echo.New()
	e.Validator = NewValidator()
	e.GET("/documents/:token/:kind", NewDownloadHandler(uc).GetArtifact)
	return e
}

func TestGetArtifact_ServesGeneratedDocument(t *testing.T) {
	docs := docmock.NewStore()
	if err := docs.Put(context.Background(), document.Key(dlTestAppNum, domainDL.ArtifactCertificate), []byte("%PDF-1.4 demo")); err != nil {
		t.Fatal(err)
	}
	e := setupDownloadEcho(t, docs)

	req := httptest.NewRequest(http.MethodGet, "/documents/"+dlTestToken+"/certificate", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "%PDF-1.4 demo" {
		t.Fatalf("unexpected payload: %q", got)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, dlTestAppNum+"-certificate.pdf") {
		t.Fatalf("content disposition: %q", cd)
	}
}

func TestGetArtifact_NotGeneratedYet(t *testing.T) {
	// valid token, but the pipeline has not rendered anything yet
	e := setupDownloadEcho(t, docmock.NewStore())

	req := httptest.NewRequest(http.MethodGet, "/documents/"+dlTestToken+"/certificate", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
	}
	if body := rec.Body.String(); !strings.Contains(body, "not been generated yet") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestGetArtifact_UnknownKind(t *testing.T) {
	e := setupDownloadEcho(t, docmock.NewStore())

	req := httptest.NewRequest(http.MethodGet, "/documents/"+dlTestToken+"/blueprint", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
}
