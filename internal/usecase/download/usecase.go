package download

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/audit"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/document"
	domainDL "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/download"
	domainOTP "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
	otpengine "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/otp"
	"github.com/yashturmbekar/PMCRMS-sub005/pkg/id"
)

// ErrUnknownArtifact marks a request for an artifact class that does not exist.
var ErrUnknownArtifact = errors.New("unknown artifact kind")

// Usecase lets anonymous applicants retrieve generated documents: an OTP to
// the email on file, exchanged for a time-boxed opaque token, redeemed per
// artifact until the token expires.
type Usecase struct {
	tx       uow.UnitOfWork
	otp      *otpengine.Engine
	tokens   domainDL.TokenStore
	docs     document.Store
	recorder audit.Recorder
	log      *zap.Logger

	ttl time.Duration
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, engine *otpengine.Engine, tokens domainDL.TokenStore, docs document.Store, recorder audit.Recorder, log *zap.Logger, ttl time.Duration) *Usecase {
	return &Usecase{
		tx:       tx,
		otp:      engine,
		tokens:   tokens,
		docs:     docs,
		recorder: recorder,
		log:      log,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock injects a deterministic time source.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// RequestAccess dispatches a document-access OTP when the email matches the
// one on file. A wrong email and an unknown application number fail the same
// way, and no challenge is created for either.
func (u *Usecase) RequestAccess(ctx context.Context, applicationNumber, email string) (*otpengine.ChallengeDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var recipient string
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		app, err := r.Applications.GetByNumber(ctx, applicationNumber)
		if err != nil || app.ApplicantEmail != email {
			return application.ErrNotFound
		}
		recipient = app.ApplicantEmail
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.otp.Issue(ctx, otpengine.IssueInput{
		Identifier: applicationNumber,
		Purpose:    domainOTP.PurposeDocumentAccess,
		Recipient:  recipient,
		Subject:    "Document access code",
		Body:       "Your document access code for application " + applicationNumber + " is %s.",
	})
}

type TokenDTO struct {
	Token         string    `json:"token"`
	ApplicantName string    `json:"applicant_name"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// VerifyOTP consumes the access challenge and mints a download token scoped
// to the application.
func (u *Usecase) VerifyOTP(ctx context.Context, applicationNumber, code string) (*TokenDTO, error) {
	var applicantName string
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		app, err := r.Applications.GetByNumber(ctx, applicationNumber)
		if err != nil {
			return application.ErrNotFound
		}
		applicantName = app.ApplicantName
		return u.otp.VerifyWith(ctx, r.Challenges, applicationNumber, domainOTP.PurposeDocumentAccess, code)
	})
	if err != nil {
		return nil, err
	}

	now := u.now()
	tok := &domainDL.Token{
		Token:             id.NewToken(),
		ApplicationNumber: applicationNumber,
		ApplicantName:     applicantName,
		IssuedAt:          now,
		ExpiresAt:         now.Add(u.ttl),
	}
	// retained past expiry so a late redemption reports Expired, not NotFound
	if err := u.tokens.Put(ctx, tok, 2*u.ttl); err != nil {
		return nil, err
	}
	return &TokenDTO{Token: tok.Token, ApplicantName: applicantName, ExpiresAt: tok.ExpiresAt}, nil
}

type Artifact struct {
	Data     []byte
	Filename string
}

// GetArtifact redeems a token for one artifact kind. Tokens serve every kind
// until expiry; each redemption is audit-logged with the requester's address.
func (u *Usecase) GetArtifact(ctx context.Context, token, kindName, ipAddress, userAgent string) (*Artifact, error) {
	kind, ok := domainDL.KindByName(kindName)
	if !ok {
		return nil, ErrUnknownArtifact
	}

	tok, err := u.tokens.Get(ctx, token)
	if err != nil {
		return nil, domainDL.ErrNotFound
	}
	if !tok.Live(u.now()) {
		return nil, domainDL.ErrExpired
	}

	data, err := u.docs.Get(ctx, document.Key(tok.ApplicationNumber, kind))
	if err != nil {
		// fails closed when the artifact has not been generated yet
		return nil, err
	}

	access := &audit.DownloadAccess{
		RecordID:          uuid.NewString(),
		ApplicationNumber: tok.ApplicationNumber,
		Artifact:          string(kind),
		IPAddress:         ipAddress,
		UserAgent:         userAgent,
	}
	if err := u.recorder.Record(ctx, access); err != nil {
		u.log.Warn("download audit write failed",
			zap.String("application", tok.ApplicationNumber),
			zap.Error(err),
		)
	}
	u.log.Info("artifact downloaded",
		zap.String("application", tok.ApplicationNumber),
		zap.String("kind", string(kind)),
		zap.String("ip", ipAddress),
		zap.String("user_agent", userAgent),
	)

	return &Artifact{Data: data, Filename: document.Filename(tok.ApplicationNumber, kind)}, nil
}
