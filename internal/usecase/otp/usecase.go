package otp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/notify"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/uow"
	"github.com/yashturmbekar/PMCRMS-sub005/pkg/id"
)

// Engine generates, validates and consumes OTP challenges. One Engine serves
// every purpose (login, stage signature, document access); purposes never
// cross because challenges are keyed by (identifier, purpose).
type Engine struct {
	repo     domain.Repository
	tx       uow.UnitOfWork
	sender   notify.Sender
	log      *zap.Logger
	ttl      time.Duration
	echoCode bool

	now      func() time.Time
	codeFunc func() string
}

type Option func(*Engine)

// WithClock injects a deterministic time source. Expiry and lockout behavior
// is entirely relative to this clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCodeFunc injects the code generator.
func WithCodeFunc(fn func() string) Option {
	return func(e *Engine) { e.codeFunc = fn }
}

// WithDebugEcho makes Issue return the raw code in the DTO. Never enable in a
// production deployment.
func WithDebugEcho(on bool) Option {
	return func(e *Engine) { e.echoCode = on }
}

func NewEngine(repo domain.Repository, tx uow.UnitOfWork, sender notify.Sender, log *zap.Logger, ttl time.Duration, opts ...Option) *Engine {
	e := &Engine{
		repo:     repo,
		tx:       tx,
		sender:   sender,
		log:      log,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
		codeFunc: id.NewOTPCode,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Issue supersedes any prior active challenge for (identifier, purpose),
// persists a fresh one and dispatches the code. Dispatch failures are logged,
// not surfaced: the challenge stays valid and the caller may re-request.
func (e *Engine) Issue(ctx context.Context, in IssueInput) (*ChallengeDTO, error) {
	now := e.now()
	code := e.codeFunc()

	ch := &domain.Challenge{
		Identifier: in.Identifier,
		Purpose:    in.Purpose,
		Code:       code,
		ExpiresAt:  now.Add(e.ttl),
		Active:     true,
	}
	err := e.tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Challenges.DeactivateAll(ctx, in.Identifier, in.Purpose); err != nil {
			return err
		}
		return r.Challenges.Create(ctx, ch)
	})
	if err != nil {
		return nil, err
	}

	recipient := in.Recipient
	if recipient == "" {
		recipient = in.Identifier
	}
	subject := in.Subject
	if subject == "" {
		subject = "Your verification code"
	}
	body := in.Body
	if body == "" {
		body = fmt.Sprintf("Your one-time verification code is %%s. It expires in %s.", ttlWording(e.ttl))
	}
	if err := e.sender.Send(ctx, recipient, subject, fmt.Sprintf(body, code)); err != nil {
		e.log.Warn("otp dispatch failed",
			zap.String("identifier", in.Identifier),
			zap.String("purpose", string(in.Purpose)),
			zap.Error(err),
		)
	}

	dto := &ChallengeDTO{Identifier: in.Identifier, Purpose: in.Purpose, ExpiresAt: ch.ExpiresAt}
	if e.echoCode {
		dto.DebugCode = code
	}
	return dto, nil
}

// Now exposes the engine's clock so collaborators that sign and timestamp in
// the same transaction agree on the time.
func (e *Engine) Now() time.Time { return e.now() }

// Verify consumes a challenge on the engine's own repository. Callers that
// hold a transaction (sign-and-advance) use VerifyWith instead so that OTP
// consumption and the state transition commit or roll back together.
func (e *Engine) Verify(ctx context.Context, identifier string, purpose domain.Purpose, code string) error {
	return e.VerifyWith(ctx, e.repo, identifier, purpose, code)
}

// VerifyWith runs the compare-and-mutate sequence. On a match the challenge
// is consumed through the supplied repository, typically one bound to an
// open transaction, so the consumption shares the caller's commit or
// rollback. A mismatch is counted through the engine's own repository in a
// transaction of its own: the caller's transaction is about to roll back on
// the returned sentinel, and the attempt counter must survive that or the
// ceiling would never engage.
func (e *Engine) VerifyWith(ctx context.Context, repo domain.Repository, identifier string, purpose domain.Purpose, code string) error {
	now := e.now()

	ch, err := repo.GetActive(ctx, identifier, purpose, now)
	if err != nil {
		// missing, expired, used and deactivated all collapse here
		return domain.ErrNotFound
	}

	if subtle.ConstantTimeCompare([]byte(ch.Code), []byte(code)) != 1 {
		locked, err := e.repo.RegisterFailedAttempt(ctx, ch.ID, domain.MaxAttempts)
		if err != nil {
			return err
		}
		if locked {
			return domain.ErrLockedOut
		}
		return domain.ErrInvalidCode
	}

	return repo.Consume(ctx, ch.ID, now)
}

func ttlWording(ttl time.Duration) string {
	if m := int(ttl.Minutes()); m >= 1 {
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return fmt.Sprintf("%d seconds", int(ttl.Seconds()))
}
