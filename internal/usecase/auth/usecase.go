package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	domainOTP "github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
	otpengine "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/otp"
)

var ErrUnauthorized = errors.New("unauthorized")

// Claims carried by officer bearer tokens.
type Claims struct {
	OfficerID string   `json:"officer_id"`
	Role      string   `json:"role"`
	Positions []string `json:"positions,omitempty"`
	jwt.RegisteredClaims
}

// Usecase implements passwordless officer login: an OTP to the officer's
// email, exchanged for a short-lived bearer token.
type Usecase struct {
	officers application.OfficerRepository
	otp      *otpengine.Engine
	log      *zap.Logger

	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewUsecase(officers application.OfficerRepository, engine *otpengine.Engine, log *zap.Logger, secret string, expiry time.Duration) *Usecase {
	return &Usecase{
		officers: officers,
		otp:      engine,
		log:      log,
		secret:   []byte(secret),
		expiry:   expiry,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock injects a deterministic time source.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

type LoginResult struct {
	Token     string           `json:"token"`
	OfficerID string           `json:"officer_id"`
	Name      string           `json:"name"`
	Role      application.Role `json:"role"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// RequestLogin issues a login OTP when the email belongs to a registered
// officer. Unknown emails fail with the same outward error as a later wrong
// code would, so the endpoint is not an officer-directory oracle.
func (u *Usecase) RequestLogin(ctx context.Context, email string) (*otpengine.ChallengeDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := u.officers.GetByEmail(ctx, email); err != nil {
		return nil, ErrUnauthorized
	}
	return u.otp.Issue(ctx, otpengine.IssueInput{
		Identifier: email,
		Purpose:    domainOTP.PurposeLogin,
		Subject:    "Login verification code",
	})
}

// VerifyLogin exchanges a correct login OTP for a signed bearer token.
func (u *Usecase) VerifyLogin(ctx context.Context, email, code string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	officer, err := u.officers.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if err := u.otp.Verify(ctx, email, domainOTP.PurposeLogin, code); err != nil {
		return nil, err
	}

	now := u.now()
	expires := now.Add(u.expiry)
	claims := Claims{
		OfficerID: officer.OfficerID,
		Role:      string(officer.Role),
		Positions: splitPositions(officer.Positions),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   officer.OfficerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, err
	}

	u.log.Info("officer logged in",
		zap.String("officer", officer.OfficerID),
		zap.String("role", string(officer.Role)),
	)
	return &LoginResult{
		Token:     signed,
		OfficerID: officer.OfficerID,
		Name:      officer.Name,
		Role:      officer.Role,
		ExpiresAt: expires,
	}, nil
}

// ParseToken validates a bearer token and returns its claims.
func ParseToken(raw string, secret []byte, now func() time.Time) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return secret, nil
	}, jwt.WithTimeFunc(now), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func splitPositions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
