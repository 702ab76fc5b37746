package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/auth"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/workflow"
)

const callerKey = "caller"

// OfficerAuth validates the bearer token and stores an explicit Caller in the
// echo context. Handlers pass that Caller into every usecase call; nothing
// below the HTTP layer reads identity from ambient state.
type OfficerAuth struct {
	secret []byte
	log    *zap.Logger
	now    func() time.Time
}

func NewOfficerAuth(secret string, log *zap.Logger) *OfficerAuth {
	return &OfficerAuth{
		secret: []byte(secret),
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock injects a deterministic time source for token validation.
func (m *OfficerAuth) WithClock(now func() time.Time) *OfficerAuth {
	m.now = now
	return m
}

func (m *OfficerAuth) Handle() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "malformed authorization header"})
			}

			claims, err := auth.ParseToken(parts[1], m.secret, m.now)
			if err != nil {
				m.log.Info("auth rejected",
					zap.String("ip", c.RealIP()),
					zap.String("path", c.Request().URL.Path),
				)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}

			c.Set(callerKey, workflow.Caller{
				OfficerID: claims.OfficerID,
				Role:      application.Role(claims.Role),
				Positions: claims.Positions,
			})
			return next(c)
		}
	}
}

// CallerFrom returns the authenticated Caller placed by OfficerAuth.
func CallerFrom(c echo.Context) (workflow.Caller, bool) {
	caller, ok := c.Get(callerKey).(workflow.Caller)
	return caller, ok
}
