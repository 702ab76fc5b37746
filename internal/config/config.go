package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	// OTP engine. The attempt ceiling and expiry together bound brute force
	// at 3 guesses per 10^6 codes per challenge; weakening either requires
	// re-deriving that bound.
	OTPTTLSecs     int
	DownloadTTLSec int

	JWTSecret     string
	JWTExpiryMins int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	ArtifactDir string

	IdempTTLSecs int

	// DebugOTPEcho makes issue responses carry the raw code. Test/dev only.
	DebugOTPEcho bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "pmcrms"),
		MySQLUser: getenv("MYSQL_USER", "pmcrms"),
		MySQLPass: getenv("MYSQL_PASS", "pmcrms"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisPass: getenv("REDIS_PASS", ""),
		RedisDB:   getint("REDIS_DB", 0),

		OTPTTLSecs:     getint("OTP_TTL_SECONDS", 600),
		DownloadTTLSec: getint("DOWNLOAD_TOKEN_TTL_SECONDS", 600),

		JWTSecret:     getenv("JWT_SECRET", ""),
		JWTExpiryMins: getint("JWT_EXPIRY_MINUTES", 480),

		SMTPHost: getenv("SMTP_HOST", ""),
		SMTPPort: getint("SMTP_PORT", 587),
		SMTPUser: getenv("SMTP_USER", ""),
		SMTPPass: getenv("SMTP_PASS", ""),
		SMTPFrom: getenv("SMTP_FROM", "noreply@pmcrms.local"),

		ArtifactDir: getenv("ARTIFACT_DIR", "/var/lib/pmcrms/artifacts"),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),
	}
	c.DebugOTPEcho = os.Getenv("DEBUG_OTP_ECHO") == "true"
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.OTPTTLSecs <= 0 || c.DownloadTTLSec <= 0 {
		return errors.New("OTP and download token TTLs must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
