package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vespaiach/ledger-api/internal/utils"
)

// Config holds all application configuration. It is constructed once at
// process start and passed by reference into every component that needs
// it; nothing reads the environment after LoadConfig returns.
type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	DBUrl            string

	// Optional TLS material; when both are set the server listens with TLS.
	TLSCertFile string
	TLSKeyFile  string

	SendGridAPIKey      string
	SendgridFromEmail   string
	SendgridSandboxMode bool

	// AuthorizedEmails is the sign-in allow-list. Empty means allow all.
	AuthorizedEmails []string

	// SigninKeyAvailableTime is how long a sign-in key stays redeemable
	// and blocks re-issuance for the same email.
	SigninKeyAvailableTime time.Duration
	// SigninTokenAvailableTime is the lifetime of an issued bearer token.
	SigninTokenAvailableTime time.Duration

	SigninJWTSecret    []byte
	SigninJWTAlgorithm jwt.SigningMethod

	EmailLimitPerIPPerHour    int
	EmailLimitPerEmailPerHour int
	GlobalEmailLimitPerHour   int
	RateLimitWindow           time.Duration
}

const (
	OrganizationName = "Ledger"

	DefaultSigninKeyAvailableMinutes   = 10
	DefaultSigninTokenAvailableMinutes = 60

	DefaultEmailLimitPerIPPerHour    = 50
	DefaultEmailLimitPerEmailPerHour = 5
	DefaultGlobalEmailLimitPerHour   = 2000
	DefaultRateLimitWindow           = 1 * time.Hour
)

// LoadConfig reads environment variables, applies defaults, and returns a
// *Config. Missing required settings are fatal.
func LoadConfig() *Config {
	appName := os.Getenv("APP_NAME")
	if appName == "" {
		appName = "ledger-api"
	}

	utils.Logger.Info("Loading config for app: ", appName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	sendGridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendGridAPIKey == "" {
		utils.Logger.Fatal("SENDGRID_API_KEY env var is missing")
	}
	sendgridFromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if sendgridFromEmail == "" {
		utils.Logger.Fatal("SENDGRID_FROM_EMAIL env var is missing")
	}

	jwtSecret := os.Getenv("SIGNIN_JWT_SECRET")
	if jwtSecret == "" {
		utils.Logger.Fatal("SIGNIN_JWT_SECRET env var is missing")
	}

	algName := os.Getenv("SIGNIN_JWT_ALGORITHM")
	if algName == "" {
		algName = "HS256"
	}
	alg := jwt.GetSigningMethod(algName)
	if alg == nil {
		utils.Logger.Fatalf("Unknown SIGNIN_JWT_ALGORITHM %q", algName)
	}
	if _, ok := alg.(*jwt.SigningMethodHMAC); !ok {
		utils.Logger.Fatalf("SIGNIN_JWT_ALGORITHM %q is not an HMAC method; tokens are signed with a shared secret", algName)
	}

	tlsCert := os.Getenv("TLS_CERT_FILE")
	tlsKey := os.Getenv("TLS_KEY_FILE")
	if (tlsCert == "") != (tlsKey == "") {
		utils.Logger.Fatal("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	var authorizedEmails []string
	for _, e := range strings.Split(os.Getenv("AUTHORIZED_EMAILS"), ",") {
		if e = strings.TrimSpace(e); e != "" {
			authorizedEmails = append(authorizedEmails, strings.ToLower(e))
		}
	}
	if len(authorizedEmails) > 0 {
		utils.Logger.Infof("Sign-in restricted to %d authorized email(s)", len(authorizedEmails))
	} else {
		utils.Logger.Info("AUTHORIZED_EMAILS empty; any well-formed address may sign in")
	}

	return &Config{
		OrganizationName:    OrganizationName,
		AppName:             appName,
		AppPort:             appPort,
		AppUrl:              appUrl,
		DBUrl:               dbUrl,
		TLSCertFile:         tlsCert,
		TLSKeyFile:          tlsKey,
		SendGridAPIKey:      sendGridAPIKey,
		SendgridFromEmail:   sendgridFromEmail,
		SendgridSandboxMode: envBool("SENDGRID_SANDBOX_MODE", false),
		AuthorizedEmails:    authorizedEmails,

		SigninKeyAvailableTime: time.Duration(
			envInt("SIGNIN_KEY_AVAILABLE_TIME", DefaultSigninKeyAvailableMinutes)) * time.Minute,
		SigninTokenAvailableTime: time.Duration(
			envInt("SIGNIN_TOKEN_AVAILABLE_TIME", DefaultSigninTokenAvailableMinutes)) * time.Minute,

		SigninJWTSecret:    []byte(jwtSecret),
		SigninJWTAlgorithm: alg,

		EmailLimitPerIPPerHour:    envInt("EMAIL_LIMIT_PER_IP_PER_HOUR", DefaultEmailLimitPerIPPerHour),
		EmailLimitPerEmailPerHour: envInt("EMAIL_LIMIT_PER_EMAIL_PER_HOUR", DefaultEmailLimitPerEmailPerHour),
		GlobalEmailLimitPerHour:   envInt("GLOBAL_EMAIL_LIMIT_PER_HOUR", DefaultGlobalEmailLimitPerHour),
		RateLimitWindow:           DefaultRateLimitWindow,
	}
}

// IsEmailAuthorized checks the allow-list; an empty list allows everyone.
func (c *Config) IsEmailAuthorized(email string) bool {
	if len(c.AuthorizedEmails) == 0 {
		return true
	}
	email = strings.ToLower(email)
	for _, allowed := range c.AuthorizedEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.Logger.Fatalf("%s must be an integer, got %q", name, v)
	}
	return n
}

func envBool(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Fatalf("%s must be a boolean, got %q", name, v)
	}
	return b
}
