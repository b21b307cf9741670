package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses duration settings
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Identifiers and secrets stay strings; numeric
// knobs are parsed into the types the application uses them as.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	JWTSecret      string        // secret used to sign JWTs
	AccessTTLMin   int           // access token time-to-live in minutes
	RefreshTTLDays int           // refresh token time-to-live in days
	BcryptCost     int           // bcrypt cost for password hashing
	FXAPIURL       string        // base URL of the FX rate API
	FXAPIKey       string        // API key for the FX rate API
	FXAskSpread    float64       // flat decimal added to every fetched rate
	FXRateTTL      time.Duration // how long a resolved rate is cached
	MailEndpoint   string        // email widget send endpoint
	MailServiceID  string        // email widget service id
	MailTemplateID string        // email widget template id
	MailPublicKey  string        // email widget public key
	QuoteTTL       time.Duration // idle lifetime of a quote session
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  FX and mail settings
// default to harmless values so the catalog API can run without them in
// local development.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		FXAPIURL:       getenv("FX_API_URL", "https://api.freecurrencyapi.com/v1"),
		FXAPIKey:       os.Getenv("FX_API_KEY"),
		FXAskSpread:    envFloat("FX_ASK_SPREAD", 0.05),
		FXRateTTL:      parseDur(getenv("FX_RATE_TTL", "10m")),
		MailEndpoint:   getenv("MAIL_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		MailServiceID:  os.Getenv("MAIL_SERVICE_ID"),
		MailTemplateID: os.Getenv("MAIL_TEMPLATE_ID"),
		MailPublicKey:  os.Getenv("MAIL_PUBLIC_KEY"),
		QuoteTTL:       parseDur(getenv("QUOTE_SESSION_TTL", "30m")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
