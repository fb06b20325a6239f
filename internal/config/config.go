package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for costs.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	DBUser     string // database username
	DBPass     string // database password (optional)
	DBHost     string // database host address
	DBPort     string // database port number
	DBName     string // database name
	JWTSecret  string // secret used to sign JWTs; absence aborts startup
	BcryptCost int    // bcrypt cost for password hashing

	TicketmasterKey string // Ticketmaster Discovery API key

	FrontendURL string // base URL used in email links

	PostmarkServerToken  string // Postmark server token (empty -> dev sender)
	PostmarkAccountToken string // Postmark account token
	SenderEmail          string // "from" address for outgoing mail
	EmailOutDir          string // directory the dev sender writes to
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. The JWT secret is a
// startup precondition: the service must never come up able to issue or
// accept unsigned identity.
func Load() Config {
	return Config{
		Env:        getenv("APP_ENV", "dev"),
		Port:       getenv("APP_PORT", "4000"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"), // empty allowed
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		JWTSecret:  must("JWT_SECRET"),
		BcryptCost: atoiDefault(getenv("BCRYPT_COST", "12"), 12),

		TicketmasterKey: must("TICKETMASTER_API_KEY"),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:8080"),

		PostmarkServerToken:  os.Getenv("POSTMARK_SERVER_TOKEN"),
		PostmarkAccountToken: os.Getenv("POSTMARK_ACCOUNT_TOKEN"),
		SenderEmail:          getenv("EMAIL_FROM", "no-reply@eventflow.app"),
		EmailOutDir:          getenv("EMAIL_OUT_DIR", "emails"),
	}
}

// getenv returns the value of an environment variable or a default when it
// is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
