package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"

	"github.com/okheya/food-rescue/internal/utils"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Database settings are
// optional: when DB_HOST is empty the service runs memory-only and
// ledger state lives only for the session, the way the original
// client kept everything in browser storage.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	JWTSecret         string // secret used to sign session tokens
	SessionTTLMin     int    // session token time-to-live in minutes
	AdminPasscodeHash string // bcrypt hash of the admin passcode (empty disables admin login)
	BcryptCost        int    // bcrypt cost used when hashing a new admin passcode
	DBUser            string // database username (optional)
	DBPass            string // database password (optional)
	DBHost            string // database host; empty means memory-only mode
	DBPort            string // database port
	DBName            string // database name
}

// Load reads configuration from environment variables and returns a
// Config.  JWT_SECRET is required and missing it halts the process;
// everything else has a sensible default or is optional.
func Load() Config {
	cost := envInt("BCRYPT_COST", 10)
	return Config{
		Env:               getenv("APP_ENV", "dev"),
		Port:              getenv("APP_PORT", "8080"),
		JWTSecret:         must("JWT_SECRET"),
		SessionTTLMin:     envInt("SESSION_TTL_MIN", 240),
		AdminPasscodeHash: adminPasscodeHash(cost),
		BcryptCost:        cost,
		DBUser:            os.Getenv("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            getenv("DB_PORT", "3306"),
		DBName:            getenv("DB_NAME", "food_rescue"),
	}
}

// DBConfigured reports whether enough database settings are present to
// open a connection.
func (c Config) DBConfigured() bool {
	return c.DBHost != "" && c.DBUser != ""
}

// adminPasscodeHash resolves the admin passcode hash.  Deployments
// either provide a precomputed bcrypt hash via ADMIN_PASSCODE_HASH or
// a plaintext ADMIN_PASSCODE that is hashed at startup with the
// configured cost.  With neither set admin login stays disabled.
func adminPasscodeHash(cost int) string {
	if h := os.Getenv("ADMIN_PASSCODE_HASH"); h != "" {
		return h
	}
	plain := os.Getenv("ADMIN_PASSCODE")
	if plain == "" {
		return ""
	}
	h, err := utils.HashPassword(plain, cost)
	if err != nil {
		log.Fatalf("hash admin passcode: %v", err)
	}
	return h
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

// getenv returns the value of key, or def when the variable is unset
// or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}
