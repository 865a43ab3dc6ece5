package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment. It is built
// once in main and passed to the components that use it - no ambient lookups.
type Config struct {
	BindAddress string
	TLSDomains  string // e.g. "example.com,example2.com"
	BackendURL  string // public base URL of this server, used for OAuth redirects and disk file links
	FrontendURL string // allowed CORS origin, login redirect target

	MysqlDSN   string // MySQL is used if this is set
	SqliteFile string // SQLite is used if MysqlDSN is not configured and this is set

	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string

	DefaultBucketDir string // used for creating the initial disk bucket
	DebugMode        bool
}

// Load reads the optional .env file and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment only")
	}
	c := &Config{
		BindAddress:      "0.0.0.0:8080",
		BackendURL:       "http://localhost:8080",
		FrontendURL:      "http://localhost:3000",
		SqliteFile:       "albums.db",
		DefaultBucketDir: "./data",
		DebugMode:        true,
	}
	readEnvString("BIND_ADDRESS", &c.BindAddress)
	readEnvString("TLS_DOMAINS", &c.TLSDomains)
	readEnvString("BACKEND_URL", &c.BackendURL)
	readEnvString("FRONTEND_URL", &c.FrontendURL)
	readEnvString("MYSQL_DSN", &c.MysqlDSN)
	readEnvString("SQLITE_FILE", &c.SqliteFile)
	readEnvString("JWT_SECRET", &c.JWTSecret)
	readEnvString("GOOGLE_CLIENT_ID", &c.GoogleClientID)
	readEnvString("GOOGLE_CLIENT_SECRET", &c.GoogleClientSecret)
	readEnvString("DEFAULT_BUCKET_DIR", &c.DefaultBucketDir)
	readEnvBool("DEBUG_MODE", &c.DebugMode)
	if c.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be configured")
	}
	return c
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}
