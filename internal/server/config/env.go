package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// loadDotenv loads the first .env file found next to the binary or one or
// two directories up. Missing files are not an error; explicit environment
// variables always win because Load never overwrites existing ones.
func loadDotenv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// parseEnv overlays Config fields from environment variables. Empty or
// unset variables leave the current value untouched.
func parseEnv(config *Config) {
	loadDotenv()

	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&config.EndpointAddr, "ADDRESS")
	set(&config.DatabaseDSN, "DATABASE_DSN")
	set(&config.SecretKey, "SECRET_KEY")
	set(&config.CORSOrigin, "CORS_ORIGIN")
	set(&config.S3RootUser, "S3_ROOT_USER")
	set(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	set(&config.S3Bucket, "S3_BUCKET")
	set(&config.S3Region, "S3_REGION")
	set(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
}
