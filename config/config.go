package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// AuthMode selects how the bearer-token authenticator is mounted.
//
// PerRouteRequiredAuth is the intended contract: the authenticator guards the
// notes routes, a valid claim is mandatory, and every CRUD operation is scoped
// to the claim's owner. GlobalOptionalAuth reproduces the legacy deployment:
// the authenticator runs on every route but tolerates anonymous requests, and
// note operations apply no ownership filtering at all. The two modes are
// materially different contracts and are never mixed at runtime.
type AuthMode string

const (
	GlobalOptionalAuth   AuthMode = "global-optional"
	PerRouteRequiredAuth AuthMode = "per-route"
)

// Decode implements envdecode.Decoder so AUTH_MODE is validated at startup
// instead of surfacing as a silent fallthrough in the router.
func (m *AuthMode) Decode(repl string) error {
	switch AuthMode(repl) {
	case GlobalOptionalAuth, PerRouteRequiredAuth:
		*m = AuthMode(repl)
		return nil
	}
	return fmt.Errorf("unknown auth mode %q", repl)
}

// MediaDriver selects where uploaded images are stored.
type MediaDriver string

const (
	MediaDriverLocal MediaDriver = "local"
	MediaDriverS3    MediaDriver = "s3"
)

func (d *MediaDriver) Decode(repl string) error {
	switch MediaDriver(repl) {
	case MediaDriverLocal, MediaDriverS3:
		*d = MediaDriver(repl)
		return nil
	}
	return fmt.Errorf("unknown media driver %q", repl)
}

type Server struct {
	Port     string   `env:"PORT,default=8080"`
	AuthMode AuthMode `env:"AUTH_MODE,default=per-route"`

	Database DatabaseConfig
	JWT      JWTConfig
	Media    MediaConfig

	// RedisURL enables the token blacklist when set. Empty disables it.
	RedisURL string `env:"REDIS_URL"`
}

type DatabaseConfig struct {
	URI             string        `env:"MONGO_URI,default=mongodb://localhost:27017"`
	DatabaseName    string        `env:"MONGO_DB,default=notevault"`
	NotesCollection string        `env:"NOTES_COLLECTION,default=notes"`
	MaxPoolSize     uint64        `env:"MONGO_MAX_POOL_SIZE,default=100"`
	MinPoolSize     uint64        `env:"MONGO_MIN_POOL_SIZE,default=10"`
	MaxConnIdleTime time.Duration `env:"MONGO_MAX_CONN_IDLE_TIME,default=60s"`
	RetryWrites     bool          `env:"MONGO_RETRY_WRITES,default=true"`
}

type JWTConfig struct {
	SecretKey  string        `env:"JWT_SECRET_KEY,required"`
	Expiration time.Duration `env:"JWT_EXPIRATION,default=1h"`
	Issuer     string        `env:"JWT_ISSUER,default=notevault"`
}

type MediaConfig struct {
	Driver MediaDriver `env:"MEDIA_DRIVER,default=local"`

	// Local driver.
	UploadsDir string `env:"UPLOADS_DIR,default=uploads"`
	BaseURL    string `env:"UPLOADS_BASE_URL"`

	// S3 driver.
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION,default=eu-central-1"`
	S3KeyPrefix string `env:"S3_KEY_PREFIX,default=notes/"`
	S3AccessID  string `env:"S3_ACCESS_ID"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
}

// Load reads .env (outside of tests) and decodes the process environment.
func Load() (*Server, error) {
	if os.Getenv("GO_ENV") != "test" {
		// A missing .env is fine in containerized deployments; the
		// environment itself is authoritative.
		_ = godotenv.Load()
	}

	var cfg Server
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}

	if cfg.Media.Driver == MediaDriverS3 && cfg.Media.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required with MEDIA_DRIVER=s3")
	}

	return &cfg, nil
}
