package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/izthiaka/loumaa/internal/model"
)

// Config aggregates every runtime setting of the API process. All values come
// from environment variables so that secrets and TTLs can be rotated without
// touching code.
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Token  TokenConfig
	Signup SignupConfig
	SMTP   SMTPConfig
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Env             string        `env:"APP_ENV"          envDefault:"development"`
	Address         string        `env:"ADDRESS"          envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// MongoConfig holds the connection settings for the document store.
type MongoConfig struct {
	URI      string `env:"MONGODB_URI,required"`
	Database string `env:"MONGODB_DATABASE"     envDefault:"loumaa"`
}

// TokenConfig holds the JWT signing settings. A single shared secret signs
// both access and refresh tokens.
type TokenConfig struct {
	Secret     string        `env:"TOKEN_SECRET,required"`
	Issuer     string        `env:"TOKEN_ISSUER"      envDefault:"loumaa"`
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"10h"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"48h"`
}

// SignupConfig names the deployment-dependent sign-up conventions instead of
// burying them as inline literals.
type SignupConfig struct {
	DefaultStatus string        `env:"SIGNUP_DEFAULT_STATUS" envDefault:"PENDING"`
	DefaultRole   string        `env:"SIGNUP_DEFAULT_ROLE"   envDefault:"Owner"`
	ResetCodeTTL  time.Duration `env:"RESET_CODE_TTL"        envDefault:"30m"`
}

// SMTPConfig holds the settings of the outbound mailer.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// Load parses the full configuration from environment variables and exits the
// process on any missing or malformed value.
func Load(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	return &cfg
}

func (c *Config) validate() error {
	if len(c.Token.Secret) < 32 {
		return fmt.Errorf("TOKEN_SECRET must be at least 32 bytes")
	}
	if c.Token.AccessTTL <= 0 || c.Token.RefreshTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}

	status, err := model.ParseStatus(c.Signup.DefaultStatus)
	if err != nil {
		return fmt.Errorf("SIGNUP_DEFAULT_STATUS: %w", err)
	}
	if status != model.StatusPending && status != model.StatusActive {
		return fmt.Errorf("SIGNUP_DEFAULT_STATUS must be PENDING or ACTIVE, got %s", status)
	}

	if c.Signup.DefaultRole == "" {
		return fmt.Errorf("SIGNUP_DEFAULT_ROLE must not be empty")
	}
	if c.Signup.ResetCodeTTL <= 0 {
		return fmt.Errorf("RESET_CODE_TTL must be positive")
	}

	return nil
}

// SignupStatus returns the configured default account status. Load has
// already validated it.
func (c *Config) SignupStatus() model.Status {
	status, _ := model.ParseStatus(c.Signup.DefaultStatus)
	return status
}
