package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host               string
		Port               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		RateLimitWindow    time.Duration
		RateLimitCeiling   int
	}

	QuestionsConfig struct {
		APIURL   string
		APIKey   string
		CacheTTL time.Duration
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string
		Build    string
		AppName  string

		SecretKey                 string
		PasswordResetTimeoutDelta time.Duration

		DatabaseURL string
		RedisURL    string

		// FrontendURL doubles as the allowed CORS origin and the base URL
		// for links in outgoing emails.
		FrontendURL string

		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server    ServerConfig
		Questions QuestionsConfig
	}
)

// NewConfig loads configuration from the environment, overlaid on defaults.
// A `config/.env.<env>` file is loaded first if it exists. Required keys
// (database URL, signing secret, port, frontend origin) are checked up front
// so a misconfigured process dies before it accepts connections.
func NewConfig() (*Config, error) {
	v := viper.New()

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}

	v.SetDefault("debug", env == "DEV" || env == "TEST")
	v.SetDefault("test_mode", env == "TEST")
	v.SetDefault("app_name", "JnanaSetu")
	v.SetDefault("build", "dev")
	v.SetDefault("default_from_email", "noreply@localhost")
	v.SetDefault("host", "localhost")
	v.SetDefault("debug_host", "localhost:4000")
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("jwt_expiration_delta", 30*time.Minute)
	v.SetDefault("password_reset_timeout_delta", 3*24*time.Hour)
	v.SetDefault("rate_limit_window", 15*time.Minute)
	v.SetDefault("rate_limit_ceiling", 100)
	v.SetDefault("questions_cache_ttl", time.Hour)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("test_mode"),
		Env:                       env,
		Build:                     v.GetString("build"),
		AppName:                   v.GetString("app_name"),
		SecretKey:                 v.GetString("jwt_secret"),
		PasswordResetTimeoutDelta: v.GetDuration("password_reset_timeout_delta"),
		DatabaseURL:               v.GetString("database_url"),
		RedisURL:                  v.GetString("redis_url"),
		FrontendURL:               v.GetString("frontend_url"),
		DefaultFromEmail:          mail.Address{Name: v.GetString("app_name"), Address: v.GetString("default_from_email")},
		SendgridAPIKey:            v.GetString("sendgrid_api_key"),
		RollbarToken:              v.GetString("rollbar_token"),
		Server: ServerConfig{
			Host:               v.GetString("host"),
			Port:               v.GetString("port"),
			DebugHost:          v.GetString("debug_host"),
			ShutdownTimeout:    v.GetDuration("shutdown_timeout"),
			JWTExpirationDelta: v.GetDuration("jwt_expiration_delta"),
			RateLimitWindow:    v.GetDuration("rate_limit_window"),
			RateLimitCeiling:   v.GetInt("rate_limit_ceiling"),
		},
		Questions: QuestionsConfig{
			APIURL:   v.GetString("questions_api_url"),
			APIKey:   v.GetString("questions_api_key"),
			CacheTTL: v.GetDuration("questions_cache_ttl"),
		},
	}

	if err := conf.check(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (conf *Config) check() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.DatabaseURL, "DATABASE_URL"),
		vala.StringNotEmpty(conf.SecretKey, "JWT_SECRET"),
		vala.StringNotEmpty(conf.Server.Port, "PORT"),
		vala.StringNotEmpty(conf.FrontendURL, "FRONTEND_URL"),
	).Check()
}

// ServerAddress is the listen address in :port form.
func (conf *Config) ServerAddress() string {
	return ":" + conf.Server.Port
}
