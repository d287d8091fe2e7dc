// Package config loads service settings from configs/config.yml, an optional
// .env file and LAUNCHPAD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LAUNCHPAD"

// Config is the resolved service configuration.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	Countdown    CountdownConfig
	Subscription SubscriptionConfig
	Auth         AuthConfig
	WSBuffer     int
}

type CountdownConfig struct {
	// Target is raw input for countdown.ResolveTarget; empty means next New Year.
	Target   string
	Location *time.Location
}

type SubscriptionConfig struct {
	SheetsURL string
	Timeout   time.Duration
}

type AuthConfig struct {
	SigningKey    string
	TokenTTL      time.Duration
	AllowSignUp   bool
	AdminUsername string
	AdminPassword string
}

// Options controls where configuration is read from.
type Options struct {
	ConfigPaths []string // directories searched for config.yml
	EnvFile     string   // optional dotenv file
}

// DefaultOptions reads ./configs/config.yml and ./.env.
func DefaultOptions() Options {
	return Options{ConfigPaths: []string{"configs"}, EnvFile: ".env"}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "launchpad.db")
	v.SetDefault("countdown.target", "")
	v.SetDefault("countdown.timezone", "Local")
	v.SetDefault("subscription.sheets_url", "")
	v.SetDefault("subscription.timeout", 10*time.Second)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.allow_sign_up", false)
	v.SetDefault("auth.admin_username", "")
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("ws.buffer", 4)
}

// Load resolves configuration. A missing config file or .env is fine; a
// malformed one, or an unknown timezone, is an error.
func Load(opts Options) (Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %q: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	loc, err := loadLocation(v.GetString("countdown.timezone"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     v.GetString("port"),
		LogLevel: strings.ToLower(v.GetString("log.level")),
		DBPath:   v.GetString("db.path"),
		Countdown: CountdownConfig{
			Target:   v.GetString("countdown.target"),
			Location: loc,
		},
		Subscription: SubscriptionConfig{
			SheetsURL: strings.TrimSpace(v.GetString("subscription.sheets_url")),
			Timeout:   v.GetDuration("subscription.timeout"),
		},
		Auth: AuthConfig{
			SigningKey:    v.GetString("auth.signing_key"),
			TokenTTL:      v.GetDuration("auth.token_ttl"),
			AllowSignUp:   v.GetBool("auth.allow_sign_up"),
			AdminUsername: v.GetString("auth.admin_username"),
			AdminPassword: v.GetString("auth.admin_password"),
		},
		WSBuffer: v.GetInt("ws.buffer"),
	}
	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("countdown.timezone %q: %w", name, err)
	}
	return loc, nil
}
