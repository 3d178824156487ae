package client

import (
	"errors"
	"io/fs"
	"net/url"

	"github.com/spf13/viper"
	"golang.org/x/net/http/httpguts"
)

// Environment variables read by LoadConfig.
const (
	EnvUsername = "CLICKHOUSE_USERNAME"
	EnvPassword = "CLICKHOUSE_PASSWORD"
	EnvDatabase = "CLICKHOUSE_DATABASE"
	EnvURL      = "CLICKHOUSE_URL"
)

// Config holds the connection settings. All four values must be present;
// only the password may be empty.
type Config struct {
	Username string
	Password string
	Database string
	URL      string
}

// ConfigOption customizes LoadConfig.
type ConfigOption func(*viper.Viper)

// WithEnvFile reads path as a dotenv file before consulting the
// environment. A missing file is ignored; environment variables win
// over values from the file.
func WithEnvFile(path string) ConfigOption {
	return func(v *viper.Viper) {
		v.SetConfigFile(path)
		v.SetConfigType("env")
	}
}

// LoadConfig reads the four CLICKHOUSE_* variables.
func LoadConfig(opts ...ConfigOption) (Config, error) {
	v := viper.New()
	for _, opt := range opts {
		opt(v)
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return Config{}, &ConfigError{Key: v.ConfigFileUsed(), Reason: "cannot be read: " + err.Error()}
		}
	}

	v.AutomaticEnv()
	// The default user commonly has an empty password.
	v.AllowEmptyEnv(true)

	cfg := Config{}
	for _, field := range []struct {
		env string
		dst *string
	}{
		{EnvUsername, &cfg.Username},
		{EnvPassword, &cfg.Password},
		{EnvDatabase, &cfg.Database},
		{EnvURL, &cfg.URL},
	} {
		if !v.IsSet(field.env) {
			return Config{}, &ConfigError{Key: field.env, Reason: "is not set"}
		}
		*field.dst = v.GetString(field.env)
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Validate checks that every value is present, that credentials are legal
// header values and that URL is absolute.
func (c Config) Validate() error {
	if c.Username == "" {
		return &ConfigError{Key: EnvUsername, Reason: "is empty"}
	}
	if c.Database == "" {
		return &ConfigError{Key: EnvDatabase, Reason: "is empty"}
	}
	if c.URL == "" {
		return &ConfigError{Key: EnvURL, Reason: "is empty"}
	}
	if !httpguts.ValidHeaderFieldValue(c.Username) {
		return &ConfigError{Key: EnvUsername, Reason: "is not a valid header value"}
	}
	if !httpguts.ValidHeaderFieldValue(c.Password) {
		return &ConfigError{Key: EnvPassword, Reason: "is not a valid header value"}
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Key: EnvURL, Reason: "is not an absolute URL"}
	}
	return nil
}
