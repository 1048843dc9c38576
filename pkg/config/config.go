// Package config loads clinic settings from .clinic.yaml, CLINIC_* environment
// variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	SourceLocal      = "local"
	SourcePocketBase = "pocketbase"
)

// PocketBase holds the remote connection settings.
type PocketBase struct {
	URL      string `mapstructure:"url" json:"url" validate:"omitempty,url"`
	Email    string `mapstructure:"email" json:"email,omitempty" validate:"omitempty,email"`
	Password string `mapstructure:"password" json:"-"`
	Token    string `mapstructure:"token" json:"-"`
	PerPage  int    `mapstructure:"per_page" json:"perPage" validate:"gt=0,lte=500"`
}

// Log controls the logger.
type Log struct {
	Level string `mapstructure:"level" json:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	File  string `mapstructure:"file" json:"file,omitempty"`
}

// Config is the resolved configuration.
type Config struct {
	Source         string        `mapstructure:"source" json:"source" validate:"oneof=local pocketbase"`
	Path           string        `mapstructure:"path" json:"path" validate:"required"`
	PocketBase     PocketBase    `mapstructure:"pocketbase" json:"pocketbase"`
	Timeout        time.Duration `mapstructure:"timeout" json:"timeout" validate:"gt=0"`
	SearchDebounce time.Duration `mapstructure:"search_debounce" json:"searchDebounce" validate:"gte=0"`
	Log            Log           `mapstructure:"log" json:"log"`
}

// BasePath is the directory of the local appointment cache.
func (c *Config) BasePath() string {
	return c.Path
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source", SourceLocal)
	v.SetDefault("path", "~/.clinic.db")
	v.SetDefault("pocketbase.url", "")
	v.SetDefault("pocketbase.email", "")
	v.SetDefault("pocketbase.password", "")
	v.SetDefault("pocketbase.token", "")
	v.SetDefault("pocketbase.per_page", 100)
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("search_debounce", 300*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load resolves the configuration using v, or the global viper when v is nil
// so that flags bound by the commands take precedence.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)
	v.SetConfigName(".clinic") // .yaml is implicit
	v.SetEnvPrefix("CLINIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("CLINIC_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	path, err := homedir.Expand(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(Config)
		if c.Source == SourcePocketBase && c.PocketBase.URL == "" {
			sl.ReportError(c.PocketBase.URL, "PocketBase.URL", "URL", "required_for_pocketbase", "")
		}
	}, Config{})
	return v
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required_for_pocketbase":
		return "pocketbase.url is required when source is pocketbase"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s failed %q (%v)", field, fe.Tag(), fe.Value())
	}
}
