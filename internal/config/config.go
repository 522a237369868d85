// Package config assembles the devcli configuration with viper. Sources, from
// lowest to highest priority: built-in defaults, a YAML config file, a .env
// file, DEVCLI_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"devcli/internal/output"
	"devcli/internal/users"
)

// EnvPrefix prefixes every environment variable read by devcli.
const EnvPrefix = "DEVCLI"

// Configuration keys.
const (
	KeyLogLevel     = "log-level"
	KeyLogFile      = "log-file"
	KeyTestMode     = "test-mode"
	KeyHistorySize  = "history.size"
	KeyMaxLine      = "input.max_line"
	KeyIndent       = "output.indent"
	KeyColor        = "output.color"
	KeyPollInterval = "service.poll_interval"
	KeyWelcome      = "service.welcome"
	KeyUsersFile    = "users.file"
)

// ErrInvalidValue marks a configuration value outside its allowed range.
var ErrInvalidValue = errors.New("invalid configuration value")

var defaults = map[string]any{
	KeyLogLevel:     "info",
	KeyLogFile:      "",
	KeyTestMode:     false,
	KeyHistorySize:  32,
	KeyMaxLine:      128,
	KeyIndent:       "  ",
	KeyColor:        "auto",
	KeyPollInterval: "10ms",
	KeyWelcome:      "Welcome to devcli",
	KeyUsersFile:    "",
}

// Config is the resolved configuration.
type Config struct {
	LogLevel     string
	LogFile      string
	TestMode     bool
	HistorySize  int
	MaxLine      int
	Indent       string
	Color        output.Mode
	PollInterval time.Duration
	Welcome      string
	UsersFile    string
}

// New creates a viper instance with the defaults and DEVCLI_* environment binding.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// EnvName returns the environment variable consulted for key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// ReadFile merges a YAML config file into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv merges the DEVCLI_* entries of a .env file into v, above the
// config file and below real environment variables. A missing file is not an error.
func LoadDotEnv(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	merged := make(map[string]any)
	for key := range defaults {
		value, ok := envMap[EnvName(key)]
		if !ok {
			continue
		}
		setNested(merged, strings.Split(key, "."), value)
	}
	if len(merged) == 0 {
		return nil
	}
	return v.MergeConfigMap(merged)
}

func setNested(m map[string]any, path []string, value string) {
	for _, part := range path[:len(path)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		LogLevel:     v.GetString(KeyLogLevel),
		LogFile:      v.GetString(KeyLogFile),
		TestMode:     v.GetBool(KeyTestMode),
		HistorySize:  v.GetInt(KeyHistorySize),
		MaxLine:      v.GetInt(KeyMaxLine),
		Indent:       v.GetString(KeyIndent),
		Color:        output.ParseMode(strings.ToLower(v.GetString(KeyColor))),
		PollInterval: v.GetDuration(KeyPollInterval),
		Welcome:      v.GetString(KeyWelcome),
		UsersFile:    v.GetString(KeyUsersFile),
	}

	if cfg.HistorySize <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d: %w", KeyHistorySize, cfg.HistorySize, ErrInvalidValue)
	}
	if cfg.MaxLine <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d: %w", KeyMaxLine, cfg.MaxLine, ErrInvalidValue)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s: %w", KeyPollInterval, cfg.PollInterval, ErrInvalidValue)
	}
	return cfg, nil
}

// RendererOptions returns the output options for the configured indent and
// colour. Test mode always renders deterministic plain text.
func (c *Config) RendererOptions() []output.Option {
	opts := []output.Option{output.WithIndent(c.Indent)}
	switch {
	case c.TestMode:
		opts = append(opts, output.TestMode())
	case c.Color == output.ModePlain:
		opts = append(opts, output.PlainText())
	default:
		opts = append(opts, output.WithMode(c.Color))
	}
	return opts
}

// Users returns the account directory: the users file when configured,
// otherwise the built-in accounts.
func (c *Config) Users() (*users.Directory, error) {
	list := users.Defaults()
	if c.UsersFile != "" {
		loaded, err := users.LoadFile(c.UsersFile)
		if err != nil {
			return nil, err
		}
		list = loaded
	}
	return users.NewDirectory(list)
}
