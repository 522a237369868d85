package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devcli/internal/output"
	"devcli/pkg/clitypes"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 32, cfg.HistorySize)
	assert.Equal(t, 128, cfg.MaxLine)
	assert.Equal(t, "  ", cfg.Indent)
	assert.Equal(t, output.ModeAuto, cfg.Color)
	assert.Equal(t, 10*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "Welcome to devcli", cfg.Welcome)
	assert.Empty(t, cfg.UsersFile)
	assert.False(t, cfg.TestMode)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "DEVCLI_HISTORY_SIZE", EnvName(KeyHistorySize))
	assert.Equal(t, "DEVCLI_INPUT_MAX_LINE", EnvName(KeyMaxLine))
	assert.Equal(t, "DEVCLI_LOG_LEVEL", EnvName(KeyLogLevel))
}

func TestLoad_SourcePriority(t *testing.T) {
	configFile := writeFile(t, "devcli.yaml", `
history:
  size: 10
input:
  max_line: 64
output:
  indent: "    "
service:
  welcome: from file
`)
	dotEnv := writeFile(t, ".env", `
DEVCLI_HISTORY_SIZE=20
DEVCLI_SERVICE_WELCOME="from dotenv"
UNRELATED=value
`)
	t.Setenv("DEVCLI_HISTORY_SIZE", "30")

	v := New()
	require.NoError(t, ReadFile(v, configFile))
	require.NoError(t, LoadDotEnv(v, dotEnv))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.HistorySize, "environment beats .env and file")
	assert.Equal(t, "from dotenv", cfg.Welcome, ".env beats file")
	assert.Equal(t, 64, cfg.MaxLine, "file beats defaults")
	assert.Equal(t, "    ", cfg.Indent)
	assert.False(t, v.IsSet("UNRELATED"))
}

func TestLoad_Color(t *testing.T) {
	tests := []struct {
		color    string
		expected output.Mode
	}{
		{"auto", output.ModeAuto},
		{"ALWAYS", output.ModeStyled},
		{"never", output.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			t.Setenv("DEVCLI_OUTPUT_COLOR", tt.color)
			cfg, err := Load(New())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Color)
		})
	}
}

func TestConfig_RendererOptions(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{"always styled", Config{Indent: "  ", Color: output.ModeStyled}, true},
		{"never styled", Config{Indent: "  ", Color: output.ModePlain}, false},
		{"test mode wins over always", Config{Indent: "  ", Color: output.ModeStyled, TestMode: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := output.NewRenderer(io.Discard, tt.config.RendererOptions()...)
			assert.Equal(t, tt.expected, r.IsStyled())
		})
	}

	r := output.NewRenderer(io.Discard, (&Config{Indent: "\t", TestMode: true}).RendererOptions()...)
	assert.Equal(t, "\t", r.Indent())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{"DEVCLI_HISTORY_SIZE", "0"},
		{"DEVCLI_INPUT_MAX_LINE", "-1"},
		{"DEVCLI_SERVICE_POLL_INTERVAL", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load(New())
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	err := ReadFile(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(New(), filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeFile(t, ".env", "DEVCLI_HISTORY_SIZE=\"unterminated\n")
		assert.Error(t, LoadDotEnv(New(), path))
	})
}

func TestConfig_Users(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		dir, err := (&Config{}).Users()
		require.NoError(t, err)
		u, ok := dir.Authenticate("admin", "admin123")
		require.True(t, ok)
		assert.Equal(t, clitypes.AccessAdmin, u.AccessLevel)
	})

	t.Run("users file", func(t *testing.T) {
		path := writeFile(t, "users.yaml", `
users:
  - username: operator
    password: secret
    level: admin
`)
		dir, err := (&Config{UsersFile: path}).Users()
		require.NoError(t, err)
		assert.Equal(t, 1, dir.Len())
		_, ok := dir.Authenticate("operator", "secret")
		assert.True(t, ok)
		_, ok = dir.Authenticate("admin", "admin123")
		assert.False(t, ok)
	})

	t.Run("missing users file", func(t *testing.T) {
		_, err := (&Config{UsersFile: filepath.Join(t.TempDir(), "nope.yaml")}).Users()
		assert.Error(t, err)
	})
}
