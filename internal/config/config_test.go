package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStripLineComments(t *testing.T) {
	in := "// header\n{\n  // inside\n  \"file\": \"a.clk\" // trailing stays\n}\n"
	got := string(stripLineComments([]byte(in)))
	assert.NotContains(t, got, "header")
	assert.NotContains(t, got, "inside")
	assert.Contains(t, got, "trailing stays")
}

func TestTemplateDecodes(t *testing.T) {
	cfg, err := decode([]byte(configTemplate), ".json")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, DefaultJob, cfg.Outlook.DefaultJob)
	assert.Empty(t, cfg.History)
}

func TestLoadFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "c.json", "// comment\n{\"file\": \"/w/main.clk\", \"history\": [\"/w/2023.clk\"], \"log_level\": \"debug\", \"outlook\": {\"default_job\": \"calls\"}}"},
		{"toml", "c.toml", "file = \"/w/main.clk\"\nhistory = [\"/w/2023.clk\"]\nlog_level = \"debug\"\n[outlook]\ndefault_job = \"calls\"\n"},
		{"yaml", "c.yaml", "file: /w/main.clk\nhistory:\n  - /w/2023.clk\nlog_level: debug\noutlook:\n  default_job: calls\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFile(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "/w/main.clk", cfg.File)
			assert.Equal(t, []string{"/w/2023.clk"}, cfg.History)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
			assert.Equal(t, "calls", cfg.Outlook.DefaultJob)
			assert.Equal(t, DefaultTenantID, cfg.Outlook.TenantID)
			assert.Equal(t, DefaultClientID, cfg.Outlook.ClientID)
		})
	}
}

func TestLoadFileInvalid(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "c.json", "{bad json"))
	assert.Error(t, err)
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadWritesTemplate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, warning, err := Load()
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, filepath.Join(home, ".clk", "main.clk"), cfg.File)

	data, err := os.ReadFile(filepath.Join(home, ".clk", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, configTemplate, string(data))

	again, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.File, again.File)
	assert.Equal(t, cfg.Outlook, again.Outlook)
	assert.Empty(t, again.History)
}
