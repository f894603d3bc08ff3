package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for clk, stored in ~/.clk/config.json.
// The JSON file supports single-line // comments for documentation purposes.
// A file given with --config may also be TOML or YAML.
type Config struct {
	// File is the clock file that start/stop append to and that is read last.
	File string `json:"file" toml:"file" yaml:"file"`
	// History lists older clock files, read in order before File.
	History   []string      `json:"history" toml:"history" yaml:"history"`
	LogLevel  string        `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFormat string        `json:"log_format" toml:"log_format" yaml:"log_format"`
	Outlook   OutlookConfig `json:"outlook" toml:"outlook" yaml:"outlook"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar sync settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id" toml:"tenant_id" yaml:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id" toml:"client_id" yaml:"client_id"`
	// DefaultJob is the job name imported Outlook events are clocked on.
	DefaultJob string `json:"default_job" toml:"default_job" yaml:"default_job"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `json:"timezone" toml:"timezone" yaml:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultJob is the job imported events are clocked on. It must be a
	// valid clock file identifier.
	DefaultJob = "meetings"

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Dir returns the configuration directory (~/.clk).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".clk"), nil
}

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	var cfg Config
	cfg.fillDefaults()
	return cfg
}

// fillDefaults sets zero-value fields to the built-in defaults so callers
// always get a usable Config even if the user only partially fills in the file.
func (c *Config) fillDefaults() {
	if c.File == "" {
		if dir, err := Dir(); err == nil {
			c.File = filepath.Join(dir, "main.clk")
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.Outlook.TenantID == "" {
		c.Outlook.TenantID = DefaultTenantID
	}
	if c.Outlook.ClientID == "" {
		c.Outlook.ClientID = DefaultClientID
	}
	if c.Outlook.DefaultJob == "" {
		c.Outlook.DefaultJob = DefaultJob
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// clk configuration – ~/.clk/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Edit this file to customise clk behaviour.
{
  // Clock file that clk start / clk stop append to. Defaults to ~/.clk/main.clk.
  "file": "",

  // Older clock files, read in this order before "file". Year, date, job and
  // tags carry over from one file to the next.
  "history": [],

  // Diagnostics written to stderr: debug, info, warn, error.
  "log_level": "warn",
  // text or json
  "log_format": "text",

  // ── Microsoft Graph / Outlook calendar sync ──────────────────────────────
  "outlook": {
    // Azure AD tenant ID.
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID, e.g. "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // Job that imported Outlook calendar events are clocked on.
    // Can be overridden per-sync with: clk outlook sync --job <name>
    "default_job": "meetings",

    // IANA timezone for interpreting calendar event times, e.g. "Europe/Berlin".
    // Leave empty to use UTC. Can be overridden with: clk outlook sync --timezone <tz>
    "timezone": ""
  }
}
`

// configFilePath returns the path to ~/.clk/config.json.
func configFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.clk/config.json, creating it with annotated defaults on first
// run. The returned warning is non-empty when the template could not be written.
func Load() (Config, string, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), "", err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			return defaultConfig(), fmt.Sprintf("could not create config file %s: %v", path, writeErr), nil
		}
		return defaultConfig(), "", nil
	}
	cfg, err := LoadFile(path)
	return cfg, "", err
}

// LoadFile reads the config at path. The format follows the extension:
// .toml, .yaml/.yml, anything else is JSON with // line comments.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := decode(data, filepath.Ext(path))
	if err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func decode(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		err := toml.Unmarshal(data, &cfg)
		return cfg, err
	case ".yaml", ".yml":
		err := yaml.Unmarshal(data, &cfg)
		return cfg, err
	default:
		err := sonic.Unmarshal(stripLineComments(data), &cfg)
		return cfg, err
	}
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
