// Package config loads and validates deployment configuration for the
// payment ledger CLI.
//
// Config files are CUE: the loaded file is unified with the embedded
// #Config schema, so unknown fields, wrong types, and missing required
// values are rejected with positioned errors before anything runs.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded deployment configuration.
type Config struct {
	// Database is the path to the SQLite ledger database.
	Database string `json:"database"`

	// Caller is the identity the CLI authenticates as. May be empty;
	// mutating commands then require --caller.
	Caller string `json:"caller,omitempty"`

	// LogLevel selects the slog level ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level"`
}

// Load reads a CUE config file, validates it against the embedded schema,
// and decodes the config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// Parse validates and decodes config source. filename is used for error
// positions only.
func Parse(filename string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("internal config schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	var cfg Config
	if err := unified.LookupPath(cue.ParsePath("config")).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// SlogLevel maps the configured log level onto a slog.Level.
// Unknown values (already excluded by the schema) fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
