// Package config loads sprintctl configuration from an optional HCL file,
// an optional .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"

	"github.com/hashicorp-forge/sprintctl/pkg/docname"
	"github.com/hashicorp-forge/sprintctl/pkg/mapping"
)

const (
	// EnvDir overrides documents.dir.
	EnvDir = "SPRINTCTL_DIR"

	// EnvPrefix overrides documents.prefix.
	EnvPrefix = "SPRINTCTL_PREFIX"

	// EnvLogLevel overrides log_level.
	EnvLogLevel = "SPRINTCTL_LOG_LEVEL"

	// DefaultDir is the documents directory used when nothing else is set.
	DefaultDir = "docs/sprints"
)

// Config is the configuration for sprintctl.
type Config struct {
	// LogLevel is the level of the root logger.
	LogLevel string `hcl:"log_level,optional"`

	// Documents configures where documents live and how they are named.
	Documents *Documents `hcl:"documents,block"`

	// Mappings is the renumbering mapping, if the config file carries one.
	Mappings []mapping.Block `hcl:"mapping,block"`
}

// Documents configures the documents directory and naming convention.
type Documents struct {
	Dir       string `hcl:"dir,optional"`
	Prefix    string `hcl:"prefix,optional"`
	Extension string `hcl:"extension,optional"`
	Width     int    `hcl:"width,optional"`
	Label     string `hcl:"label,optional"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	conv := docname.DefaultConvention()
	return &Config{
		LogLevel: "info",
		Documents: &Documents{
			Dir:       DefaultDir,
			Prefix:    conv.Prefix,
			Extension: conv.Extension,
			Width:     conv.Width,
		},
	}
}

// Load builds the configuration from the file, then the .env file, then the
// process environment, each overriding the last. filename and envFile are
// both optional; a missing envFile is not an error, a missing filename is.
// Flags are applied on top with ApplyFlags.
func Load(filename, envFile string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", filename)
		}

		var decoded Config
		if err := hclsimple.DecodeFile(filename, nil, &decoded); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.merge(&decoded)
	}

	dotenv := map[string]string{}
	if envFile != "" {
		var err error
		dotenv, err = readEnvFile(envFile)
		if err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return env, nil
}

// merge copies the values set in other over c.
func (c *Config) merge(other *Config) {
	if other.LogLevel != "" {
		c.LogLevel = strings.ToLower(other.LogLevel)
	}
	if d := other.Documents; d != nil {
		if d.Dir != "" {
			c.Documents.Dir = d.Dir
		}
		if d.Prefix != "" {
			c.Documents.Prefix = d.Prefix
		}
		if d.Extension != "" {
			c.Documents.Extension = d.Extension
		}
		if d.Width != 0 {
			c.Documents.Width = d.Width
		}
		if d.Label != "" {
			c.Documents.Label = d.Label
		}
	}
	c.Mappings = append(c.Mappings, other.Mappings...)
}

// ApplyEnv overrides values with the environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDir); ok && v != "" {
		c.Documents.Dir = v
	}
	if v, ok := lookup(EnvPrefix); ok && v != "" {
		c.Documents.Prefix = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// ApplyFlags overrides values with command-line flags. Empty flags are
// ignored.
func (c *Config) ApplyFlags(dir, logLevel string) {
	if dir != "" {
		c.Documents.Dir = dir
	}
	if logLevel != "" {
		c.LogLevel = strings.ToLower(logLevel)
	}
}

// Convention returns the naming convention of the documents.
func (c *Config) Convention() docname.Convention {
	return docname.Convention{
		Prefix:    c.Documents.Prefix,
		Extension: c.Documents.Extension,
		Width:     c.Documents.Width,
		Label:     c.Documents.Label,
	}
}

// Table returns the mapping carried by the config file, or nil if there is
// none.
func (c *Config) Table() (*mapping.Table, error) {
	if len(c.Mappings) == 0 {
		return nil, nil
	}
	return mapping.New(c.Convention(), mapping.FromBlocks(c.Mappings)...)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Documents == nil {
		return errors.New("documents block is required")
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel,
			validation.Required,
			validation.In("trace", "debug", "info", "warn", "error"),
		),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(c.Documents,
		validation.Field(&c.Documents.Dir, validation.Required),
	); err != nil {
		return fmt.Errorf("documents: %w", err)
	}
	if err := c.Convention().Validate(); err != nil {
		return fmt.Errorf("documents: %w", err)
	}
	return nil
}
