package base

import (
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/sprintctl/internal/config"
)

// EnvFile is the dotenv file read from the working directory.
const EnvFile = ".env"

// ConfigFlags are the flags shared by commands that read the documents
// directory.
type ConfigFlags struct {
	Config   string
	Dir      string
	LogLevel string
}

// AddConfigFlags registers the shared configuration flags on f.
func (c *ConfigFlags) AddConfigFlags(f *FlagSet) {
	f.StringVar(
		&c.Config, "config", "",
		"Path to a sprintctl HCL config file.",
	)
	f.StringVar(
		&c.Dir, "dir", "",
		"[SPRINTCTL_DIR] Documents directory. Overrides the config file.",
	)
	f.StringVar(
		&c.LogLevel, "log-level", "",
		"[SPRINTCTL_LOG_LEVEL] Log level (trace, debug, info, warn, error). Overrides the config file.",
	)
}

// LoadConfig loads the configuration, applies flag overrides, validates it
// and sets the log level of the command's logger. Precedence is flags, then
// environment, then .env, then the config file.
func (c *Command) LoadConfig(flags ConfigFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.Config, EnvFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags.Dir, flags.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	return cfg, nil
}
