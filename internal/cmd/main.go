package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/sprintctl/internal/config"
	"github.com/hashicorp-forge/sprintctl/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := "sprintctl"

	level := hclog.Info
	if v, ok := os.LookupEnv(config.EnvLogLevel); ok {
		if l := hclog.LevelFromString(v); l != hclog.NoLevel {
			level = l
		}
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:   cliName,
		Level:  level,
		Output: os.Stderr,
	})

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{args[0], "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	return run(args[1:], log, ui)
}

func run(args []string, log hclog.Logger, ui cli.Ui) int {
	c := &cli.CLI{
		Name:       "sprintctl",
		Args:       args,
		Version:    version.Version,
		Commands:   Commands(log, ui),
		HelpWriter: os.Stdout,
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}
