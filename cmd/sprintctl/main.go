package main

import (
	"os"

	"github.com/hashicorp-forge/sprintctl/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
