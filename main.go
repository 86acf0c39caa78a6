package main

import (
	"os"

	"github.com/thenoetrevino/pipeboard/cmd"
	"github.com/thenoetrevino/pipeboard/internal/cli"
)

func main() {
	os.Exit(cli.ExitCodeFor(cmd.Execute()))
}
