package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/stakewarden/stakewarden/internal/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	commands := cmd.Commands()

	c := &cli.CLI{
		Name:     "stakewarden",
		Args:     args,
		Commands: commands,
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to run the cli: %v\n", err)
		return 1
	}
	return exitCode
}
