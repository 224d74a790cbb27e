package cmd

import (
	"github.com/mitchellh/cli"
)

// Version is set at build time
var Version = "0.1.0"

// VersionCommand prints the version
type VersionCommand struct {
	UI cli.Ui
}

// Help implements the cli.Command interface
func (c *VersionCommand) Help() string {
	return ""
}

// Synopsis implements the cli.Command interface
func (c *VersionCommand) Synopsis() string {
	return "Prints the version"
}

// Run implements the cli.Command interface
func (c *VersionCommand) Run(args []string) int {
	c.UI.Output(Version)
	return 0
}
