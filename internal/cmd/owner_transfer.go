package cmd

import (
	"fmt"

	"github.com/stakewarden/stakewarden/internal/api"
)

// OwnerTransferCommand hands the owner capability to a new address
type OwnerTransferCommand struct {
	*Meta

	newOwner string
}

// Help implements the cli.Command interface
func (c *OwnerTransferCommand) Help() string {
	return `Usage: stakewarden owner transfer -caller 0x.. -new-owner 0x..

  Transfers the owner capability to the new address. The current owner
  loses it immediately.`
}

// Synopsis implements the cli.Command interface
func (c *OwnerTransferCommand) Synopsis() string {
	return "Transfers the owner capability"
}

// Run implements the cli.Command interface
func (c *OwnerTransferCommand) Run(args []string) int {
	flags := c.FlagSet("owner transfer")

	flags.StringVar(&c.newOwner, "new-owner", "", "")

	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Client().TransferOwnership(&api.TransferOwnershipRequest{NewOwner: c.newOwner}); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(fmt.Sprintf("Owner is now %s", c.newOwner))
	return 0
}
