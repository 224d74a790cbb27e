package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/stakewarden/stakewarden/internal/api"
)

// StakerShowCommand prints the staged queue of one staker
type StakerShowCommand struct {
	*Meta

	staker string
}

// Help implements the cli.Command interface
func (c *StakerShowCommand) Help() string {
	return `Usage: stakewarden staker show -staker 0x..

  Prints the staker's staged deposit records in staging order.`
}

// Synopsis implements the cli.Command interface
func (c *StakerShowCommand) Synopsis() string {
	return "Prints the staged queue of one staker"
}

// Run implements the cli.Command interface
func (c *StakerShowCommand) Run(args []string) int {
	flags := c.FlagSet("staker show")

	flags.StringVar(&c.staker, "staker", "", "")

	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	resp, err := c.Client().Staker(c.staker)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(formatStaker(resp))
	return 0
}

func formatStaker(data *api.StakerResponse) string {
	if data.Count == 0 {
		return "No records staged"
	}

	rows := make([]string, data.Count+1)
	rows[0] = "Index|Pubkey|Root"
	for i := uint64(0); i < data.Count; i++ {
		rows[i+1] = fmt.Sprintf("%d|%s|%s",
			i,
			shortHex(data.Pubkeys[i]),
			shortHex(data.Roots[i]),
		)
	}
	return formatList(rows)
}

func shortHex(buf []byte) string {
	str := "0x" + hex.EncodeToString(buf)
	if len(str) > 18 {
		str = str[:18] + ".."
	}
	return str
}
