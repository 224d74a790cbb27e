package cmd

import (
	"fmt"
	"math/big"

	"github.com/stakewarden/stakewarden/internal/api"
)

// DepositCommand triggers the deposit of a staker's whole queue
type DepositCommand struct {
	*Meta

	from  string
	value string
}

// Help implements the cli.Command interface
func (c *DepositCommand) Help() string {
	return `Usage: stakewarden deposit -from 0x.. [-value wei]

  Sends the value transfer that consumes the staker's queue. Without
  -value the exact amount is derived from the current queue length and the
  collateral.`
}

// Synopsis implements the cli.Command interface
func (c *DepositCommand) Synopsis() string {
	return "Triggers the deposit of a staker's queue"
}

// Run implements the cli.Command interface
func (c *DepositCommand) Run(args []string) int {
	flags := c.FlagSet("deposit")

	flags.StringVar(&c.from, "from", "", "")
	flags.StringVar(&c.value, "value", "", "")

	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	clt := c.Client()

	value := c.value
	if value == "" {
		data, err := clt.Staker(c.from)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		status, err := clt.Status()
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		collateral, ok := new(big.Int).SetString(status.Collateral, 10)
		if !ok {
			c.UI.Error(fmt.Sprintf("malformed collateral %q", status.Collateral))
			return 1
		}
		value = new(big.Int).Mul(collateral, new(big.Int).SetUint64(data.Count)).String()
	}

	resp, err := clt.Deposit(&api.DepositRequest{From: c.from, Value: value})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(formatKV([]string{
		fmt.Sprintf("Sender|%s", resp.Sender),
		fmt.Sprintf("Records|%d", resp.Records),
		fmt.Sprintf("Value|%s wei", resp.Value),
	}))
	return 0
}
