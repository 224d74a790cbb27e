package cmd

import (
	"fmt"

	"github.com/stakewarden/stakewarden/internal/api"
)

// RecordsDeleteCommand removes staged records from the end of a queue, or
// the whole queue
type RecordsDeleteCommand struct {
	*Meta

	staker string
	count  uint64
	all    bool
}

// Help implements the cli.Command interface
func (c *RecordsDeleteCommand) Help() string {
	return `Usage: stakewarden records delete -staker 0x.. [-count n | -all]

  Removes the n most recently staged records of the staker, or the whole
  queue with -all.`
}

// Synopsis implements the cli.Command interface
func (c *RecordsDeleteCommand) Synopsis() string {
	return "Removes staged records"
}

// Run implements the cli.Command interface
func (c *RecordsDeleteCommand) Run(args []string) int {
	flags := c.FlagSet("records delete")

	flags.StringVar(&c.staker, "staker", "", "")
	flags.Uint64Var(&c.count, "count", 0, "")
	flags.BoolVar(&c.all, "all", false, "")

	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	var resp *api.DeleteRecordsResponse
	var err error
	if c.all {
		resp, err = c.Client().DeleteAllRecords(c.staker)
	} else {
		resp, err = c.Client().DeleteLastRecords(c.staker, c.count)
	}
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(formatKV([]string{
		fmt.Sprintf("Staker|%s", resp.Staker),
		fmt.Sprintf("Deleted|%d", resp.Deleted),
		fmt.Sprintf("Queue length|%d", resp.QueueLength),
	}))
	return 0
}
