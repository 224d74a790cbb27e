package cmd

import (
	"fmt"

	"github.com/stakewarden/stakewarden/internal/api"
)

// StatusCommand prints the vault status and recent events
type StatusCommand struct {
	*Meta

	events int
}

// Help implements the cli.Command interface
func (c *StatusCommand) Help() string {
	return `Usage: stakewarden status [-events n]

  Prints the vault status and the n most recent events.`
}

// Synopsis implements the cli.Command interface
func (c *StatusCommand) Synopsis() string {
	return "Prints the vault status"
}

// Run implements the cli.Command interface
func (c *StatusCommand) Run(args []string) int {
	flags := c.FlagSet("status")

	flags.IntVar(&c.events, "events", 5, "")

	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	clt := c.Client()

	status, err := clt.Status()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(formatKV([]string{
		fmt.Sprintf("Name|%s", status.Name),
		fmt.Sprintf("Owner|%s", status.Owner),
		fmt.Sprintf("Paused|%v", status.Paused),
		fmt.Sprintf("Acceptor|%s", status.Acceptor),
		fmt.Sprintf("Stakers|%d", status.Stakers),
		fmt.Sprintf("Collateral|%s wei", status.Collateral),
	}))

	if c.events > 0 {
		events, err := clt.Events(c.events)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		c.UI.Output("")
		c.UI.Output(formatEvents(events))
	}
	return 0
}

func formatEvents(events []*api.EventStub) string {
	if len(events) == 0 {
		return "No events found"
	}

	rows := make([]string, len(events)+1)
	rows[0] = "Time|Type|Staker|Count"
	for i, e := range events {
		rows[i+1] = fmt.Sprintf("%s|%s|%s|%d",
			e.Time,
			e.Type,
			e.Staker,
			e.Count,
		)
	}
	return formatList(rows)
}
