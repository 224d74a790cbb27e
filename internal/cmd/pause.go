package cmd

// PauseCommand pauses the deposit trigger
type PauseCommand struct {
	*Meta
}

// Help implements the cli.Command interface
func (c *PauseCommand) Help() string {
	return `Usage: stakewarden pause -caller 0x..

  Pauses the deposit trigger. Staged queues stay editable while paused.`
}

// Synopsis implements the cli.Command interface
func (c *PauseCommand) Synopsis() string {
	return "Pauses the deposit trigger"
}

// Run implements the cli.Command interface
func (c *PauseCommand) Run(args []string) int {
	flags := c.FlagSet("pause")
	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Client().Pause(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output("Paused")
	return 0
}

// UnpauseCommand resumes the deposit trigger
type UnpauseCommand struct {
	*Meta
}

// Help implements the cli.Command interface
func (c *UnpauseCommand) Help() string {
	return `Usage: stakewarden unpause -caller 0x..

  Resumes the deposit trigger.`
}

// Synopsis implements the cli.Command interface
func (c *UnpauseCommand) Synopsis() string {
	return "Resumes the deposit trigger"
}

// Run implements the cli.Command interface
func (c *UnpauseCommand) Run(args []string) int {
	flags := c.FlagSet("unpause")
	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Client().Unpause(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output("Unpaused")
	return 0
}
