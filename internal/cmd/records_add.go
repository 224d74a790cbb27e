package cmd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/stakewarden/stakewarden/internal/api"
)

// RecordsAddCommand stages a batch of deposit records for a staker
type RecordsAddCommand struct {
	*Meta

	staker string
	file   string
}

// Help implements the cli.Command interface
func (c *RecordsAddCommand) Help() string {
	return `Usage: stakewarden records add -staker 0x.. -file records.json

  Stages the records in the file for the staker. The file holds a json
  array of records as produced by 'records generate'.`
}

// Synopsis implements the cli.Command interface
func (c *RecordsAddCommand) Synopsis() string {
	return "Stages a batch of deposit records"
}

// Run implements the cli.Command interface
func (c *RecordsAddCommand) Run(args []string) int {
	flags := c.FlagSet("records add")

	flags.StringVar(&c.staker, "staker", "", "")
	flags.StringVar(&c.file, "file", "", "")

	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	data, err := ioutil.ReadFile(c.file)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	var records []*api.RecordStub
	if err := json.Unmarshal(data, &records); err != nil {
		c.UI.Error(fmt.Sprintf("failed to decode records: %v", err))
		return 1
	}

	resp, err := c.Client().AddRecords(c.staker, &api.AddRecordsRequest{Records: records})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(formatKV([]string{
		fmt.Sprintf("Staker|%s", resp.Staker),
		fmt.Sprintf("Added|%d", resp.Added),
		fmt.Sprintf("Queue length|%d", resp.QueueLength),
	}))
	return 0
}
