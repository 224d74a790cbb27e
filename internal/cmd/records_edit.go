package cmd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/stakewarden/stakewarden/internal/api"
)

// RecordsEditCommand overwrites one staged record in place
type RecordsEditCommand struct {
	*Meta

	staker string
	index  uint64
	file   string
}

// Help implements the cli.Command interface
func (c *RecordsEditCommand) Help() string {
	return `Usage: stakewarden records edit -staker 0x.. -index 0 -file record.json

  Overwrites the record at the index in the staker's queue. The file holds
  one record object.`
}

// Synopsis implements the cli.Command interface
func (c *RecordsEditCommand) Synopsis() string {
	return "Overwrites one staged record"
}

// Run implements the cli.Command interface
func (c *RecordsEditCommand) Run(args []string) int {
	flags := c.FlagSet("records edit")

	flags.StringVar(&c.staker, "staker", "", "")
	flags.Uint64Var(&c.index, "index", 0, "")
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
	var record *api.RecordStub
	if err := json.Unmarshal(data, &record); err != nil {
		c.UI.Error(fmt.Sprintf("failed to decode the record: %v", err))
		return 1
	}

	resp, err := c.Client().EditRecord(c.staker, c.index, &api.EditRecordRequest{Record: record})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(formatKV([]string{
		fmt.Sprintf("Staker|%s", resp.Staker),
		fmt.Sprintf("Index|%d", resp.Index),
	}))
	return 0
}
