package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/stakewarden/stakewarden/internal/api"
	"github.com/stakewarden/stakewarden/internal/bls"
	"github.com/stakewarden/stakewarden/internal/deposit"
)

// RecordsGenerateCommand creates fresh validator keys and signed deposit
// records for them
type RecordsGenerateCommand struct {
	*Meta

	num               uint64
	withdrawalAddress string
	out               string
	keysOut           string
}

// Help implements the cli.Command interface
func (c *RecordsGenerateCommand) Help() string {
	return `Usage: stakewarden records generate -num 10 [options]

  Generates validator keys and a batch of signed deposit records for them,
  in the form 'records add' consumes. With -withdrawal-address the records
  use 0x01 execution credentials, otherwise 0x00 bls credentials derived
  from each validator key.

  The validator secret keys are written to the -keys file, keep it safe.`
}

// Synopsis implements the cli.Command interface
func (c *RecordsGenerateCommand) Synopsis() string {
	return "Generates validator keys and deposit records"
}

type generatedKey struct {
	Pubkey string `json:"pubkey"`
	Priv   string `json:"priv"`
}

// Run implements the cli.Command interface
func (c *RecordsGenerateCommand) Run(args []string) int {
	flags := c.FlagSet("records generate")

	flags.Uint64Var(&c.num, "num", 1, "")
	flags.StringVar(&c.withdrawalAddress, "withdrawal-address", "", "")
	flags.StringVar(&c.out, "out", "records.json", "")
	flags.StringVar(&c.keysOut, "keys", "keys.json", "")

	if err := flags.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if c.num == 0 {
		c.UI.Error("at least one record is required")
		return 1
	}

	var execCreds []byte
	if c.withdrawalAddress != "" {
		addr, err := api.ParseAddress(c.withdrawalAddress)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		execCreds = deposit.ExecutionCredentials(addr)
	}

	records := []*api.RecordStub{}
	keys := []*generatedKey{}

	for i := uint64(0); i < c.num; i++ {
		key := bls.NewRandomKey()

		var data *deposit.DepositData
		var err error
		if execCreds != nil {
			data, err = deposit.InputWithCredentials(key, execCreds, deposit.GweiAmount)
		} else {
			data, err = deposit.Input(key, nil, deposit.GweiAmount)
		}
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}

		records = append(records, &api.RecordStub{
			Pubkey:                data.Pubkey,
			WithdrawalCredentials: data.WithdrawalCredentials,
			Signature:             data.Signature,
			Root:                  data.Root[:],
		})
		pubKey := key.PubKey()
		keys = append(keys, &generatedKey{
			Pubkey: "0x" + hex.EncodeToString(pubKey[:]),
			Priv:   "0x" + hex.EncodeToString(key.Prv()),
		})
	}

	recordsRaw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := ioutil.WriteFile(c.out, recordsRaw, 0644); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	keysRaw, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := ioutil.WriteFile(c.keysOut, keysRaw, 0600); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(formatKV([]string{
		fmt.Sprintf("Records|%d", len(records)),
		fmt.Sprintf("Records file|%s", c.out),
		fmt.Sprintf("Keys file|%s", c.keysOut),
	}))
	return 0
}
