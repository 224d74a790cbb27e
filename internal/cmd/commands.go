package cmd

import (
	"flag"
	"os"

	"github.com/mitchellh/cli"
	"github.com/ryanuber/columnize"

	"github.com/stakewarden/stakewarden/internal/api"
	"github.com/stakewarden/stakewarden/internal/cmd/server"
)

// Commands returns the cli commands
func Commands() map[string]cli.CommandFactory {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	meta := &Meta{
		UI: ui,
	}

	return map[string]cli.CommandFactory{
		"server": func() (cli.Command, error) {
			return &server.Command{
				UI: ui,
			}, nil
		},
		"records add": func() (cli.Command, error) {
			return &RecordsAddCommand{
				Meta: meta,
			}, nil
		},
		"records generate": func() (cli.Command, error) {
			return &RecordsGenerateCommand{
				Meta: meta,
			}, nil
		},
		"records edit": func() (cli.Command, error) {
			return &RecordsEditCommand{
				Meta: meta,
			}, nil
		},
		"records delete": func() (cli.Command, error) {
			return &RecordsDeleteCommand{
				Meta: meta,
			}, nil
		},
		"staker show": func() (cli.Command, error) {
			return &StakerShowCommand{
				Meta: meta,
			}, nil
		},
		"deposit": func() (cli.Command, error) {
			return &DepositCommand{
				Meta: meta,
			}, nil
		},
		"pause": func() (cli.Command, error) {
			return &PauseCommand{
				Meta: meta,
			}, nil
		},
		"unpause": func() (cli.Command, error) {
			return &UnpauseCommand{
				Meta: meta,
			}, nil
		},
		"owner transfer": func() (cli.Command, error) {
			return &OwnerTransferCommand{
				Meta: meta,
			}, nil
		},
		"status": func() (cli.Command, error) {
			return &StatusCommand{
				Meta: meta,
			}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{
				UI: ui,
			}, nil
		},
	}
}

type Meta struct {
	UI cli.Ui

	addr   string
	caller string
}

func (m *Meta) FlagSet(n string) *flag.FlagSet {
	f := flag.NewFlagSet(n, flag.ContinueOnError)
	f.StringVar(&m.addr, "address", "http://localhost:4780", "Address of the http api")
	f.StringVar(&m.caller, "caller", "", "Identity mutating calls are made as")
	return f
}

// Client returns an api client against the server
func (m *Meta) Client() *api.Client {
	return api.NewClient(m.addr, m.caller)
}

func formatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	return columnize.Format(in, columnConf)
}

func formatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "
	return columnize.Format(in, columnConf)
}
