package server

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/mitchellh/cli"

	"github.com/stakewarden/stakewarden/internal/server"
)

// Command is the command that starts the vault server
type Command struct {
	UI       cli.Ui
	server   *server.Server
	logLevel string
}

// Help implements the cli.Command interface
func (c *Command) Help() string {
	return `Usage: stakewarden server [options]

  Starts the vault server: the record store, the deposit trigger and the
  http api.

  The funding key and the audit database url are read from the
  STAKEWARDEN_FUNDING_KEY and DATABASE_URL environment variables, a .env
  file next to the binary is loaded if present.`
}

// Synopsis implements the cli.Command interface
func (c *Command) Synopsis() string {
	return "Starts the vault server"
}

// Run implements the cli.Command interface
func (c *Command) Run(args []string) int {
	config, err := c.readConfig(args)
	if err != nil {
		c.UI.Output(fmt.Sprintf("failed to read config: %v", err))
		return 1
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "stakewarden",
		Level: hclog.LevelFromString(c.logLevel),
	})
	srv, err := server.NewServer(logger, config)
	if err != nil {
		c.UI.Output(fmt.Sprintf("failed to start server: %v", err))
		return 1
	}
	c.server = srv

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return c.handleSignals(errCh)
}

func (c *Command) handleSignals(errCh chan error) int {
	signalCh := make(chan os.Signal, 4)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case err := <-errCh:
		c.UI.Output(fmt.Sprintf("server failed: %v", err))
		return 1
	case sig := <-signalCh:
		c.UI.Output(fmt.Sprintf("Caught signal: %v", sig))
	}
	c.UI.Output("Gracefully shutting down server...")

	gracefulCh := make(chan struct{})
	go func() {
		c.server.Stop()
		close(gracefulCh)
	}()

	select {
	case <-signalCh:
		return 1
	case <-gracefulCh:
		return 0
	}
}

func (c *Command) readConfig(args []string) (*server.Config, error) {
	config := server.DefaultConfig()

	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	flags.Usage = func() { c.UI.Error(c.Help()) }

	flags.StringVar(&config.Name, "name", config.Name, "")
	flags.StringVar(&config.BindAddr, "bind", config.BindAddr, "")
	flags.StringVar(&config.Owner, "owner", "", "")
	flags.Uint64Var(&config.CollateralEth, "collateral", config.CollateralEth, "")
	flags.Uint64Var(&config.MaxAddBatch, "max-add-batch", config.MaxAddBatch, "")
	flags.Uint64Var(&config.DepositLimit, "deposit-limit", config.DepositLimit, "")
	flags.StringVar(&config.Eth1Addr, "eth1-addr", "", "")
	flags.StringVar(&config.DepositContract, "deposit-contract", "", "")
	flags.StringVar(&c.logLevel, "log-level", "info", "")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// secrets come from the environment, a local .env is honored
	_ = godotenv.Load()
	config.FundingKey = os.Getenv("STAKEWARDEN_FUNDING_KEY")
	config.DatabaseURL = os.Getenv("DATABASE_URL")

	if config.Owner == "" {
		return nil, fmt.Errorf("an owner address is required")
	}
	return config, nil
}
