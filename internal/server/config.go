package server

import (
	"github.com/stakewarden/stakewarden/internal/vault"
)

type Config struct {
	Name     string
	BindAddr string

	// Owner is the address holding the mutation capability
	Owner string

	// CollateralEth is the per-record collateral in ether
	CollateralEth uint64

	// MaxAddBatch is the per-call record staging limit
	MaxAddBatch uint64

	// DepositLimit is the per-deposit record ceiling
	DepositLimit uint64

	// Eth1Addr is the jsonrpc endpoint of the execution node. Empty
	// selects the dev acceptor, which accepts every submission.
	Eth1Addr string

	// DepositContract is the address of the deposit acceptance contract
	DepositContract string

	// FundingKey is the hex private key used to send forwarded deposits
	FundingKey string

	// DatabaseURL enables the Postgres audit sink when set
	DatabaseURL string

	// EventBuffer is the number of recent events served over the api
	EventBuffer int
}

func DefaultConfig() *Config {
	return &Config{
		Name:          "stakewarden",
		BindAddr:      "localhost:4780",
		CollateralEth: 32,
		MaxAddBatch:   vault.MaxAddBatchSize,
		DepositLimit:  vault.DepositLimit,
		EventBuffer:   512,
	}
}
