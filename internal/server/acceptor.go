package server

import (
	"encoding/hex"
	"math/big"

	"github.com/hashicorp/go-hclog"
	"github.com/umbracle/ethgo"
)

// devAcceptor accepts every submission without touching a chain. It backs
// local runs and tests.
type devAcceptor struct {
	logger hclog.Logger
}

func newDevAcceptor(logger hclog.Logger) *devAcceptor {
	return &devAcceptor{logger: logger.Named("acceptor")}
}

func (d *devAcceptor) Address() ethgo.Address {
	return ethgo.Address{}
}

func (d *devAcceptor) Submit(pubkey, withdrawalCredentials, signature, root []byte, value *big.Int) error {
	d.logger.Info("deposit accepted (dev)", "pubkey", "0x"+hex.EncodeToString(pubkey), "value", value.String())
	return nil
}
