package deposit

import (
	"math/big"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/contract"
	"github.com/umbracle/ethgo/jsonrpc"
	"github.com/umbracle/ethgo/wallet"
)

// ChainAcceptor forwards deposits to the on-chain deposit contract. Each
// submission is one transaction carrying the collateral value, sent and
// waited on before the next one starts.
type ChainAcceptor struct {
	logger   hclog.Logger
	contract *Contract
}

func NewChainAcceptor(logger hclog.Logger, eth1Addr string, depositAddr ethgo.Address, key *wallet.Key) (*ChainAcceptor, error) {
	client, err := jsonrpc.NewClient(eth1Addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to the eth1 endpoint")
	}

	code, err := client.Eth().GetCode(depositAddr, ethgo.Latest)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query the deposit contract")
	}
	if code == "0x" {
		return nil, errors.Errorf("no deposit contract deployed at %s", depositAddr.String())
	}

	acceptor := &ChainAcceptor{
		logger:   logger.Named("acceptor"),
		contract: NewContract(depositAddr, contract.WithJsonRPC(client.Eth()), contract.WithSender(key)),
	}
	return acceptor, nil
}

func (a *ChainAcceptor) Address() ethgo.Address {
	return a.contract.Addr()
}

func (a *ChainAcceptor) Submit(pubkey, withdrawalCredentials, signature, root []byte, value *big.Int) error {
	var dataRoot [32]byte
	copy(dataRoot[:], root)

	txn, err := a.contract.Deposit(pubkey, withdrawalCredentials, signature, dataRoot)
	if err != nil {
		return errors.Wrap(err, "failed to build the deposit transaction")
	}
	txn.WithOpts(&contract.TxnOpts{Value: value})

	if err := txn.Do(); err != nil {
		return errors.Wrap(err, "failed to send the deposit transaction")
	}
	receipt, err := txn.Wait()
	if err != nil {
		return errors.Wrap(err, "deposit transaction not mined")
	}

	a.logger.Info("deposit forwarded", "txn", receipt.TransactionHash.String(), "value", value.String())
	return nil
}
