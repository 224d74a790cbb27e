package deposit

import (
	"encoding/binary"
	"fmt"

	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/abi"
	"github.com/umbracle/ethgo/contract"
)

var depositABI = abi.MustNewABI(`[
	{"name": "deposit", "type": "function", "stateMutability": "payable", "inputs": [{"name": "pubkey", "type": "bytes"}, {"name": "withdrawal_credentials", "type": "bytes"}, {"name": "signature", "type": "bytes"}, {"name": "deposit_data_root", "type": "bytes32"}], "outputs": []},
	{"name": "get_deposit_count", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "bytes"}]},
	{"name": "get_deposit_root", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "bytes32"}]}
]`)

// Contract is the binding for the deposit acceptance contract
type Contract struct {
	addr ethgo.Address
	c    *contract.Contract
}

func NewContract(addr ethgo.Address, opts ...contract.ContractOption) *Contract {
	return &Contract{
		addr: addr,
		c:    contract.NewContract(addr, depositABI, opts...),
	}
}

func (d *Contract) Addr() ethgo.Address {
	return d.addr
}

// Deposit builds the transaction that registers one validator. The caller
// sets the collateral value on the transaction before sending it.
func (d *Contract) Deposit(pubkey []byte, withdrawalCredentials []byte, signature []byte, root [32]byte) (contract.Txn, error) {
	return d.c.Txn("deposit", pubkey, withdrawalCredentials, signature, root)
}

// GetDepositCount returns the number of deposits the contract has accepted
func (d *Contract) GetDepositCount() (uint64, error) {
	res, err := d.c.Call("get_deposit_count", ethgo.Latest)
	if err != nil {
		return 0, err
	}
	raw, ok := res["0"].([]byte)
	if !ok || len(raw) != 8 {
		return 0, fmt.Errorf("unexpected deposit count result")
	}
	return binary.LittleEndian.Uint64(raw), nil
}

// GetDepositRoot returns the contract's incremental merkle root
func (d *Contract) GetDepositRoot() (ethgo.Hash, error) {
	res, err := d.c.Call("get_deposit_root", ethgo.Latest)
	if err != nil {
		return ethgo.Hash{}, err
	}
	raw, ok := res["0"].([32]byte)
	if !ok {
		return ethgo.Hash{}, fmt.Errorf("unexpected deposit root result")
	}
	return ethgo.Hash(raw), nil
}
