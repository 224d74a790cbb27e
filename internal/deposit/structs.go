package deposit

import (
	ssz "github.com/ferranbt/fastssz"
)

// DepositData is the full deposit container submitted to the acceptor
// contract. Root is the hash tree root of the container, it is carried
// alongside rather than inside it.
type DepositData struct {
	Pubkey                []byte   `json:"pubkey" ssz-size:"48"`
	WithdrawalCredentials []byte   `json:"withdrawal_credentials" ssz-size:"32"`
	Amount                uint64   `json:"amount"`
	Signature             []byte   `json:"signature" ssz-size:"96"`
	Root                  [32]byte `ssz:"-"`
}

// DepositMessage is the unsigned part of the deposit, its root is what the
// validator key signs.
type DepositMessage struct {
	Pubkey                []byte `json:"pubkey" ssz-size:"48"`
	WithdrawalCredentials []byte `json:"withdrawal_credentials" ssz-size:"32"`
	Amount                uint64 `json:"amount"`
}

type SigningData struct {
	ObjectRoot []byte `ssz-size:"32"`
	Domain     []byte `ssz-size:"32"`
}

type ForkData struct {
	CurrentVersion        [4]byte
	GenesisValidatorsRoot []byte `ssz-size:"32"`
}

func (d *DepositData) GetTree() (*ssz.Node, error) {
	return ssz.ProofTree(d)
}

func (d *DepositData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(d)
}

func (d *DepositData) HashTreeRootWith(hh ssz.HashWalker) error {
	indx := hh.Index()

	if size := len(d.Pubkey); size != 48 {
		return ssz.ErrBytesLengthFn("DepositData.Pubkey", size, 48)
	}
	hh.PutBytes(d.Pubkey)

	if size := len(d.WithdrawalCredentials); size != 32 {
		return ssz.ErrBytesLengthFn("DepositData.WithdrawalCredentials", size, 32)
	}
	hh.PutBytes(d.WithdrawalCredentials)

	hh.PutUint64(d.Amount)

	if size := len(d.Signature); size != 96 {
		return ssz.ErrBytesLengthFn("DepositData.Signature", size, 96)
	}
	hh.PutBytes(d.Signature)

	hh.Merkleize(indx)
	return nil
}

func (d *DepositMessage) GetTree() (*ssz.Node, error) {
	return ssz.ProofTree(d)
}

func (d *DepositMessage) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(d)
}

func (d *DepositMessage) HashTreeRootWith(hh ssz.HashWalker) error {
	indx := hh.Index()

	if size := len(d.Pubkey); size != 48 {
		return ssz.ErrBytesLengthFn("DepositMessage.Pubkey", size, 48)
	}
	hh.PutBytes(d.Pubkey)

	if size := len(d.WithdrawalCredentials); size != 32 {
		return ssz.ErrBytesLengthFn("DepositMessage.WithdrawalCredentials", size, 32)
	}
	hh.PutBytes(d.WithdrawalCredentials)

	hh.PutUint64(d.Amount)

	hh.Merkleize(indx)
	return nil
}

func (s *SigningData) GetTree() (*ssz.Node, error) {
	return ssz.ProofTree(s)
}

func (s *SigningData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(s)
}

func (s *SigningData) HashTreeRootWith(hh ssz.HashWalker) error {
	indx := hh.Index()

	if size := len(s.ObjectRoot); size != 32 {
		return ssz.ErrBytesLengthFn("SigningData.ObjectRoot", size, 32)
	}
	hh.PutBytes(s.ObjectRoot)

	if size := len(s.Domain); size != 32 {
		return ssz.ErrBytesLengthFn("SigningData.Domain", size, 32)
	}
	hh.PutBytes(s.Domain)

	hh.Merkleize(indx)
	return nil
}

func (f *ForkData) GetTree() (*ssz.Node, error) {
	return ssz.ProofTree(f)
}

func (f *ForkData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(f)
}

func (f *ForkData) HashTreeRootWith(hh ssz.HashWalker) error {
	indx := hh.Index()

	hh.PutBytes(f.CurrentVersion[:])

	if size := len(f.GenesisValidatorsRoot); size != 32 {
		return ssz.ErrBytesLengthFn("ForkData.GenesisValidatorsRoot", size, 32)
	}
	hh.PutBytes(f.GenesisValidatorsRoot)

	hh.Merkleize(indx)
	return nil
}
