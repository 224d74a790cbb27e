package vault

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/umbracle/ethgo"
)

const (
	// MaxAddBatchSize is the maximum number of records a single add call
	// can stage.
	MaxAddBatchSize = 100

	// DepositLimit is the maximum number of records a single deposit can
	// consume. A queue can grow past it over multiple adds, such a queue
	// has to be trimmed before it can be deposited in one transfer.
	DepositLimit = 150
)

// Collateral is the value required per staged record, 32 ether.
var Collateral = ethgo.Ether(32)

// Acceptor is the boundary to the external deposit-acceptance service. One
// call registers one validator and carries exactly the collateral value.
// Any failure is fatal to the deposit that issued it.
type Acceptor interface {
	Address() ethgo.Address
	Submit(pubkey, withdrawalCredentials, signature, root []byte, value *big.Int) error
}

type Config struct {
	Owner        ethgo.Address
	Collateral   *big.Int
	MaxAddBatch  uint64
	DepositLimit uint64
}

func DefaultConfig() *Config {
	return &Config{
		Collateral:   Collateral,
		MaxAddBatch:  MaxAddBatchSize,
		DepositLimit: DepositLimit,
	}
}

// Vault stages deposit records on behalf of stakers and turns an exact
// value transfer from a staker into the forwarding of its whole queue to
// the acceptor. Every entry point runs under one lock, an operation either
// completes or leaves no trace.
type Vault struct {
	logger hclog.Logger
	config *Config

	lock     sync.Mutex
	owner    ethgo.Address
	paused   bool
	store    *store
	acceptor Acceptor
	sinks    []EventSink
}

func NewVault(logger hclog.Logger, config *Config, acceptor Acceptor, sinks ...EventSink) (*Vault, error) {
	if acceptor == nil {
		return nil, errors.New("an acceptor is required")
	}
	if config.Collateral == nil || config.Collateral.Sign() <= 0 {
		return nil, errors.New("collateral must be a positive value")
	}
	v := &Vault{
		logger:   logger.Named("vault"),
		config:   config,
		owner:    config.Owner,
		store:    newStore(),
		acceptor: acceptor,
		sinks:    sinks,
	}
	v.emit(&Event{Type: EventAcceptorBound, Acceptor: acceptor.Address()})
	v.logger.Info("acceptor bound", "addr", acceptor.Address().String())
	return v, nil
}

func (v *Vault) Owner() ethgo.Address {
	v.lock.Lock()
	defer v.lock.Unlock()

	return v.owner
}

func (v *Vault) Paused() bool {
	v.lock.Lock()
	defer v.lock.Unlock()

	return v.paused
}

func (v *Vault) NumStakers() int {
	v.lock.Lock()
	defer v.lock.Unlock()

	return v.store.numStakers()
}

// requireOwner is the single capability check every mutating entry point
// goes through.
func (v *Vault) requireOwner(caller ethgo.Address) error {
	if caller != v.owner {
		return fmt.Errorf("%w: caller %s is not the owner", ErrUnauthorized, caller.String())
	}
	return nil
}

func (v *Vault) Pause(caller ethgo.Address) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if err := v.requireOwner(caller); err != nil {
		return err
	}
	if v.paused {
		return fmt.Errorf("%w: already paused", ErrInvalidState)
	}
	v.paused = true
	v.logger.Info("vault paused")
	return nil
}

func (v *Vault) Unpause(caller ethgo.Address) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if err := v.requireOwner(caller); err != nil {
		return err
	}
	if !v.paused {
		return fmt.Errorf("%w: not paused", ErrInvalidState)
	}
	v.paused = false
	v.logger.Info("vault unpaused")
	return nil
}

func (v *Vault) TransferOwnership(caller, newOwner ethgo.Address) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if err := v.requireOwner(caller); err != nil {
		return err
	}
	if newOwner == (ethgo.Address{}) {
		return fmt.Errorf("%w: new owner is the zero address", ErrInvalidArgument)
	}
	v.owner = newOwner
	v.logger.Info("ownership transferred", "owner", newOwner.String())
	return nil
}

// AddDepositData stages a batch of records for the staker. The four input
// sequences are parallel, they must have the same non-zero length and at
// most MaxAddBatch entries. Individual byte lengths are not checked here,
// a malformed record is caught either by a later edit or by the deposit
// staging pass.
func (v *Vault) AddDepositData(caller, staker ethgo.Address, pubkeys, withdrawalCredentials, signatures, roots [][]byte) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if err := v.requireOwner(caller); err != nil {
		return err
	}

	count := uint64(len(pubkeys))
	if count == 0 {
		return fmt.Errorf("%w: empty record batch", ErrInvalidArgument)
	}
	if uint64(len(withdrawalCredentials)) != count || uint64(len(signatures)) != count || uint64(len(roots)) != count {
		return fmt.Errorf("%w: mismatched batch lengths %d/%d/%d/%d", ErrInvalidArgument,
			len(pubkeys), len(withdrawalCredentials), len(signatures), len(roots))
	}
	if count > v.config.MaxAddBatch {
		return fmt.Errorf("%w: batch of %d exceeds the add limit of %d", ErrInvalidArgument, count, v.config.MaxAddBatch)
	}

	for i := uint64(0); i < count; i++ {
		v.store.append(staker, &Record{
			Pubkey:                pubkeys[i],
			WithdrawalCredentials: withdrawalCredentials[i],
			Signature:             signatures[i],
			Root:                  roots[i],
		})
	}

	v.emit(&Event{Type: EventAdded, Staker: staker, Count: count})
	v.logger.Info("records added", "staker", staker.String(), "count", count, "queue", v.store.get(staker).size())
	return nil
}

// EditDepositData overwrites the record at index in the staker's queue.
// Unlike the add path, the record byte lengths are validated here.
func (v *Vault) EditDepositData(caller, staker ethgo.Address, index uint64, record *Record) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if err := v.requireOwner(caller); err != nil {
		return err
	}
	if err := record.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := v.store.setAt(staker, index, record); err != nil {
		return err
	}

	v.emit(&Event{Type: EventEdited, Staker: staker, Index: index})
	v.logger.Info("record edited", "staker", staker.String(), "index", index)
	return nil
}

// DeleteLastEntries removes the n most recently staged records of the
// staker.
func (v *Vault) DeleteLastEntries(caller, staker ethgo.Address, n uint64) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if err := v.requireOwner(caller); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: zero entries to delete", ErrInvalidArgument)
	}
	if err := v.store.popLastN(staker, n); err != nil {
		return err
	}

	v.emit(&Event{Type: EventDeleted, Staker: staker, Count: n})
	v.logger.Info("records deleted", "staker", staker.String(), "count", n, "queue", v.store.get(staker).size())
	return nil
}

// DeleteAllEntries drops the staker's whole queue. Safe to call on an
// already empty queue.
func (v *Vault) DeleteAllEntries(caller, staker ethgo.Address) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if err := v.requireOwner(caller); err != nil {
		return err
	}
	count := v.store.clear(staker)

	v.emit(&Event{Type: EventDeleted, Staker: staker, Count: count})
	v.logger.Info("queue cleared", "staker", staker.String(), "count", count)
	return nil
}

// Deposit consumes a value transfer from the sender. The value must equal
// the size of the sender's queue times the collateral. On success every
// record has been forwarded to the acceptor, each with exactly the
// collateral value, and the queue is empty. On failure the queue is left
// exactly as it was.
func (v *Vault) Deposit(sender ethgo.Address, value *big.Int) (uint64, error) {
	v.lock.Lock()
	defer v.lock.Unlock()

	if v.paused {
		return 0, fmt.Errorf("%w: deposits are paused", ErrInvalidState)
	}

	q := v.store.get(sender)
	n := q.size()
	if n == 0 {
		return 0, fmt.Errorf("%w: sender %s is not whitelisted", ErrUnauthorized, sender.String())
	}

	expected := new(big.Int).Mul(v.config.Collateral, new(big.Int).SetUint64(n))
	if value == nil || value.Cmp(expected) != 0 {
		got := "<nil>"
		if value != nil {
			got = value.String()
		}
		return 0, fmt.Errorf("%w: deposit of %s does not match %d records at %s collateral", ErrInvalidArgument, got, n, v.config.Collateral.String())
	}
	if n > v.config.DepositLimit {
		return 0, fmt.Errorf("%w: queue of %d exceeds the deposit limit of %d", ErrInvalidArgument, n, v.config.DepositLimit)
	}

	// Stage the batch before any forward. A record that the acceptor is
	// guaranteed to reject fails the whole deposit here, with nothing
	// submitted yet.
	records := make([]*Record, n)
	for i := uint64(0); i < n; i++ {
		records[i] = q.at(i)
		if err := records[i].validate(); err != nil {
			return 0, fmt.Errorf("%w: record %d: %v", ErrInvalidArgument, i, err)
		}
	}

	for i, record := range records {
		if err := v.acceptor.Submit(record.Pubkey, record.WithdrawalCredentials, record.Signature, record.Root, v.config.Collateral); err != nil {
			return 0, errors.Wrapf(err, "record %d of %d not accepted, deposit aborted", i+1, n)
		}
	}

	v.store.clear(sender)

	v.emit(&Event{Type: EventDeposited, Staker: sender, Count: n})
	v.logger.Info("deposit processed", "sender", sender.String(), "records", n, "value", value.String())
	return n, nil
}

// StakerData is the read-only view over one staker queue, four parallel
// sequences in staging order.
type StakerData struct {
	Staker                ethgo.Address `json:"staker"`
	Pubkeys               [][]byte      `json:"pubkeys"`
	WithdrawalCredentials [][]byte      `json:"withdrawal_credentials"`
	Signatures            [][]byte      `json:"signatures"`
	Roots                 [][]byte      `json:"roots"`
}

func (s *StakerData) Count() uint64 {
	return uint64(len(s.Pubkeys))
}

// GetStakerData returns a copy of the staker's current queue. An unknown
// staker yields an empty view.
func (v *Vault) GetStakerData(staker ethgo.Address) *StakerData {
	v.lock.Lock()
	defer v.lock.Unlock()

	q := v.store.get(staker)
	data := &StakerData{
		Staker:                staker,
		Pubkeys:               [][]byte{},
		WithdrawalCredentials: [][]byte{},
		Signatures:            [][]byte{},
		Roots:                 [][]byte{},
	}
	for i := uint64(0); i < q.size(); i++ {
		record := q.at(i)
		data.Pubkeys = append(data.Pubkeys, record.Pubkey)
		data.WithdrawalCredentials = append(data.WithdrawalCredentials, record.WithdrawalCredentials)
		data.Signatures = append(data.Signatures, record.Signature)
		data.Roots = append(data.Roots, record.Root)
	}
	return data
}
