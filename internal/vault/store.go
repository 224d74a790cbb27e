package vault

import (
	"fmt"

	"github.com/umbracle/ethgo"
)

const (
	// PubkeyLength is the byte length of a BLS validator public key
	PubkeyLength = 48

	// WithdrawalCredentialsLength is the byte length of the withdrawal
	// credentials commitment
	WithdrawalCredentialsLength = 32

	// SignatureLength is the byte length of a BLS deposit signature
	SignatureLength = 96

	// RootLength is the byte length of the deposit data root
	RootLength = 32
)

// Record holds the deposit parameters for one validator
type Record struct {
	Pubkey                []byte
	WithdrawalCredentials []byte
	Signature             []byte
	Root                  []byte
}

func (r *Record) validate() error {
	if len(r.Pubkey) != PubkeyLength {
		return fmt.Errorf("pubkey must be %d bytes, got %d", PubkeyLength, len(r.Pubkey))
	}
	if len(r.WithdrawalCredentials) != WithdrawalCredentialsLength {
		return fmt.Errorf("withdrawal credentials must be %d bytes, got %d", WithdrawalCredentialsLength, len(r.WithdrawalCredentials))
	}
	if len(r.Signature) != SignatureLength {
		return fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(r.Signature))
	}
	if len(r.Root) != RootLength {
		return fmt.Errorf("root must be %d bytes, got %d", RootLength, len(r.Root))
	}
	return nil
}

func (r *Record) copy() *Record {
	return &Record{
		Pubkey:                append([]byte{}, r.Pubkey...),
		WithdrawalCredentials: append([]byte{}, r.WithdrawalCredentials...),
		Signature:             append([]byte{}, r.Signature...),
		Root:                  append([]byte{}, r.Root...),
	}
}

// queue is the staged deposit batch of one staker. The records are kept as
// four parallel slices and every mutation touches all four together, the
// slices never diverge in length.
type queue struct {
	pubkeys [][]byte
	creds   [][]byte
	sigs    [][]byte
	roots   [][]byte
}

func (q *queue) size() uint64 {
	return uint64(len(q.pubkeys))
}

func (q *queue) at(index uint64) *Record {
	r := &Record{
		Pubkey:                q.pubkeys[index],
		WithdrawalCredentials: q.creds[index],
		Signature:             q.sigs[index],
		Root:                  q.roots[index],
	}
	return r.copy()
}

// store owns every staker queue. It is not safe for concurrent use, the
// vault serializes access to it.
type store struct {
	queues map[ethgo.Address]*queue
}

func newStore() *store {
	return &store{
		queues: map[ethgo.Address]*queue{},
	}
}

// get returns the queue for the staker, or an empty queue if none exists.
// The result must not be mutated directly.
func (s *store) get(staker ethgo.Address) *queue {
	q, ok := s.queues[staker]
	if !ok {
		return &queue{}
	}
	return q
}

func (s *store) append(staker ethgo.Address, record *Record) {
	q, ok := s.queues[staker]
	if !ok {
		q = &queue{}
		s.queues[staker] = q
	}
	record = record.copy()
	q.pubkeys = append(q.pubkeys, record.Pubkey)
	q.creds = append(q.creds, record.WithdrawalCredentials)
	q.sigs = append(q.sigs, record.Signature)
	q.roots = append(q.roots, record.Root)
}

func (s *store) setAt(staker ethgo.Address, index uint64, record *Record) error {
	q := s.get(staker)
	if index >= q.size() {
		return fmt.Errorf("%w: index %d, queue length %d", ErrIndexOutOfRange, index, q.size())
	}
	record = record.copy()
	q.pubkeys[index] = record.Pubkey
	q.creds[index] = record.WithdrawalCredentials
	q.sigs[index] = record.Signature
	q.roots[index] = record.Root
	return nil
}

func (s *store) popLastN(staker ethgo.Address, n uint64) error {
	q := s.get(staker)
	if n > q.size() {
		return fmt.Errorf("%w: cannot remove %d entries from a queue of %d", ErrIndexOutOfRange, n, q.size())
	}
	keep := q.size() - n
	q.pubkeys = q.pubkeys[:keep]
	q.creds = q.creds[:keep]
	q.sigs = q.sigs[:keep]
	q.roots = q.roots[:keep]
	return nil
}

// clear drops the staker's whole queue and returns the previous count
func (s *store) clear(staker ethgo.Address) uint64 {
	q, ok := s.queues[staker]
	if !ok {
		return 0
	}
	count := q.size()
	delete(s.queues, staker)
	return count
}

func (s *store) numStakers() int {
	return len(s.queues)
}
