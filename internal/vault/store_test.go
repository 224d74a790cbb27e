package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (q *queue) parallel() bool {
	n := len(q.pubkeys)
	return len(q.creds) == n && len(q.sigs) == n && len(q.roots) == n
}

func TestStore_GetAbsent(t *testing.T) {
	s := newStore()

	q := s.get(stakerA)
	assert.Equal(t, uint64(0), q.size())
	assert.Equal(t, 0, s.numStakers())
}

func TestStore_AppendAndSet(t *testing.T) {
	s := newStore()

	for i := 0; i < 3; i++ {
		s.append(stakerA, makeRecord(byte(i)))
	}
	q := s.get(stakerA)
	assert.Equal(t, uint64(3), q.size())
	assert.True(t, q.parallel())

	err := s.setAt(stakerA, 3, makeRecord(0xff))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	err = s.setAt(stakerB, 0, makeRecord(0xff))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, s.setAt(stakerA, 2, makeRecord(0xff)))
	assert.Equal(t, byte(0xff), s.get(stakerA).at(2).Pubkey[0])
	assert.Equal(t, byte(1), s.get(stakerA).at(1).Pubkey[0])
}

func TestStore_AppendCopiesRecord(t *testing.T) {
	s := newStore()

	record := makeRecord(7)
	s.append(stakerA, record)

	// mutating the caller's buffers does not reach the store
	record.Pubkey[0] = 0xaa
	assert.Equal(t, byte(7), s.get(stakerA).at(0).Pubkey[0])
}

func TestStore_PopLastN(t *testing.T) {
	s := newStore()

	for i := 0; i < 4; i++ {
		s.append(stakerA, makeRecord(byte(i)))
	}

	err := s.popLastN(stakerA, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, s.popLastN(stakerA, 3))
	q := s.get(stakerA)
	assert.Equal(t, uint64(1), q.size())
	assert.True(t, q.parallel())
	assert.Equal(t, byte(0), q.at(0).Pubkey[0])
}

func TestStore_Clear(t *testing.T) {
	s := newStore()

	for i := 0; i < 2; i++ {
		s.append(stakerA, makeRecord(byte(i)))
	}
	s.append(stakerB, makeRecord(9))

	assert.Equal(t, uint64(2), s.clear(stakerA))
	assert.Equal(t, uint64(0), s.clear(stakerA))
	assert.Equal(t, uint64(0), s.get(stakerA).size())

	// other stakers are untouched
	assert.Equal(t, uint64(1), s.get(stakerB).size())
	assert.Equal(t, 1, s.numStakers())
}
