package server

import (
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"

	"github.com/stakewarden/stakewarden/internal/api"
)

const (
	ownerAddr  = "0x1000000000000000000000000000000000000001"
	stakerAddr = "0x2000000000000000000000000000000000000002"
	otherAddr  = "0x3000000000000000000000000000000000000003"
)

func newTestServer(t *testing.T) (*api.Client, *api.Client, func()) {
	t.Helper()

	config := DefaultConfig()
	config.Owner = ownerAddr

	srv, err := NewServer(hclog.NewNullLogger(), config)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.http)

	ownerClient := api.NewClient(ts.URL, ownerAddr)
	anonClient := api.NewClient(ts.URL, "")
	return ownerClient, anonClient, ts.Close
}

func recordStub(tag byte) *api.RecordStub {
	pubkey := make([]byte, 48)
	pubkey[0] = tag
	return &api.RecordStub{
		Pubkey:                pubkey,
		WithdrawalCredentials: make([]byte, 32),
		Signature:             make([]byte, 96),
		Root:                  make([]byte, 32),
	}
}

func depositValue(n uint64) string {
	return new(big.Int).Mul(ethgo.Ether(32), new(big.Int).SetUint64(n)).String()
}

func TestServer_AddAndGet(t *testing.T) {
	owner, anon, close := newTestServer(t)
	defer close()

	resp, err := owner.AddRecords(stakerAddr, &api.AddRecordsRequest{
		Records: []*api.RecordStub{recordStub(0), recordStub(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), resp.Added)
	assert.Equal(t, uint64(2), resp.QueueLength)

	// the query surface is open and returns parallel sequences
	data, err := anon.Staker(stakerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), data.Count)
	assert.Len(t, data.Pubkeys, 2)
	assert.Len(t, data.WithdrawalCredentials, 2)
	assert.Len(t, data.Signatures, 2)
	assert.Len(t, data.Roots, 2)
	assert.Equal(t, byte(1), data.Pubkeys[1][0])

	// mutations need the owner identity
	_, err = anon.AddRecords(stakerAddr, &api.AddRecordsRequest{
		Records: []*api.RecordStub{recordStub(2)},
	})
	assert.Error(t, err)
}

func TestServer_DepositFlow(t *testing.T) {
	owner, anon, close := newTestServer(t)
	defer close()

	_, err := owner.AddRecords(stakerAddr, &api.AddRecordsRequest{
		Records: []*api.RecordStub{recordStub(0), recordStub(1), recordStub(2)},
	})
	require.NoError(t, err)

	// wrong value
	_, err = anon.Deposit(&api.DepositRequest{From: stakerAddr, Value: depositValue(2)})
	assert.Error(t, err)

	// sender without records
	_, err = anon.Deposit(&api.DepositRequest{From: otherAddr, Value: depositValue(3)})
	assert.Error(t, err)

	// exact value consumes the whole queue
	resp, err := anon.Deposit(&api.DepositRequest{From: stakerAddr, Value: depositValue(3)})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), resp.Records)

	data, err := anon.Staker(stakerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), data.Count)

	// the deposit shows up in the event feed
	events, err := anon.Events(1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "deposited", events[0].Type)
	assert.Equal(t, uint64(3), events[0].Count)
	assert.NotEmpty(t, events[0].ID)
}

func TestServer_EditAndDelete(t *testing.T) {
	owner, anon, close := newTestServer(t)
	defer close()

	_, err := owner.AddRecords(stakerAddr, &api.AddRecordsRequest{
		Records: []*api.RecordStub{recordStub(0), recordStub(1), recordStub(2)},
	})
	require.NoError(t, err)

	// edit past the end
	_, err = owner.EditRecord(stakerAddr, 3, &api.EditRecordRequest{Record: recordStub(0xff)})
	assert.Error(t, err)

	_, err = owner.EditRecord(stakerAddr, 1, &api.EditRecordRequest{Record: recordStub(0xff)})
	require.NoError(t, err)

	data, err := anon.Staker(stakerAddr)
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), data.Pubkeys[1][0])

	// LIFO delete
	resp, err := owner.DeleteLastRecords(stakerAddr, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), resp.QueueLength)

	// clear is idempotent
	wipe, err := owner.DeleteAllRecords(stakerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), wipe.Deleted)

	wipe, err = owner.DeleteAllRecords(stakerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), wipe.Deleted)
}

func TestServer_PauseAndStatus(t *testing.T) {
	owner, anon, close := newTestServer(t)
	defer close()

	_, err := owner.AddRecords(stakerAddr, &api.AddRecordsRequest{
		Records: []*api.RecordStub{recordStub(0)},
	})
	require.NoError(t, err)

	require.NoError(t, owner.Pause())

	status, err := anon.Status()
	require.NoError(t, err)
	assert.True(t, status.Paused)
	assert.Equal(t, ownerAddr, status.Owner)
	assert.Equal(t, 1, status.Stakers)

	// deposits are gated, edits are not
	_, err = anon.Deposit(&api.DepositRequest{From: stakerAddr, Value: depositValue(1)})
	assert.Error(t, err)

	_, err = owner.DeleteAllRecords(stakerAddr)
	assert.NoError(t, err)

	require.NoError(t, owner.Unpause())
	assert.Error(t, owner.Unpause())
}

func TestServer_TransferOwnership(t *testing.T) {
	owner, _, close := newTestServer(t)
	defer close()

	require.NoError(t, owner.TransferOwnership(&api.TransferOwnershipRequest{NewOwner: otherAddr}))

	// the previous owner lost the capability
	_, err := owner.AddRecords(stakerAddr, &api.AddRecordsRequest{
		Records: []*api.RecordStub{recordStub(0)},
	})
	assert.Error(t, err)
}

func TestServer_InvalidOwnerConfig(t *testing.T) {
	config := DefaultConfig()
	config.Owner = ""

	_, err := NewServer(hclog.NewNullLogger(), config)
	assert.Error(t, err)

	config.Owner = "0x0000000000000000000000000000000000000000"
	_, err = NewServer(hclog.NewNullLogger(), config)
	assert.Error(t, err)
}
