package deposit

import (
	"testing"

	"github.com/stakewarden/stakewarden/internal/bls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"
)

func TestInput(t *testing.T) {
	key := bls.NewRandomKey()

	data, err := Input(key, nil, GweiAmount)
	require.NoError(t, err)

	assert.Len(t, data.Pubkey, 48)
	assert.Len(t, data.WithdrawalCredentials, 32)
	assert.Len(t, data.Signature, 96)
	assert.Equal(t, GweiAmount, data.Amount)
	assert.NotEqual(t, [32]byte{}, data.Root)

	// the record is internally consistent
	assert.NoError(t, Verify(data))

	// a separate withdrawal key changes the credentials but the deposit
	// still verifies
	withdrawal := bls.NewRandomKey()
	data2, err := Input(key, withdrawal, GweiAmount)
	require.NoError(t, err)
	assert.NotEqual(t, data.WithdrawalCredentials, data2.WithdrawalCredentials)
	assert.NoError(t, Verify(data2))
}

func TestInput_Deterministic(t *testing.T) {
	key := bls.NewRandomKey()

	data1, err := Input(key, nil, GweiAmount)
	require.NoError(t, err)
	data2, err := Input(key, nil, GweiAmount)
	require.NoError(t, err)

	assert.Equal(t, data1.Root, data2.Root)

	// the amount is part of the signed message
	data3, err := Input(key, nil, GweiAmount+1)
	require.NoError(t, err)
	assert.NotEqual(t, data1.Root, data3.Root)
	assert.NotEqual(t, data1.Signature, data3.Signature)
}

func TestVerify_Tampered(t *testing.T) {
	key := bls.NewRandomKey()

	data, err := Input(key, nil, GweiAmount)
	require.NoError(t, err)

	// tampered amount breaks both the root and the signature
	tampered := *data
	tampered.Amount++
	assert.Error(t, Verify(&tampered))

	// tampered root only breaks the root commitment
	tampered = *data
	tampered.Root[0] ^= 0xff
	assert.Error(t, Verify(&tampered))

	// foreign signature
	other := bls.NewRandomKey()
	foreign, err := Input(other, nil, GweiAmount)
	require.NoError(t, err)

	tampered = *data
	tampered.Signature = foreign.Signature
	assert.Error(t, Verify(&tampered))
}

func TestCredentials(t *testing.T) {
	key := bls.NewRandomKey()

	creds := BLSCredentials(key)
	assert.Len(t, creds, 32)
	assert.Equal(t, byte(0x00), creds[0])

	addr := ethgo.HexToAddress("0x1000000000000000000000000000000000000001")
	execCreds := ExecutionCredentials(addr)
	assert.Len(t, execCreds, 32)
	assert.Equal(t, byte(0x01), execCreds[0])
	assert.Equal(t, make([]byte, 11), execCreds[1:12])
	assert.Equal(t, addr.Bytes(), execCreds[12:])
}

func TestHashTreeRoot_BadLengths(t *testing.T) {
	msg := &DepositMessage{
		Pubkey:                make([]byte, 47),
		WithdrawalCredentials: make([]byte, 32),
	}
	_, err := msg.HashTreeRoot()
	assert.Error(t, err)

	data := &DepositData{
		Pubkey:                make([]byte, 48),
		WithdrawalCredentials: make([]byte, 32),
		Signature:             make([]byte, 95),
	}
	_, err = data.HashTreeRoot()
	assert.Error(t, err)
}
