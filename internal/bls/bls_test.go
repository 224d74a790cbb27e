package bls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_SignAndVerify(t *testing.T) {
	key := NewRandomKey()

	root := [32]byte{0x1}
	sig, err := key.Sign(root)
	require.NoError(t, err)
	assert.Len(t, sig, SignatureLength)

	assert.True(t, Verify(key.PubKey(), root, sig))

	// wrong root
	assert.False(t, Verify(key.PubKey(), [32]byte{0x2}, sig))

	// wrong key
	other := NewRandomKey()
	assert.False(t, Verify(other.PubKey(), root, sig))

	// malformed signature
	assert.False(t, Verify(key.PubKey(), root, sig[:95]))
}

func TestKey_FromPriv(t *testing.T) {
	key := NewRandomKey()

	recovered, err := NewKeyFromPriv(key.Prv())
	require.NoError(t, err)
	assert.Equal(t, key.PubKey(), recovered.PubKey())

	_, err = NewKeyFromPriv([]byte{0x1, 0x2})
	assert.Error(t, err)
}
