package bls

import (
	"crypto/rand"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"
)

// domain separation tag for the proof-of-possession signature scheme used
// by the beacon chain
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

const (
	PubKeyLength    = 48
	SignatureLength = 96
	SecretKeyLength = 32
)

// Key is a BLS12-381 key pair on the min-pk scheme
type Key struct {
	prv *blst.SecretKey
	pub *blst.P1Affine
}

func NewRandomKey() *Key {
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		panic(fmt.Errorf("BUG: failed to read entropy %v", err))
	}
	prv := blst.KeyGen(ikm[:])
	return &Key{
		prv: prv,
		pub: new(blst.P1Affine).From(prv),
	}
}

func NewKeyFromPriv(priv []byte) (*Key, error) {
	if len(priv) != SecretKeyLength {
		return nil, fmt.Errorf("secret key must be %d bytes, got %d", SecretKeyLength, len(priv))
	}
	prv := new(blst.SecretKey).Deserialize(priv)
	if prv == nil {
		return nil, fmt.Errorf("failed to deserialize secret key")
	}
	return &Key{
		prv: prv,
		pub: new(blst.P1Affine).From(prv),
	}, nil
}

func (k *Key) PubKey() (out [PubKeyLength]byte) {
	copy(out[:], k.pub.Compress())
	return
}

func (k *Key) Prv() []byte {
	return k.prv.Serialize()
}

// Sign signs a 32 byte root
func (k *Key) Sign(root [32]byte) ([]byte, error) {
	sig := new(blst.P2Affine).Sign(k.prv, root[:], dst)
	if sig == nil {
		return nil, fmt.Errorf("failed to sign")
	}
	return sig.Compress(), nil
}

// Verify checks a signature made with Sign against the root
func Verify(pub [PubKeyLength]byte, root [32]byte, signature []byte) bool {
	if len(signature) != SignatureLength {
		return false
	}
	sig := new(blst.P2Affine).Uncompress(signature)
	if sig == nil {
		return false
	}
	pk := new(blst.P1Affine).Uncompress(pub[:])
	if pk == nil {
		return false
	}
	return sig.Verify(true, pk, true, root[:], dst)
}
