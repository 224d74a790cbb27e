package deposit

import (
	"crypto/sha256"
	"fmt"

	"github.com/stakewarden/stakewarden/internal/bls"
	"github.com/umbracle/ethgo"
)

const (
	// EtherAmount is the collateral per validator in ether
	EtherAmount = 32

	// GweiAmount is the collateral per validator in gwei, the unit the
	// deposit contract accounts in
	GweiAmount = uint64(EtherAmount) * 1000000000
)

// Collateral is the collateral per validator in wei
var Collateral = ethgo.Ether(EtherAmount)

// domain for deposit signatures, deposits are valid across forks so the
// genesis fork version is always used
var (
	depositDomain      = [4]byte{0x03, 0x00, 0x00, 0x00}
	genesisForkVersion = [4]byte{0x00, 0x00, 0x00, 0x00}
)

// Input builds a full signed deposit for the account key. If withdrawalKey
// is nil the account key doubles as the withdrawal key.
func Input(accountKey *bls.Key, withdrawalKey *bls.Key, amountInGwei uint64) (*DepositData, error) {
	if withdrawalKey == nil {
		withdrawalKey = accountKey
	}
	return InputWithCredentials(accountKey, BLSCredentials(withdrawalKey), amountInGwei)
}

// InputWithCredentials builds a full signed deposit with explicit
// withdrawal credentials, for the 0x01 execution address form.
func InputWithCredentials(accountKey *bls.Key, withdrawalCredentials []byte, amountInGwei uint64) (*DepositData, error) {
	pubKey := accountKey.PubKey()
	msg := &DepositMessage{
		Pubkey:                pubKey[:],
		WithdrawalCredentials: withdrawalCredentials,
		Amount:                amountInGwei,
	}
	sigRoot, err := signingRoot(msg)
	if err != nil {
		return nil, err
	}
	signature, err := accountKey.Sign(sigRoot)
	if err != nil {
		return nil, err
	}

	data := &DepositData{
		Pubkey:                msg.Pubkey,
		WithdrawalCredentials: msg.WithdrawalCredentials,
		Amount:                msg.Amount,
		Signature:             signature,
	}
	root, err := data.HashTreeRoot()
	if err != nil {
		return nil, err
	}
	data.Root = root
	return data, nil
}

// Verify checks that the deposit is internally consistent: the signature
// covers the message under the deposit domain and Root commits to the
// container.
func Verify(data *DepositData) error {
	msg := &DepositMessage{
		Pubkey:                data.Pubkey,
		WithdrawalCredentials: data.WithdrawalCredentials,
		Amount:                data.Amount,
	}
	sigRoot, err := signingRoot(msg)
	if err != nil {
		return err
	}

	var pubKey [bls.PubKeyLength]byte
	if len(data.Pubkey) != bls.PubKeyLength {
		return fmt.Errorf("pubkey must be %d bytes", bls.PubKeyLength)
	}
	copy(pubKey[:], data.Pubkey)

	if !bls.Verify(pubKey, sigRoot, data.Signature) {
		return fmt.Errorf("deposit signature does not verify")
	}

	root, err := data.HashTreeRoot()
	if err != nil {
		return err
	}
	if root != data.Root {
		return fmt.Errorf("deposit data root mismatch")
	}
	return nil
}

// BLSCredentials derives 0x00 withdrawal credentials from the withdrawal
// key.
func BLSCredentials(key *bls.Key) []byte {
	pubKey := key.PubKey()
	creds := sha256.Sum256(pubKey[:])
	creds[0] = 0x00
	return creds[:]
}

// ExecutionCredentials derives 0x01 withdrawal credentials pointing at an
// execution layer address.
func ExecutionCredentials(addr ethgo.Address) []byte {
	creds := make([]byte, 32)
	creds[0] = 0x01
	copy(creds[12:], addr.Bytes())
	return creds
}

func signingRoot(msg *DepositMessage) ([32]byte, error) {
	msgRoot, err := msg.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	domain, err := computeDomain(depositDomain, genesisForkVersion)
	if err != nil {
		return [32]byte{}, err
	}
	signing := &SigningData{
		ObjectRoot: msgRoot[:],
		Domain:     domain,
	}
	return signing.HashTreeRoot()
}

func computeDomain(domainType [4]byte, forkVersion [4]byte) ([]byte, error) {
	forkData := &ForkData{
		CurrentVersion:        forkVersion,
		GenesisValidatorsRoot: make([]byte, 32),
	}
	forkRoot, err := forkData.HashTreeRoot()
	if err != nil {
		return nil, err
	}
	domain := make([]byte, 32)
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkRoot[:28])
	return domain, nil
}
