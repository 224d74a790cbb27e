package api

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/umbracle/ethgo"
)

// HexBytes is a byte slice that marshals as a 0x prefixed hex string
type HexBytes []byte

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"0x` + hex.EncodeToString(h) + `"`), nil
}

func (h *HexBytes) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	str = strings.TrimPrefix(str, "0x")

	buf, err := hex.DecodeString(str)
	if err != nil {
		return fmt.Errorf("failed to decode hex: %v", err)
	}
	*h = buf
	return nil
}

// ParseAddress decodes a 0x prefixed 20 byte address
func ParseAddress(str string) (ethgo.Address, error) {
	buf, err := hex.DecodeString(strings.TrimPrefix(str, "0x"))
	if err != nil {
		return ethgo.Address{}, fmt.Errorf("failed to decode address %q: %v", str, err)
	}
	if len(buf) != 20 {
		return ethgo.Address{}, fmt.Errorf("address %q must be 20 bytes", str)
	}
	var addr ethgo.Address
	copy(addr[:], buf)
	return addr, nil
}

// RecordStub is the wire form of one deposit record
type RecordStub struct {
	Pubkey                HexBytes `json:"pubkey"`
	WithdrawalCredentials HexBytes `json:"withdrawal_credentials"`
	Signature             HexBytes `json:"signature"`
	Root                  HexBytes `json:"root"`
}

type AddRecordsRequest struct {
	Records []*RecordStub `json:"records"`
}

type AddRecordsResponse struct {
	Staker      string `json:"staker"`
	Added       uint64 `json:"added"`
	QueueLength uint64 `json:"queue_length"`
}

type EditRecordRequest struct {
	Record *RecordStub `json:"record"`
}

type EditRecordResponse struct {
	Staker string `json:"staker"`
	Index  uint64 `json:"index"`
}

type DeleteRecordsResponse struct {
	Staker      string `json:"staker"`
	Deleted     uint64 `json:"deleted"`
	QueueLength uint64 `json:"queue_length"`
}

// StakerResponse carries the staker queue as four parallel sequences in
// staging order
type StakerResponse struct {
	Staker                string     `json:"staker"`
	Count                 uint64     `json:"count"`
	Pubkeys               []HexBytes `json:"pubkeys"`
	WithdrawalCredentials []HexBytes `json:"withdrawal_credentials"`
	Signatures            []HexBytes `json:"signatures"`
	Roots                 []HexBytes `json:"roots"`
}

type DepositRequest struct {
	From string `json:"from"`
	// Value is the transferred amount in wei, as a decimal string
	Value string `json:"value"`
}

type DepositResponse struct {
	Sender  string `json:"sender"`
	Records uint64 `json:"records"`
	Value   string `json:"value"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type StatusResponse struct {
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	Paused     bool   `json:"paused"`
	Acceptor   string `json:"acceptor"`
	Stakers    int    `json:"stakers"`
	Collateral string `json:"collateral"`
}

type EventStub struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Staker   string `json:"staker"`
	Count    uint64 `json:"count"`
	Index    uint64 `json:"index"`
	Acceptor string `json:"acceptor"`
	Time     string `json:"time"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
