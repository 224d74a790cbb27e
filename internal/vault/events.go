package vault

import (
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/umbracle/ethgo"
)

// EventType is the kind of signal emitted by the vault
type EventType string

const (
	EventAdded         EventType = "added"
	EventEdited        EventType = "edited"
	EventDeleted       EventType = "deleted"
	EventDeposited     EventType = "deposited"
	EventAcceptorBound EventType = "acceptor_bound"
)

// Event is one signal for off-system observers. Count is set for added,
// deleted and deposited events, Index for edited events and Acceptor for
// acceptor_bound events.
type Event struct {
	ID       string        `json:"id"`
	Type     EventType     `json:"type"`
	Staker   ethgo.Address `json:"staker"`
	Count    uint64        `json:"count"`
	Index    uint64        `json:"index"`
	Acceptor ethgo.Address `json:"acceptor"`
	Time     time.Time     `json:"time"`
}

// EventSink receives every emitted event. A failing sink does not affect
// the operation that produced the event.
type EventSink interface {
	Notify(event *Event) error
}

func (v *Vault) emit(event *Event) {
	id, _ := uuid.GenerateUUID()
	event.ID = id
	event.Time = time.Now().UTC()

	for _, sink := range v.sinks {
		if err := sink.Notify(event); err != nil {
			v.logger.Error("event sink failed", "type", event.Type, "err", err)
		}
	}
}
