package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is one row of the transactional outbox awaiting relay.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// payload is the JSON document relayed to Kafka.
type payload struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id,omitempty"`
	Subject   string `json:"subject"`
	Action    string `json:"action"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
	IP        string `json:"ip,omitempty"`
	Device    string `json:"device,omitempty"`
}

// NewOutboxEntry renders event into an outbox row. Events about a user are
// keyed by the user id so they land on one partition in order.
func NewOutboxEntry(event Event, now time.Time) (OutboxEntry, error) {
	entryID := uuid.New()
	p := payload{
		ID:        entryID.String(),
		Category:  string(AuditEvent(event.Action).Category()),
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		Subject:   event.Subject,
		Action:    event.Action,
		Reason:    event.Reason,
		RequestID: event.RequestID,
		ActorID:   event.ActorID,
		IP:        event.IP,
		Device:    event.Device,
	}
	entry := OutboxEntry{
		ID:            entryID,
		AggregateType: "audit",
		AggregateID:   entryID.String(),
		EventType:     event.Action,
		CreatedAt:     now,
	}
	if !event.UserID.IsNil() {
		p.UserID = event.UserID.String()
		entry.AggregateType = "user"
		entry.AggregateID = event.UserID.String()
	}
	body, err := json.Marshal(p)
	if err != nil {
		return OutboxEntry{}, fmt.Errorf("marshal audit payload: %w", err)
	}
	entry.Payload = body
	return entry, nil
}
