package domain

import "time"

// EventKind tags the structured records emitted by mutating operations.
type EventKind string

const (
	EventCampaignCreated     EventKind = "campaign_created"
	EventDonated             EventKind = "donated"
	EventDeadlineChanged     EventKind = "deadline_changed"
	EventTargetAmountChanged EventKind = "target_amount_changed"
	EventCampaignRemoved     EventKind = "campaign_removed"
)

// Event is emitted exactly once per committed mutation, never for a
// rolled-back one, in commit order. Amount carries the net donation amount
// for EventDonated and the new value for the change events.
type Event struct {
	ID         string    `json:"id"`
	Kind       EventKind `json:"kind"`
	CampaignID uint64    `json:"campaign_id"`
	Actor      Principal `json:"actor"`
	Amount     uint64    `json:"amount,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	At         time.Time `json:"at"`
}
