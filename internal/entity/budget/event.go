package budget

import "time"

type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

type TransactionEvent struct {
	ID          string
	Kind        EventKind
	Transaction Transaction
	OccurredAt  time.Time
}
