package domain

// Event types appended to the campaign event log.
const (
	EventProjectCreated = "project_created"
	EventProjectFunded  = "project_funded"
	EventFundsWithdrawn = "funds_withdrawn"

	// EventCampaignExpired is fanout-only: the deadline watcher
	// publishes it to Redis but it is never appended to the ledger's
	// event log, since expiry is derived state rather than a mutation.
	EventCampaignExpired = "campaign_expired"
)

// Event is one immutable entry in the append-only domain event log.
// Account is the creator for created/withdrawn events and the backer
// for funded events.
type Event struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	ProjectID int64   `json:"project_id"`
	Account   Account `json:"account"`
	Amount    Money   `json:"amount,omitempty"`
	Title     string  `json:"title,omitempty"`
	CreatedAt int64   `json:"created_at"` // unix seconds
}
