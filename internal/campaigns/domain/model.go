package domain

import "time"

// Money is a value in the smallest indivisible unit of the platform
// currency. Clients convert to and from display decimals; the engine
// never does.
type Money int64

// Account is a wallet address (0x + 40 hex), stored lowercased.
type Account string

// Project status values derived by the lifecycle evaluator.
const (
	StatusActive  = "active"
	StatusFunded  = "funded"
	StatusExpired = "expired"
)

// Project is a single crowdfunding campaign record. Creator and
// FundingGoal are immutable after creation; CurrentFunding only grows
// through funding calls and drops to zero through a single withdrawal.
// TotalRaised is the lifetime sum of contributions and is what
// funded-ness is derived from, so a goal-met campaign stays closed to
// further funding after its creator withdraws the balance.
type Project struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	FundingGoal    Money   `json:"funding_goal"`
	CurrentFunding Money   `json:"current_funding"`
	TotalRaised    Money   `json:"total_raised"`
	Deadline       int64   `json:"deadline"` // unix seconds
	ImageURL       string  `json:"image_url"`
	Category       string  `json:"category"`
	Creator        Account `json:"creator"`
	CreatedAt      int64   `json:"created_at"` // unix seconds
}

// ProjectView is a Project plus the derived lifecycle fields clients
// render from. Derived fields are never stored.
type ProjectView struct {
	Project
	IsFunded  bool   `json:"is_funded"`
	IsExpired bool   `json:"is_expired"`
	Status    string `json:"status"`
}

// NewProjectView evaluates the project's lifecycle at the given time.
func NewProjectView(p Project, now time.Time) ProjectView {
	return ProjectView{
		Project:   p,
		IsFunded:  IsFunded(p),
		IsExpired: IsExpired(p, now),
		Status:    Status(p, now),
	}
}

// Contribution is one backer ledger entry. Immutable once appended;
// the same account may appear multiple times.
type Contribution struct {
	Backer    Account `json:"backer"`
	Amount    Money   `json:"amount"`
	Timestamp int64   `json:"timestamp"` // unix seconds
}

// CreateProjectRequest carries the caller-supplied fields for a new
// campaign.
type CreateProjectRequest struct {
	Title       string
	Description string
	FundingGoal Money
	Deadline    int64
	ImageURL    string
	Category    string
	Creator     Account
}
