package domain

import "time"

// Lifecycle evaluation is pure and shared by the engine's guards and
// by every read path, so all callers agree on precedence.

// IsExpired reports whether the deadline has been reached. The
// deadline instant itself counts as expired.
func IsExpired(p Project, now time.Time) bool {
	return now.Unix() >= p.Deadline
}

// IsFunded reports whether the project has ever reached its goal. The
// goal is a threshold, not a ceiling, and withdrawal does not reset
// it: goal-met is historical fact.
func IsFunded(p Project) bool {
	return p.TotalRaised >= p.FundingGoal
}

// Status derives the lifecycle status. Funded beats expired: a
// campaign that met its goal stays funded after the deadline passes.
func Status(p Project, now time.Time) string {
	switch {
	case IsFunded(p):
		return StatusFunded
	case IsExpired(p, now):
		return StatusExpired
	default:
		return StatusActive
	}
}
