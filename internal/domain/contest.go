package domain

import "time"

// Contest mirrors the judge system's contest document. BeginAt/EndAt bound
// the running window; LockAt, when set, is the scoreboard freeze boundary.
type Contest struct {
	ID       string
	DomainID string
	Title    string
	BeginAt  time.Time
	EndAt    time.Time
	LockAt   *time.Time // nil when the scoreboard never freezes
	Unlocked bool       // scoreboard manually thawed after the freeze
}

// IsOngoing reports whether the contest is running at the given instant.
func (c *Contest) IsOngoing(now time.Time) bool {
	return !now.Before(c.BeginAt) && now.Before(c.EndAt)
}

// IsDone reports whether the contest has ended at the given instant.
func (c *Contest) IsDone(now time.Time) bool {
	return !now.Before(c.EndAt)
}

// IsLocked reports whether the scoreboard is frozen at the given instant:
// a freeze boundary is configured, has been reached, and has not been
// manually unlocked.
func (c *Contest) IsLocked(now time.Time) bool {
	return c.LockAt != nil && !c.Unlocked && !now.Before(*c.LockAt)
}

// Problem is one entry of a contest's problem set, in contest order.
type Problem struct {
	ID          string
	Title       string
	Ordinal     int
	TimeLimitMS int64
	TestCount   int
	Color       string
	RGB         string
}

// Team is a registered contest participant.
type Team struct {
	ID          string
	Name        string
	DisplayName string
	School      string
	Seat        string
	Unranked    bool // observer team, excluded from the official ranking
}
