package feed

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/mtlprog/ccsfeed/internal/domain"
)

// finalizeGrace is the offset after contest end reported as the finalization
// timestamp of the state snapshot.
const finalizeGrace = time.Minute

// Translator converts judge system entities into canonical CCS payloads.
// Implementations must be deterministic given their inputs and must not
// touch the event log.
type Translator interface {
	ToContest(c *domain.Contest) ContestPayload
	ToState(c *domain.Contest, now time.Time) StatePayload
	ToProblem(c *domain.Contest, p *domain.Problem) ProblemPayload
	ToOrganization(orgID string, t *domain.Team) OrganizationPayload
	ToTeam(t *domain.Team) TeamPayload
	ToSubmission(c *domain.Contest, r *domain.Record) SubmissionPayload
	ToJudgement(c *domain.Contest, r *domain.Record) JudgementPayload
	ToRun(c *domain.Contest, r *domain.Record, tc domain.TestCase) RunPayload
}

// Adapter is the default Translator.
type Adapter struct{}

// NewAdapter creates a new Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// OrganizationID derives a stable organization id from a team's school,
// falling back to the team name for teams without one.
func OrganizationID(t *domain.Team) string {
	key := t.School
	if key == "" {
		key = t.Name
	}
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (a *Adapter) ToContest(c *domain.Contest) ContestPayload {
	var freeze *string
	if c.LockAt != nil {
		d := FormatDuration(c.EndAt.Sub(*c.LockAt))
		freeze = &d
	}
	return ContestPayload{
		ID:                       c.ID,
		Name:                     c.Title,
		FormalName:               c.Title,
		StartTime:                FormatTime(c.BeginAt),
		Duration:                 FormatDuration(c.EndAt.Sub(c.BeginAt)),
		ScoreboardType:           "pass-fail",
		ScoreboardFreezeDuration: freeze,
		PenaltyTime:              20,
	}
}

// ToState computes the full lifecycle snapshot at the given instant. A field
// is non-nil exactly when its milestone has occurred, so re-running the
// computation later only fills previously nil fields.
func (a *Adapter) ToState(c *domain.Contest, now time.Time) StatePayload {
	ongoing := c.IsOngoing(now)
	done := c.IsDone(now)
	locked := c.IsLocked(now)

	var state StatePayload
	if ongoing || done {
		state.Started = timePtr(c.BeginAt)
	}
	if done {
		state.Ended = timePtr(c.EndAt)
		state.Finalized = timePtr(c.EndAt.Add(finalizeGrace))
	}
	if c.LockAt != nil && (locked || done) {
		state.Frozen = timePtr(*c.LockAt)
	}
	if done && !locked {
		state.Thawed = timePtr(now)
	}
	return state
}

func (a *Adapter) ToProblem(c *domain.Contest, p *domain.Problem) ProblemPayload {
	color := p.Color
	if color == "" {
		color = "white"
	}
	rgb := p.RGB
	if rgb == "" {
		rgb = "#ffffff"
	}
	return ProblemPayload{
		ID:            p.ID,
		Label:         string(rune('A' + p.Ordinal)),
		Name:          p.Title,
		Ordinal:       p.Ordinal,
		Color:         color,
		RGB:           rgb,
		TimeLimit:     float64(p.TimeLimitMS) / 1000,
		TestDataCount: p.TestCount,
	}
}

func (a *Adapter) ToOrganization(orgID string, t *domain.Team) OrganizationPayload {
	name := t.School
	if name == "" {
		name = t.Name
	}
	return OrganizationPayload{
		ID:         orgID,
		Name:       name,
		FormalName: name,
	}
}

func (a *Adapter) ToTeam(t *domain.Team) TeamPayload {
	id := "team-" + t.ID
	label := t.Seat
	if label == "" {
		label = id
	}
	name := t.DisplayName
	if name == "" {
		name = t.Name
	}
	display := name
	group := GroupParticipants
	if t.Unranked {
		display = "⭐" + display
		group = GroupObservers
	}
	return TeamPayload{
		ID:             id,
		Label:          label,
		Name:           name,
		DisplayName:    display,
		OrganizationID: OrganizationID(t),
		GroupIDs:       []string{group},
	}
}

func (a *Adapter) ToSubmission(c *domain.Contest, r *domain.Record) SubmissionPayload {
	return SubmissionPayload{
		ID:          r.ID,
		LanguageID:  baseLang(r.Lang),
		ProblemID:   r.ProblemID,
		TeamID:      "team-" + r.TeamID,
		Time:        FormatTime(r.SubmittedAt),
		ContestTime: ContestTime(c, r.SubmittedAt),
	}
}

func (a *Adapter) ToJudgement(c *domain.Contest, r *domain.Record) JudgementPayload {
	j := JudgementPayload{
		ID:               "j-" + r.ID,
		SubmissionID:     r.ID,
		StartTime:        FormatTime(r.SubmittedAt),
		StartContestTime: ContestTime(c, r.SubmittedAt),
	}
	if r.JudgeAt != nil {
		verdict := r.Status.ShortText()
		j.JudgementTypeID = &verdict
		j.EndTime = timePtr(*r.JudgeAt)
		end := ContestTime(c, *r.JudgeAt)
		j.EndContestTime = &end
	}
	return j
}

func (a *Adapter) ToRun(c *domain.Contest, r *domain.Record, tc domain.TestCase) RunPayload {
	at := r.SubmittedAt.Add(time.Duration(tc.TimeMS) * time.Millisecond)
	return RunPayload{
		ID:              fmt.Sprintf("r-%s-%d", r.ID, tc.ID),
		JudgementID:     "j-" + r.ID,
		Ordinal:         tc.ID,
		JudgementTypeID: tc.Status.ShortText(),
		Time:            FormatTime(at),
		ContestTime:     ContestTime(c, at),
		RunTime:         float64(tc.TimeMS) / 1000,
	}
}

// baseLang strips judge-internal language variants: "cc.cc14o2" reports as
// "cc".
func baseLang(lang string) string {
	for i := 0; i < len(lang); i++ {
		if lang[i] == '.' {
			return lang[:i]
		}
	}
	return lang
}

func timePtr(t time.Time) *string {
	s := FormatTime(t)
	return &s
}
