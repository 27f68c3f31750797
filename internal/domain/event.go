package domain

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of feed event, matching the CCS contest API
// endpoint names.
type EventType string

const (
	EventTypeContest        EventType = "contest"
	EventTypeState          EventType = "state"
	EventTypeLanguages      EventType = "languages"
	EventTypeProblems       EventType = "problems"
	EventTypeGroups         EventType = "groups"
	EventTypeOrganizations  EventType = "organizations"
	EventTypeTeams          EventType = "teams"
	EventTypeJudgementTypes EventType = "judgement-types"
	EventTypeSubmissions    EventType = "submissions"
	EventTypeJudgements     EventType = "judgements"
	EventTypeRuns           EventType = "runs"
)

// Event is one entry of a contest's append-only feed log. IDs are allocated
// by the database and are strictly increasing across the whole log, so an
// event ID doubles as the feed resume token.
type Event struct {
	ID        int64
	ContestID string
	Type      EventType
	Data      json.RawMessage
	CreatedAt time.Time
}
