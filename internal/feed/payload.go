// Package feed implements the CCS contest event feed engine: the append-only
// event log materialization, contest lifecycle state synthesis, the judging
// record projector and the per-connection delivery session.
package feed

// Canonical CCS payload shapes, one per event type. Field names and
// formatting follow the ICPC contest API conventions consumed by external
// scoreboard and resolver tooling.

// ContestPayload is the body of a "contest" event.
type ContestPayload struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	FormalName               string  `json:"formal_name"`
	StartTime                string  `json:"start_time"`
	Duration                 string  `json:"duration"`
	ScoreboardType           string  `json:"scoreboard_type"`
	ScoreboardFreezeDuration *string `json:"scoreboard_freeze_duration"`
	PenaltyTime              int     `json:"penalty_time"`
}

// StatePayload is the body of a "state" event: the contest lifecycle
// snapshot. Fields are set exactly once and never retracted by later events.
type StatePayload struct {
	Started      *string `json:"started"`
	Frozen       *string `json:"frozen"`
	Ended        *string `json:"ended"`
	Thawed       *string `json:"thawed"`
	Finalized    *string `json:"finalized"`
	EndOfUpdates *string `json:"end_of_updates"`
}

// LanguagePayload is the body of a "languages" event.
type LanguagePayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProblemPayload is the body of a "problems" event.
type ProblemPayload struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	Name          string  `json:"name"`
	Ordinal       int     `json:"ordinal"`
	Color         string  `json:"color"`
	RGB           string  `json:"rgb"`
	TimeLimit     float64 `json:"time_limit"`
	TestDataCount int     `json:"test_data_count"`
}

// GroupPayload is the body of a "groups" event.
type GroupPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrganizationPayload is the body of an "organizations" event.
type OrganizationPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FormalName string `json:"formal_name"`
}

// TeamPayload is the body of a "teams" event.
type TeamPayload struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	OrganizationID string   `json:"organization_id"`
	GroupIDs       []string `json:"group_ids"`
}

// JudgementTypePayload is the body of a "judgement-types" event.
type JudgementTypePayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Penalty bool   `json:"penalty"`
	Solved  bool   `json:"solved"`
}

// SubmissionPayload is the body of a "submissions" event.
type SubmissionPayload struct {
	ID          string `json:"id"`
	LanguageID  string `json:"language_id"`
	ProblemID   string `json:"problem_id"`
	TeamID      string `json:"team_id"`
	Time        string `json:"time"`
	ContestTime string `json:"contest_time"`
}

// JudgementPayload is the body of a "judgements" event. End fields are nil
// while judging is in progress.
type JudgementPayload struct {
	ID               string  `json:"id"`
	SubmissionID     string  `json:"submission_id"`
	JudgementTypeID  *string `json:"judgement_type_id"`
	StartTime        string  `json:"start_time"`
	StartContestTime string  `json:"start_contest_time"`
	EndTime          *string `json:"end_time"`
	EndContestTime   *string `json:"end_contest_time"`
}

// RunPayload is the body of a "runs" event (one judged test case).
type RunPayload struct {
	ID              string  `json:"id"`
	JudgementID     string  `json:"judgement_id"`
	Ordinal         int     `json:"ordinal"`
	JudgementTypeID string  `json:"judgement_type_id"`
	Time            string  `json:"time"`
	ContestTime     string  `json:"contest_time"`
	RunTime         float64 `json:"run_time"`
}
