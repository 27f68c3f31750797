package domain

import "time"

// RecordStatus is the judge system's numeric verdict for a record. Zero means
// the record was just created and is still waiting to be judged.
type RecordStatus int

const (
	StatusWaiting             RecordStatus = 0
	StatusAccepted            RecordStatus = 1
	StatusWrongAnswer         RecordStatus = 2
	StatusTimeLimitExceeded   RecordStatus = 3
	StatusMemoryLimitExceeded RecordStatus = 4
	StatusOutputLimitExceeded RecordStatus = 5
	StatusRuntimeError        RecordStatus = 6
	StatusCompileError        RecordStatus = 7
	StatusSystemError         RecordStatus = 8
)

var statusShortTexts = map[RecordStatus]string{
	StatusAccepted:            "AC",
	StatusWrongAnswer:         "WA",
	StatusTimeLimitExceeded:   "TLE",
	StatusMemoryLimitExceeded: "MLE",
	StatusOutputLimitExceeded: "OLE",
	StatusRuntimeError:        "RE",
	StatusCompileError:        "CE",
	StatusSystemError:         "SE",
}

var statusTexts = map[RecordStatus]string{
	StatusAccepted:            "Accepted",
	StatusWrongAnswer:         "Wrong Answer",
	StatusTimeLimitExceeded:   "Time Limit Exceeded",
	StatusMemoryLimitExceeded: "Memory Limit Exceeded",
	StatusOutputLimitExceeded: "Output Limit Exceeded",
	StatusRuntimeError:        "Runtime Error",
	StatusCompileError:        "Compile Error",
	StatusSystemError:         "System Error",
}

// ShortText returns the CCS judgement type id for a final verdict, or ""
// for statuses that have no judgement type (waiting).
func (s RecordStatus) ShortText() string {
	return statusShortTexts[s]
}

// Text returns the human-readable verdict name.
func (s RecordStatus) Text() string {
	return statusTexts[s]
}

// CausesPenalty reports whether the verdict counts toward penalty time.
func (s RecordStatus) CausesPenalty() bool {
	switch s {
	case StatusAccepted, StatusCompileError, StatusSystemError:
		return false
	}
	return true
}

// Solved reports whether the verdict solves the problem.
func (s RecordStatus) Solved() bool {
	return s == StatusAccepted
}

// JudgedStatuses lists all final verdicts in catalog order.
func JudgedStatuses() []RecordStatus {
	return []RecordStatus{
		StatusAccepted,
		StatusWrongAnswer,
		StatusTimeLimitExceeded,
		StatusMemoryLimitExceeded,
		StatusOutputLimitExceeded,
		StatusRuntimeError,
		StatusCompileError,
		StatusSystemError,
	}
}

// TestCase is one per-test result pushed onto a record while it is judged.
type TestCase struct {
	ID     int          `json:"id"`
	Status RecordStatus `json:"status"`
	TimeMS int64        `json:"time_ms"`
}

// Record is a judging record (one submission and its evaluation progress).
// ContestID is the nil UUID for practice submissions outside any contest.
type Record struct {
	ID          string
	DomainID    string
	ContestID   string
	ProblemID   string
	TeamID      string
	Lang        string
	Status      RecordStatus
	SubmittedAt time.Time
	JudgeAt     *time.Time // set once the final verdict is in
	TestCases   []TestCase
}

// NilContestID is the sentinel contest association of records submitted
// outside any contest.
const NilContestID = "00000000-0000-0000-0000-000000000000"

// InContest reports whether the record belongs to a real contest.
func (r *Record) InContest() bool {
	return r.ContestID != "" && r.ContestID != NilContestID
}

// IsPending reports whether the record is a brand-new, not yet judged
// submission.
func (r *Record) IsPending() bool {
	return r.Status == StatusWaiting
}
