package feed

import "github.com/mtlprog/ccsfeed/internal/domain"

// Fixed catalogs. Languages and groups do not vary per contest; judgement
// types mirror the judge system's verdict table.

// Languages returns the supported language catalog in feed emission order.
func Languages() []LanguagePayload {
	return []LanguagePayload{
		{ID: "c", Name: "C"},
		{ID: "cpp", Name: "C++"},
		{ID: "cc", Name: "C++"},
		{ID: "java", Name: "Java"},
		{ID: "python", Name: "Python"},
		{ID: "py", Name: "Python"},
		{ID: "kotlin", Name: "Kotlin"},
		{ID: "kt", Name: "Kotlin"},
		{ID: "rust", Name: "Rust"},
		{ID: "go", Name: "Go"},
	}
}

// Group ids referenced by team payloads.
const (
	GroupParticipants = "participants"
	GroupObservers    = "observers"
)

// Groups returns the fixed group catalog.
func Groups() []GroupPayload {
	return []GroupPayload{
		{ID: GroupParticipants, Name: "Participants"},
		{ID: GroupObservers, Name: "Observers"},
	}
}

// JudgementTypes returns the judgement type catalog derived from the final
// verdict table.
func JudgementTypes() []JudgementTypePayload {
	statuses := domain.JudgedStatuses()
	types := make([]JudgementTypePayload, 0, len(statuses))
	for _, s := range statuses {
		types = append(types, JudgementTypePayload{
			ID:      s.ShortText(),
			Name:    s.Text(),
			Penalty: s.CausesPenalty(),
			Solved:  s.Solved(),
		})
	}
	return types
}
