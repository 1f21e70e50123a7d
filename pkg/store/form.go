package store

// FormState is the in-progress record-authoring form owned by one session.
// The partial-answer and reference sequences are ordered; entry ids are
// assigned once at creation and never recomputed from position, so input
// state keyed by id stays attached to the right logical entry when siblings
// are added or removed.
type FormState struct {
	Question       string               `json:"question"`
	AgentName      string               `json:"agent_name"`
	Tags           []string             `json:"tags"`
	PartialAnswers []*FormPartialAnswer `json:"partial_answers"`
}

// FormPartialAnswer is one editable answer segment.
type FormPartialAnswer struct {
	ID         string           `json:"id"`
	Answer     string           `json:"answer"`
	References []*FormReference `json:"references"`
}

// FormReference is one editable document reference. Pages holds the raw
// comma-separated page string; it is only tokenized at submission.
type FormReference struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Pages    string `json:"pages"`
}
