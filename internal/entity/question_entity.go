package entity

// Reference is one persisted pointer from a partial answer to a document.
// Pages keeps the author's order; Sources lists every backend the document
// was known to live in at submission time, sorted.
type Reference struct {
	Document string   `json:"document"`
	Pages    []string `json:"page"`
	Sources  []string `json:"source"`
}

// PartialAnswer is one segment of a multi-part answer with its supporting
// references. Persisted partial answers always have a non-empty Answer and
// at least one reference.
type PartialAnswer struct {
	Answer     string      `json:"answer"`
	References []Reference `json:"references"`
}

type QuestionRecord struct {
	Question       string          `json:"question"`
	PartialAnswers []PartialAnswer `json:"partial_answers"`
	AgentName      string          `json:"agent_name"`
	Tags           []string        `json:"tags"`
	CreatedOn      string          `json:"created_on"`
	SubmittedBy    string          `json:"submitted_by"`
}

// QuestionCollection is the whole shared store, persisted as a single JSON
// document keyed by record id. Writers replace the entire document; there is
// no per-record locking.
type QuestionCollection map[string]QuestionRecord
