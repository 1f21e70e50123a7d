// Package form implements the nested record-authoring form state machine:
// an ordered list of partial answers, each owning an ordered list of
// document references, with add/remove at arbitrary positions.
package form

import (
	"strings"

	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/google/uuid"
)

// Manager mutates a session's FormState. All index-taking operations are
// silent no-ops when the index is out of bounds; the UI refuses to offer
// invalid removals, but the operations themselves accept any index.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Initialize returns a fresh form: one empty partial answer holding one
// empty reference, both freshly identified. Used for a brand-new session and
// to reset after a successful submission.
func (m *Manager) Initialize() *store.FormState {
	return &store.FormState{
		Tags:           []string{},
		PartialAnswers: []*store.FormPartialAnswer{m.newPartialAnswer()},
	}
}

// AddPartialAnswer appends a new empty partial answer with one empty
// reference. No upper bound is enforced.
func (m *Manager) AddPartialAnswer(f *store.FormState) {
	f.PartialAnswers = append(f.PartialAnswers, m.newPartialAnswer())
}

// RemovePartialAnswer removes the partial answer at index, preserving the
// order and ids of the remaining entries. Removing the last entry is
// allowed.
func (m *Manager) RemovePartialAnswer(f *store.FormState, index int) {
	if index < 0 || index >= len(f.PartialAnswers) {
		return
	}
	f.PartialAnswers = append(f.PartialAnswers[:index], f.PartialAnswers[index+1:]...)
}

// AddReference appends a new empty reference to the partial answer at
// partialIndex.
func (m *Manager) AddReference(f *store.FormState, partialIndex int) {
	pa := m.partialAt(f, partialIndex)
	if pa == nil {
		return
	}
	pa.References = append(pa.References, m.newReference())
}

// RemoveReference removes one reference. A partial answer may be left with
// zero references; it is filtered out at submission if it still has none.
func (m *Manager) RemoveReference(f *store.FormState, partialIndex, refIndex int) {
	pa := m.partialAt(f, partialIndex)
	if pa == nil || refIndex < 0 || refIndex >= len(pa.References) {
		return
	}
	pa.References = append(pa.References[:refIndex], pa.References[refIndex+1:]...)
}

// SetAnswer updates the answer text of one partial answer.
func (m *Manager) SetAnswer(f *store.FormState, partialIndex int, answer string) {
	if pa := m.partialAt(f, partialIndex); pa != nil {
		pa.Answer = answer
	}
}

// SetReference updates the document selection and raw pages string of one
// reference.
func (m *Manager) SetReference(f *store.FormState, partialIndex, refIndex int, document, pages string) {
	pa := m.partialAt(f, partialIndex)
	if pa == nil || refIndex < 0 || refIndex >= len(pa.References) {
		return
	}
	ref := pa.References[refIndex]
	ref.Document = document
	ref.Pages = pages
}

func (m *Manager) SetQuestion(f *store.FormState, question string) {
	f.Question = question
}

func (m *Manager) SetAgentName(f *store.FormState, agentName string) {
	f.AgentName = agentName
}

func (m *Manager) SetTags(f *store.FormState, tags []string) {
	f.Tags = tags
}

// AddTag appends a trimmed tag, ignoring blanks and duplicates.
func (m *Manager) AddTag(f *store.FormState, tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, existing := range f.Tags {
		if existing == tag {
			return
		}
	}
	f.Tags = append(f.Tags, tag)
}

func (m *Manager) partialAt(f *store.FormState, index int) *store.FormPartialAnswer {
	if index < 0 || index >= len(f.PartialAnswers) {
		return nil
	}
	return f.PartialAnswers[index]
}

func (m *Manager) newPartialAnswer() *store.FormPartialAnswer {
	return &store.FormPartialAnswer{
		ID:         uuid.New().String(),
		References: []*store.FormReference{m.newReference()},
	}
}

func (m *Manager) newReference() *store.FormReference {
	return &store.FormReference{ID: uuid.New().String()}
}
