package contract

import (
	"context"

	"github.com/af-Athameem/gtruth/internal/entity"
)

type IQuestionRepository interface {
	// GetAll loads the whole shared collection. A missing or unreadable
	// store yields an empty collection, never an error the caller must
	// branch on.
	GetAll(ctx context.Context) entity.QuestionCollection
	// SaveAll replaces the whole persisted collection.
	SaveAll(ctx context.Context, questions entity.QuestionCollection) error
}
