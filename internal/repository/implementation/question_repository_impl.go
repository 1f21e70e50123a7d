package implementation

import (
	"context"
	"errors"

	"github.com/af-Athameem/gtruth/internal/entity"
	"github.com/af-Athameem/gtruth/internal/pkg/logger"
	"github.com/af-Athameem/gtruth/internal/repository/contract"
	"github.com/af-Athameem/gtruth/pkg/blobstore"
)

const questionsObject = "submitted_questions.json"

type questionRepository struct {
	store blobstore.Store
	log   logger.ILogger
}

func NewQuestionRepository(store blobstore.Store, log logger.ILogger) contract.IQuestionRepository {
	return &questionRepository{store: store, log: log}
}

func (r *questionRepository) GetAll(ctx context.Context) entity.QuestionCollection {
	var questions entity.QuestionCollection
	if err := r.store.ReadJSON(ctx, questionsObject, &questions); err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			r.log.Warn("question_repository", "failed to read question store, treating as empty", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return entity.QuestionCollection{}
	}
	if questions == nil {
		return entity.QuestionCollection{}
	}
	return questions
}

func (r *questionRepository) SaveAll(ctx context.Context, questions entity.QuestionCollection) error {
	return r.store.WriteJSON(ctx, questionsObject, questions)
}
