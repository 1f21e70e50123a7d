package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/af-Athameem/gtruth/internal/dto"
	"github.com/af-Athameem/gtruth/internal/entity"
	"github.com/af-Athameem/gtruth/internal/pkg/logger"
	"github.com/af-Athameem/gtruth/internal/repository/contract"
	"github.com/af-Athameem/gtruth/pkg/form"
	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/google/uuid"
)

// Validation failures, in the order they are checked. Each is reported
// distinctly so the author knows exactly what to fix.
var (
	ErrQuestionRequired  = errors.New("Question is required.")
	ErrAgentNameRequired = errors.New("Agent Name is required.")
	ErrAnswerRequired    = errors.New("At least one partial answer is required.")
	ErrReferenceRequired = errors.New("At least one partial answer with references is required.")
)

type IQuestionService interface {
	// Submit validates the session's form, resolves every reference
	// against the merged catalog and merges the new record into the
	// shared collection. On success the form is reset.
	Submit(ctx context.Context, sess *store.Session) (*dto.SubmitResponse, error)
	List(ctx context.Context) entity.QuestionCollection
	// Tags returns the sorted distinct tags used across all records.
	Tags(ctx context.Context) []string
}

type questionService struct {
	questions contract.IQuestionRepository
	catalog   ICatalogService
	forms     *form.Manager
	log       logger.ILogger
}

func NewQuestionService(
	questions contract.IQuestionRepository,
	catalog ICatalogService,
	forms *form.Manager,
	log logger.ILogger,
) IQuestionService {
	return &questionService{
		questions: questions,
		catalog:   catalog,
		forms:     forms,
		log:       log,
	}
}

func (s *questionService) Submit(ctx context.Context, sess *store.Session) (*dto.SubmitResponse, error) {
	f := sess.Form
	if f == nil {
		return nil, ErrQuestionRequired
	}

	if strings.TrimSpace(f.Question) == "" {
		return nil, ErrQuestionRequired
	}
	if strings.TrimSpace(f.AgentName) == "" {
		return nil, ErrAgentNameRequired
	}
	hasAnswer := false
	for _, pa := range f.PartialAnswers {
		if strings.TrimSpace(pa.Answer) != "" {
			hasAnswer = true
			break
		}
	}
	if !hasAnswer {
		return nil, ErrAnswerRequired
	}

	// One catalog snapshot per submission; every reference resolves
	// against the same view.
	entries := s.catalog.Entries(ctx, sess)

	partials := []entity.PartialAnswer{}
	for _, pa := range f.PartialAnswers {
		if strings.TrimSpace(pa.Answer) == "" {
			continue
		}
		refs := []entity.Reference{}
		for _, ref := range pa.References {
			if ref.Document == "" {
				continue
			}
			refs = append(refs, entity.Reference{
				Document: ref.Document,
				Pages:    splitPages(ref.Pages),
				Sources:  s.catalog.ResolveSources(entries, ref.Document),
			})
		}
		// An answer whose references were all empty is discarded whole.
		if len(refs) == 0 {
			continue
		}
		partials = append(partials, entity.PartialAnswer{
			Answer:     pa.Answer,
			References: refs,
		})
	}
	if len(partials) == 0 {
		return nil, ErrReferenceRequired
	}

	record := entity.QuestionRecord{
		Question:       f.Question,
		PartialAnswers: partials,
		AgentName:      f.AgentName,
		Tags:           append([]string{}, f.Tags...),
		CreatedOn:      time.Now().Format("2006-01-02"),
		SubmittedBy:    sess.Username,
	}

	// Read-modify-write of the whole collection. Two authors submitting at
	// the same moment can race and the loser's record is dropped by the
	// winner's full-document write; accepted for a single shared blob with
	// no concurrency token.
	questions := s.questions.GetAll(ctx)
	id := uuid.New().String()
	questions[id] = record
	if err := s.questions.SaveAll(ctx, questions); err != nil {
		return nil, err
	}

	sess.Form = s.forms.Initialize()

	s.log.Info("question", "record submitted", map[string]interface{}{
		"id":           id,
		"submitted_by": sess.Username,
		"answers":      len(partials),
	})

	return &dto.SubmitResponse{ID: id}, nil
}

func (s *questionService) List(ctx context.Context) entity.QuestionCollection {
	return s.questions.GetAll(ctx)
}

func (s *questionService) Tags(ctx context.Context) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, record := range s.questions.GetAll(ctx) {
		for _, tag := range record.Tags {
			if tag != "" && !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// splitPages tokenizes the raw comma-separated page field: split, trim,
// drop empties, keep order. A blank field yields an empty sequence.
func splitPages(raw string) []string {
	pages := []string{}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			pages = append(pages, token)
		}
	}
	return pages
}
