package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"quizmaker/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested row does not exist or is soft-deleted.
var ErrNotFound = errors.New("record not found")

const DefaultMaxPageSize = 200

// Store is the persistence collaborator used by the services.
type Store interface {
	SearchQuestionsPaged(ctx context.Context, search string, page, pageSize int) (models.Page[models.Question], error)
	GetQuestionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Question, error)

	GetQuizzesPaged(ctx context.Context, search string, page, pageSize int, order models.SortOrder) (models.Page[models.Quiz], error)
	GetQuizWithQuestions(ctx context.Context, id uuid.UUID) (*models.QuizAggregate, error)

	NewUnitOfWork() UnitOfWork
}

// UnitOfWork stages writes in memory; nothing is visible until SaveAll commits
// every staged change together.
type UnitOfWork interface {
	AddQuestion(q models.Question)
	AddQuestions(qs []models.Question)
	AddQuiz(q models.Quiz)
	// UpdateQuiz overwrites name and audit fields and replaces the whole link set.
	UpdateQuiz(q models.Quiz)
	SoftDeleteQuiz(id uuid.UUID, at time.Time)
	SaveAll(ctx context.Context) error
}

// changeSet is the staged state shared by both store implementations.
type changeSet struct {
	questions   []models.Question
	newQuizzes  []models.Quiz
	updates     []models.Quiz
	softDeletes []softDelete
}

type softDelete struct {
	id uuid.UUID
	at time.Time
}

func (c *changeSet) AddQuestion(q models.Question) { c.questions = append(c.questions, q) }

func (c *changeSet) AddQuestions(qs []models.Question) { c.questions = append(c.questions, qs...) }

func (c *changeSet) AddQuiz(q models.Quiz) { c.newQuizzes = append(c.newQuizzes, q) }

func (c *changeSet) UpdateQuiz(q models.Quiz) { c.updates = append(c.updates, q) }

func (c *changeSet) SoftDeleteQuiz(id uuid.UUID, at time.Time) {
	c.softDeletes = append(c.softDeletes, softDelete{id: id, at: at})
}

func (c *changeSet) empty() bool {
	return len(c.questions) == 0 && len(c.newQuizzes) == 0 && len(c.updates) == 0 && len(c.softDeletes) == 0
}

func (c *changeSet) reset() { *c = changeSet{} }

// clampPage applies the default page and bounds the page size. The page is
// capped so the row offset (page-1)*pageSize always fits in an int.
func clampPage(page, pageSize, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if max <= 0 {
		max = DefaultMaxPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > max {
		pageSize = max
	}
	if limit := math.MaxInt/pageSize + 1; page > limit {
		page = limit
	}
	return page, pageSize
}
