package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"quizmaker/models"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in maps. Used for local runs and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	questions   map[uuid.UUID]models.Question
	quizzes     map[uuid.UUID]models.Quiz
	maxPageSize int
	saves       int
}

func NewMemoryStore(maxPageSize int) *MemoryStore {
	return &MemoryStore{
		questions:   map[uuid.UUID]models.Question{},
		quizzes:     map[uuid.UUID]models.Quiz{},
		maxPageSize: maxPageSize,
	}
}

// Saves returns how many SaveAll calls have committed so far.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (m *MemoryStore) SearchQuestionsPaged(_ context.Context, search string, page, pageSize int) (models.Page[models.Question], error) {
	page, pageSize = clampPage(page, pageSize, m.maxPageSize)

	m.mu.RLock()
	matched := make([]models.Question, 0, len(m.questions))
	for _, q := range m.questions {
		if q.IsDeleted {
			continue
		}
		if strings.TrimSpace(search) != "" && !containsFold(q.Text, search) {
			continue
		}
		matched = append(matched, q)
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return models.Page[models.Question]{
		Items:      paginate(matched, page, pageSize),
		TotalCount: int64(len(matched)),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (m *MemoryStore) GetQuestionsByIDs(_ context.Context, ids []uuid.UUID) ([]models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := m.questions[id]; ok && !q.IsDeleted {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetQuizzesPaged(_ context.Context, search string, page, pageSize int, order models.SortOrder) (models.Page[models.Quiz], error) {
	page, pageSize = clampPage(page, pageSize, m.maxPageSize)

	m.mu.RLock()
	matched := make([]models.Quiz, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		if q.IsDeleted {
			continue
		}
		if strings.TrimSpace(search) != "" && !containsFold(q.Name, search) {
			continue
		}
		matched = append(matched, cloneQuiz(q))
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if order == models.SortAsc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return models.Page[models.Quiz]{
		Items:      paginate(matched, page, pageSize),
		TotalCount: int64(len(matched)),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (m *MemoryStore) GetQuizWithQuestions(_ context.Context, id uuid.UUID) (*models.QuizAggregate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	quiz, ok := m.quizzes[id]
	if !ok || quiz.IsDeleted {
		return nil, ErrNotFound
	}
	quiz = cloneQuiz(quiz)
	sort.SliceStable(quiz.Links, func(i, j int) bool {
		return quiz.Links[i].DisplayOrder < quiz.Links[j].DisplayOrder
	})
	arena := make(map[uuid.UUID]models.Question, len(quiz.Links))
	for _, l := range quiz.Links {
		if q, ok := m.questions[l.QuestionID]; ok {
			arena[q.ID] = q
		}
	}
	return &models.QuizAggregate{Quiz: quiz, Questions: arena}, nil
}

func (m *MemoryStore) NewUnitOfWork() UnitOfWork {
	return &memoryUnitOfWork{store: m}
}

func cloneQuiz(q models.Quiz) models.Quiz {
	links := make([]models.QuizQuestion, len(q.Links))
	copy(links, q.Links)
	q.Links = links
	return q
}

type memoryUnitOfWork struct {
	changeSet
	store *MemoryStore
}

// SaveAll checks every staged change against current state before applying any,
// so a failing change leaves the store untouched.
func (u *memoryUnitOfWork) SaveAll(_ context.Context) error {
	if u.empty() {
		return nil
	}
	m := u.store
	m.mu.Lock()
	defer m.mu.Unlock()

	pendingQuestions := map[uuid.UUID]bool{}
	for _, q := range u.questions {
		if _, dup := m.questions[q.ID]; dup || pendingQuestions[q.ID] {
			return fmt.Errorf("insert questions: duplicate id %s", q.ID)
		}
		pendingQuestions[q.ID] = true
	}
	questionExists := func(id uuid.UUID) bool {
		_, ok := m.questions[id]
		return ok || pendingQuestions[id]
	}
	checkLinks := func(quiz models.Quiz) error {
		orders := map[int]bool{}
		seen := map[uuid.UUID]bool{}
		for _, l := range quiz.Links {
			if l.QuizID != quiz.ID {
				return fmt.Errorf("link for quiz %s attached to quiz %s", l.QuizID, quiz.ID)
			}
			if !questionExists(l.QuestionID) {
				return fmt.Errorf("link references unknown question %s", l.QuestionID)
			}
			if seen[l.QuestionID] {
				return fmt.Errorf("question %s linked twice", l.QuestionID)
			}
			if orders[l.DisplayOrder] {
				return fmt.Errorf("display order %d used twice", l.DisplayOrder)
			}
			seen[l.QuestionID] = true
			orders[l.DisplayOrder] = true
		}
		return nil
	}

	for _, q := range u.newQuizzes {
		if _, dup := m.quizzes[q.ID]; dup {
			return fmt.Errorf("insert quiz: duplicate id %s", q.ID)
		}
		if err := checkLinks(q); err != nil {
			return fmt.Errorf("insert quiz links: %w", err)
		}
	}
	for _, q := range u.updates {
		cur, ok := m.quizzes[q.ID]
		if !ok || cur.IsDeleted {
			return ErrNotFound
		}
		if err := checkLinks(q); err != nil {
			return fmt.Errorf("replace quiz links: %w", err)
		}
	}
	for _, d := range u.softDeletes {
		cur, ok := m.quizzes[d.id]
		if !ok || cur.IsDeleted {
			return ErrNotFound
		}
	}

	for _, q := range u.questions {
		m.questions[q.ID] = q
	}
	for _, q := range u.newQuizzes {
		m.quizzes[q.ID] = cloneQuiz(q)
	}
	for _, q := range u.updates {
		cur := m.quizzes[q.ID]
		cur.Name = q.Name
		cur.UpdatedAt = q.UpdatedAt
		cur.Links = cloneQuiz(q).Links
		m.quizzes[q.ID] = cur
	}
	for _, d := range u.softDeletes {
		cur := m.quizzes[d.id]
		cur.MarkDeleted(d.at)
		m.quizzes[d.id] = cur
	}
	m.saves++
	u.reset()
	return nil
}
