package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"quizmaker/models"
	"quizmaker/repository"

	"github.com/google/uuid"
)

type QuizService struct {
	store repository.Store
	now   func() time.Time
	newID func() uuid.UUID
}

func NewQuizService(store repository.Store) *QuizService {
	return &QuizService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
}

func (s *QuizService) ListPaged(ctx context.Context, req QuizPagedRequest) (*PagedResult[QuizListItem], error) {
	page := req.Page
	if page == 0 {
		page = DefaultPage
	}
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	order := models.ParseSortOrder(string(req.SortOrder))

	result, err := s.store.GetQuizzesPaged(ctx, strings.TrimSpace(req.Search), page, pageSize, order)
	if err != nil {
		return nil, err
	}
	return newPagedResult(result, func(q models.Quiz) QuizListItem {
		return QuizListItem{
			ID:            q.ID,
			Name:          q.Name,
			QuestionCount: len(q.Links),
			CreatedAt:     q.CreatedAt,
		}
	}), nil
}

// LoadQuiz returns the quiz with its linked questions, or EntityNotFound.
func (s *QuizService) LoadQuiz(ctx context.Context, id uuid.UUID) (*models.QuizAggregate, error) {
	agg, err := s.store.GetQuizWithQuestions(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &EntityNotFoundError{Entity: "quiz", Key: id.String()}
		}
		return nil, err
	}
	return agg, nil
}

func (s *QuizService) GetDetails(ctx context.Context, id uuid.UUID) (*QuizDetails, error) {
	agg, err := s.LoadQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	details := &QuizDetails{
		ID:        agg.Quiz.ID,
		Name:      agg.Quiz.Name,
		Questions: []QuizQuestionItem{},
	}
	for _, q := range agg.OrderedQuestions() {
		details.Questions = append(details.Questions, QuizQuestionItem{
			ID:            q.ID,
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return details, nil
}

func (s *QuizService) Create(ctx context.Context, req *CreateQuizRequest) (uuid.UUID, error) {
	if req == nil {
		return uuid.Nil, missingArgument("request", "Request body is required.")
	}
	now := s.now()

	name, err := normalizeName(req.Name)
	if err != nil {
		return uuid.Nil, err
	}
	existingIDs := normalizeIDs(req.ExistingQuestionIDs)
	newQuestions, err := s.normalizeNewQuestions(req.NewQuestions, now)
	if err != nil {
		return uuid.Nil, err
	}
	if err := ensureHasQuestions(existingIDs, newQuestions); err != nil {
		return uuid.Nil, err
	}
	if err := s.ensureQuestionsExist(ctx, existingIDs); err != nil {
		return uuid.Nil, err
	}

	quiz := models.Quiz{
		ID:    s.newID(),
		Name:  name,
		Audit: models.Audit{CreatedAt: now},
	}
	quiz.Links = buildLinks(quiz.ID, existingIDs, newQuestions, now)

	uow := s.store.NewUnitOfWork()
	if len(newQuestions) > 0 {
		uow.AddQuestions(newQuestions)
	}
	uow.AddQuiz(quiz)
	if err := uow.SaveAll(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("save quiz: %w", err)
	}
	return quiz.ID, nil
}

// Update replaces the quiz name and its whole link set. Questions that lose
// their link are left in place.
func (s *QuizService) Update(ctx context.Context, id uuid.UUID, req *UpdateQuizRequest) error {
	if id == uuid.Nil {
		return missingArgument("id", "Quiz id is required.")
	}
	if req == nil {
		return missingArgument("request", "Request body is required.")
	}

	agg, err := s.LoadQuiz(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()

	name, err := normalizeName(req.Name)
	if err != nil {
		return err
	}
	existingIDs := normalizeIDs(req.ExistingQuestionIDs)
	newQuestions, err := s.normalizeNewQuestions(req.NewQuestions, now)
	if err != nil {
		return err
	}
	if err := ensureHasQuestions(existingIDs, newQuestions); err != nil {
		return err
	}
	if err := s.ensureQuestionsExist(ctx, existingIDs); err != nil {
		return err
	}

	quiz := agg.Quiz
	quiz.Name = name
	quiz.Touch(now)
	quiz.Links = buildLinks(quiz.ID, existingIDs, newQuestions, now)

	uow := s.store.NewUnitOfWork()
	if len(newQuestions) > 0 {
		uow.AddQuestions(newQuestions)
	}
	uow.UpdateQuiz(quiz)
	if err := uow.SaveAll(ctx); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &EntityNotFoundError{Entity: "quiz", Key: id.String()}
		}
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

func (s *QuizService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return missingArgument("id", "Quiz id is required.")
	}
	if _, err := s.LoadQuiz(ctx, id); err != nil {
		return err
	}

	uow := s.store.NewUnitOfWork()
	uow.SoftDeleteQuiz(id, s.now())
	if err := uow.SaveAll(ctx); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &EntityNotFoundError{Entity: "quiz", Key: id.String()}
		}
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", missingArgument("name", "Quiz name is required.")
	}
	if utf8.RuneCountInString(name) < QuizNameMinLength {
		return "", missingArgument("name", "'name' must be at least %d characters long.", QuizNameMinLength)
	}
	if utf8.RuneCountInString(name) > QuizNameMaxLength {
		return "", missingArgument("name", "'name' exceeds maximum length of %d.", QuizNameMaxLength)
	}
	return name, nil
}

// normalizeIDs drops nil ids and duplicates, keeping first occurrences in order.
func normalizeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *QuizService) normalizeNewQuestions(reqs []NewQuestionRequest, now time.Time) ([]models.Question, error) {
	if len(reqs) > QuizNewQuestionsMaxCount {
		return nil, missingArgument("newQuestions", "A quiz request may contain at most %d new questions.", QuizNewQuestionsMaxCount)
	}
	type pair struct{ text, answer string }
	pairs := make([]pair, 0, len(reqs))
	for _, r := range reqs {
		p := pair{text: strings.TrimSpace(r.Text), answer: strings.TrimSpace(r.CorrectAnswer)}
		if p.text == "" || p.answer == "" {
			continue
		}
		pairs = append(pairs, p)
	}

	for _, p := range pairs {
		if utf8.RuneCountInString(p.text) > QuestionTextMaxLength {
			return nil, missingArgument("text", "Question text exceeds maximum length of %d.", QuestionTextMaxLength)
		}
	}
	for _, p := range pairs {
		if utf8.RuneCountInString(p.answer) > CorrectAnswerMaxLength {
			return nil, missingArgument("correctAnswer", "Correct answer exceeds maximum length of %d.", CorrectAnswerMaxLength)
		}
	}

	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		key := strings.ToLower(p.text)
		if seen[key] {
			return nil, missingArgument("newQuestions", "Duplicate new questions are not allowed within the same request.")
		}
		seen[key] = true
	}

	out := make([]models.Question, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.Question{
			ID:            s.newID(),
			Text:          p.text,
			CorrectAnswer: p.answer,
			Audit:         models.Audit{CreatedAt: now},
		})
	}
	return out, nil
}

func ensureHasQuestions(existingIDs []uuid.UUID, newQuestions []models.Question) error {
	if len(existingIDs) == 0 && len(newQuestions) == 0 {
		return missingArgument("questions", "Quiz must contain at least one question.")
	}
	return nil
}

// ensureQuestionsExist fails the whole request if any id is unknown.
func (s *QuizService) ensureQuestionsExist(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.store.GetQuestionsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load existing questions: %w", err)
	}
	byID := make(map[uuid.UUID]bool, len(found))
	for _, q := range found {
		byID[q.ID] = true
	}
	for _, id := range ids {
		if !byID[id] {
			return missingArgument("existingQuestionIds", "One or more existingQuestionIds do not exist.")
		}
	}
	return nil
}

// buildLinks orders existing questions first, then new ones, each group in
// submission order, numbering display positions from zero.
func buildLinks(quizID uuid.UUID, existingIDs []uuid.UUID, newQuestions []models.Question, now time.Time) []models.QuizQuestion {
	links := make([]models.QuizQuestion, 0, len(existingIDs)+len(newQuestions))
	order := 0
	for _, id := range existingIDs {
		links = append(links, models.QuizQuestion{QuizID: quizID, QuestionID: id, DisplayOrder: order, CreatedAt: now})
		order++
	}
	for _, q := range newQuestions {
		links = append(links, models.QuizQuestion{QuizID: quizID, QuestionID: q.ID, DisplayOrder: order, CreatedAt: now})
		order++
	}
	return links
}
