package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"quizmaker/models"
	"quizmaker/repository"

	"github.com/google/uuid"
)

// spyStore counts calls that reach the store so tests can assert validation
// happens before any persistence work.
type spyStore struct {
	*repository.MemoryStore
	lookups int
	units   int
	saveErr error
}

func newSpyStore() *spyStore {
	return &spyStore{MemoryStore: repository.NewMemoryStore(repository.DefaultMaxPageSize)}
}

func (s *spyStore) GetQuestionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Question, error) {
	s.lookups++
	return s.MemoryStore.GetQuestionsByIDs(ctx, ids)
}

func (s *spyStore) NewUnitOfWork() repository.UnitOfWork {
	s.units++
	uow := s.MemoryStore.NewUnitOfWork()
	if s.saveErr != nil {
		return failingUnitOfWork{UnitOfWork: uow, err: s.saveErr}
	}
	return uow
}

type failingUnitOfWork struct {
	repository.UnitOfWork
	err error
}

func (f failingUnitOfWork) SaveAll(context.Context) error { return f.err }

func newTestQuizService(store repository.Store) *QuizService {
	svc := NewQuizService(store)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func seedQuestions(t *testing.T, svc *QuizService, texts ...string) []uuid.UUID {
	t.Helper()
	ctx := context.Background()
	var ids []uuid.UUID
	for _, text := range texts {
		quizID, err := svc.Create(ctx, &CreateQuizRequest{
			Name:         "seed " + text,
			NewQuestions: []NewQuestionRequest{{Text: text, CorrectAnswer: "a"}},
		})
		if err != nil {
			t.Fatalf("seed %q: %v", text, err)
		}
		details, err := svc.GetDetails(ctx, quizID)
		if err != nil {
			t.Fatalf("seed details: %v", err)
		}
		ids = append(ids, details.Questions[0].ID)
	}
	return ids
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("KindOf(%v) = %d, want %d", err, got, kind)
	}
}

func TestCreateOrdersExistingBeforeNew(t *testing.T) {
	ctx := context.Background()
	store := newSpyStore()
	svc := newTestQuizService(store)
	existing := seedQuestions(t, svc, "E1", "E2", "E3")

	id, err := svc.Create(ctx, &CreateQuizRequest{
		Name: "  Mixed quiz  ",
		// Duplicates and nil ids are dropped, first occurrence wins.
		ExistingQuestionIDs: []uuid.UUID{existing[2], uuid.Nil, existing[0], existing[2]},
		NewQuestions: []NewQuestionRequest{
			{Text: " N1 ", CorrectAnswer: "x"},
			{Text: "ignored", CorrectAnswer: "   "},
			{Text: "N2", CorrectAnswer: "y"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	agg, err := store.GetQuizWithQuestions(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if agg.Quiz.Name != "Mixed quiz" {
		t.Fatalf("name = %q", agg.Quiz.Name)
	}
	if len(agg.Quiz.Links) != 4 {
		t.Fatalf("got %d links, want 4", len(agg.Quiz.Links))
	}
	for i, l := range agg.Quiz.Links {
		if l.DisplayOrder != i {
			t.Fatalf("link %d has display order %d", i, l.DisplayOrder)
		}
	}
	ordered := agg.OrderedQuestions()
	wantTexts := []string{"E3", "E1", "N1", "N2"}
	for i, q := range ordered {
		if q.Text != wantTexts[i] {
			t.Fatalf("question %d = %q, want %q", i, q.Text, wantTexts[i])
		}
	}
}

func TestCreateIssuesSingleSave(t *testing.T) {
	store := newSpyStore()
	svc := newTestQuizService(store)
	before := store.Saves()
	_, err := svc.Create(context.Background(), &CreateQuizRequest{
		Name:         "One save",
		NewQuestions: []NewQuestionRequest{{Text: "Q1", CorrectAnswer: "A"}, {Text: "Q2", CorrectAnswer: "B"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := store.Saves() - before; got != 1 {
		t.Fatalf("SaveAll committed %d times, want 1", got)
	}
}

func TestCreateRequiresAtLeastOneQuestion(t *testing.T) {
	svc := newTestQuizService(newSpyStore())
	_, err := svc.Create(context.Background(), &CreateQuizRequest{
		Name:                "Empty",
		ExistingQuestionIDs: []uuid.UUID{uuid.Nil},
		NewQuestions:        []NewQuestionRequest{{Text: "  ", CorrectAnswer: "a"}},
	})
	wantKind(t, err, KindMissingArgument)
	var missing *MissingArgumentError
	if !errors.As(err, &missing) || missing.Field != "questions" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateValidatesName(t *testing.T) {
	svc := newTestQuizService(newSpyStore())
	questions := []NewQuestionRequest{{Text: "Q", CorrectAnswer: "A"}}
	for _, name := range []string{"", "    ", "ab", "  ab  ", strings.Repeat("n", QuizNameMaxLength+1)} {
		_, err := svc.Create(context.Background(), &CreateQuizRequest{Name: name, NewQuestions: questions})
		wantKind(t, err, KindMissingArgument)
	}
	if _, err := svc.Create(context.Background(), &CreateQuizRequest{Name: strings.Repeat("n", QuizNameMaxLength), NewQuestions: questions}); err != nil {
		t.Fatalf("name at max length rejected: %v", err)
	}
	if _, err := svc.Create(context.Background(), &CreateQuizRequest{Name: "abc", NewQuestions: questions}); err != nil {
		t.Fatalf("name at min length rejected: %v", err)
	}
	_, err := svc.Create(context.Background(), nil)
	wantKind(t, err, KindMissingArgument)
}

func TestCreateRejectsTooManyNewQuestions(t *testing.T) {
	store := newSpyStore()
	svc := newTestQuizService(store)
	questions := make([]NewQuestionRequest, 0, QuizNewQuestionsMaxCount+1)
	for i := 0; i <= QuizNewQuestionsMaxCount; i++ {
		questions = append(questions, NewQuestionRequest{Text: fmt.Sprintf("Question %d", i), CorrectAnswer: "a"})
	}

	_, err := svc.Create(context.Background(), &CreateQuizRequest{Name: "Too many", NewQuestions: questions})
	wantKind(t, err, KindMissingArgument)
	if store.units != 0 || store.Saves() != 0 {
		t.Fatal("oversized request reached the store")
	}

	if _, err := svc.Create(context.Background(), &CreateQuizRequest{Name: "Just enough", NewQuestions: questions[:QuizNewQuestionsMaxCount]}); err != nil {
		t.Fatalf("request at the limit rejected: %v", err)
	}
}

func TestCreateRejectsOverlongQuestionParts(t *testing.T) {
	svc := newTestQuizService(newSpyStore())
	long := strings.Repeat("x", QuestionTextMaxLength+1)
	_, err := svc.Create(context.Background(), &CreateQuizRequest{Name: "Long", NewQuestions: []NewQuestionRequest{{Text: long, CorrectAnswer: "a"}}})
	wantKind(t, err, KindMissingArgument)
	_, err = svc.Create(context.Background(), &CreateQuizRequest{Name: "Long", NewQuestions: []NewQuestionRequest{{Text: "q", CorrectAnswer: long}}})
	wantKind(t, err, KindMissingArgument)
}

func TestCreateDuplicateNewQuestionsFailBeforePersistence(t *testing.T) {
	store := newSpyStore()
	svc := newTestQuizService(store)
	_, err := svc.Create(context.Background(), &CreateQuizRequest{
		Name:                "Dups",
		ExistingQuestionIDs: []uuid.UUID{uuid.New()},
		NewQuestions: []NewQuestionRequest{
			{Text: "Capital of France?", CorrectAnswer: "Paris"},
			{Text: "capital of FRANCE?", CorrectAnswer: "Paris"},
		},
	})
	wantKind(t, err, KindMissingArgument)
	if store.lookups != 0 || store.units != 0 {
		t.Fatalf("store touched: %d lookups, %d units of work", store.lookups, store.units)
	}
}

func TestCreateFailsWhenAnyExistingIDMissing(t *testing.T) {
	store := newSpyStore()
	svc := newTestQuizService(store)
	existing := seedQuestions(t, svc, "Known")
	before := store.Saves()

	_, err := svc.Create(context.Background(), &CreateQuizRequest{
		Name:                "Partial",
		ExistingQuestionIDs: []uuid.UUID{existing[0], uuid.New()},
		NewQuestions:        []NewQuestionRequest{{Text: "New one", CorrectAnswer: "a"}},
	})
	wantKind(t, err, KindMissingArgument)
	if store.Saves() != before {
		t.Fatal("partial request was persisted")
	}
}

func TestCreatePropagatesSaveFailure(t *testing.T) {
	store := newSpyStore()
	store.saveErr = errors.New("disk full")
	svc := newTestQuizService(store)
	_, err := svc.Create(context.Background(), &CreateQuizRequest{Name: "Broken", NewQuestions: []NewQuestionRequest{{Text: "Q", CorrectAnswer: "A"}}})
	wantKind(t, err, KindUnexpected)
	page, _ := store.GetQuizzesPaged(context.Background(), "", 1, 10, models.SortDesc)
	if page.TotalCount != 0 {
		t.Fatal("failed save left a quiz behind")
	}
}

func TestUpdateRebuildsLinks(t *testing.T) {
	ctx := context.Background()
	store := newSpyStore()
	svc := newTestQuizService(store)
	existing := seedQuestions(t, svc, "Keep", "Drop")

	id, err := svc.Create(ctx, &CreateQuizRequest{
		Name:                "Original",
		ExistingQuestionIDs: existing,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = svc.Update(ctx, id, &UpdateQuizRequest{
		Name:                "Renamed",
		ExistingQuestionIDs: []uuid.UUID{existing[0]},
		NewQuestions:        []NewQuestionRequest{{Text: "Fresh", CorrectAnswer: "f"}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	details, err := svc.GetDetails(ctx, id)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	if details.Name != "Renamed" || len(details.Questions) != 2 {
		t.Fatalf("unexpected details: %+v", details)
	}
	if details.Questions[0].Text != "Keep" || details.Questions[1].Text != "Fresh" {
		t.Fatalf("unexpected order: %+v", details.Questions)
	}

	agg, _ := store.GetQuizWithQuestions(ctx, id)
	if agg.Quiz.UpdatedAt == nil {
		t.Fatal("UpdatedAt not set")
	}
	// The unlinked question itself survives.
	found, _ := store.GetQuestionsByIDs(ctx, []uuid.UUID{existing[1]})
	if len(found) != 1 {
		t.Fatal("dropped question was deleted")
	}
}

// createForUpdate stores a quiz linked to one existing question and returns
// the quiz id, that question's id and the store's save count afterwards.
func createForUpdate(t *testing.T, store *spyStore, svc *QuizService) (uuid.UUID, uuid.UUID, int) {
	t.Helper()
	existing := seedQuestions(t, svc, "Linked")
	id, err := svc.Create(context.Background(), &CreateQuizRequest{Name: "Before update", ExistingQuestionIDs: existing})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id, existing[0], store.Saves()
}

func assertUnchanged(t *testing.T, store *spyStore, svc *QuizService, id uuid.UUID, saves int) {
	t.Helper()
	if store.Saves() != saves {
		t.Fatalf("rejected update was saved: %d saves, want %d", store.Saves(), saves)
	}
	details, err := svc.GetDetails(context.Background(), id)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	if details.Name != "Before update" || len(details.Questions) != 1 || details.Questions[0].Text != "Linked" {
		t.Fatalf("quiz changed by rejected update: %+v", details)
	}
}

func TestUpdateRequiresAtLeastOneQuestion(t *testing.T) {
	store := newSpyStore()
	svc := newTestQuizService(store)
	id, _, saves := createForUpdate(t, store, svc)

	err := svc.Update(context.Background(), id, &UpdateQuizRequest{
		Name:                "After update",
		ExistingQuestionIDs: []uuid.UUID{uuid.Nil},
		NewQuestions:        []NewQuestionRequest{{Text: "   ", CorrectAnswer: "a"}},
	})
	wantKind(t, err, KindMissingArgument)
	assertUnchanged(t, store, svc, id, saves)
}

func TestUpdateFailsWhenAnyExistingIDMissing(t *testing.T) {
	store := newSpyStore()
	svc := newTestQuizService(store)
	id, linked, saves := createForUpdate(t, store, svc)

	err := svc.Update(context.Background(), id, &UpdateQuizRequest{
		Name:                "After update",
		ExistingQuestionIDs: []uuid.UUID{linked, uuid.New()},
		NewQuestions:        []NewQuestionRequest{{Text: "New one", CorrectAnswer: "a"}},
	})
	wantKind(t, err, KindMissingArgument)
	var missing *MissingArgumentError
	if !errors.As(err, &missing) || missing.Field != "existingQuestionIds" {
		t.Fatalf("unexpected error: %v", err)
	}
	assertUnchanged(t, store, svc, id, saves)
}

func TestUpdateDuplicateNewQuestionsFailBeforePersistence(t *testing.T) {
	store := newSpyStore()
	svc := newTestQuizService(store)
	id, linked, saves := createForUpdate(t, store, svc)
	lookups, units := store.lookups, store.units

	err := svc.Update(context.Background(), id, &UpdateQuizRequest{
		Name:                "After update",
		ExistingQuestionIDs: []uuid.UUID{linked},
		NewQuestions: []NewQuestionRequest{
			{Text: "Largest ocean?", CorrectAnswer: "Pacific"},
			{Text: " LARGEST OCEAN? ", CorrectAnswer: "Pacific"},
		},
	})
	wantKind(t, err, KindMissingArgument)
	if store.lookups != lookups || store.units != units {
		t.Fatal("duplicate check ran after store access")
	}
	assertUnchanged(t, store, svc, id, saves)
}

func TestListPagedHugePageNumber(t *testing.T) {
	ctx := context.Background()
	svc := newTestQuizService(newSpyStore())
	if _, err := svc.Create(ctx, &CreateQuizRequest{Name: "Lonely", NewQuestions: []NewQuestionRequest{{Text: "Q", CorrectAnswer: "A"}}}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	res, err := svc.ListPaged(ctx, QuizPagedRequest{Page: 1<<61 + 1, PageSize: 4})
	if err != nil {
		t.Fatalf("ListPaged: %v", err)
	}
	if len(res.Items) != 0 || res.TotalCount != 1 {
		t.Fatalf("unexpected page: %+v", res)
	}

	questions, err := NewQuestionService(newSpyStore()).SearchPaged(ctx, QuestionPagedRequest{Page: 1<<62 + 3, PageSize: 7})
	if err != nil || len(questions.Items) != 0 {
		t.Fatalf("SearchPaged: %+v, %v", questions, err)
	}
}

func TestUpdateMissingQuiz(t *testing.T) {
	svc := newTestQuizService(newSpyStore())
	err := svc.Update(context.Background(), uuid.New(), &UpdateQuizRequest{Name: "x", NewQuestions: []NewQuestionRequest{{Text: "q", CorrectAnswer: "a"}}})
	wantKind(t, err, KindEntityNotFound)
	err = svc.Update(context.Background(), uuid.Nil, &UpdateQuizRequest{Name: "x"})
	wantKind(t, err, KindMissingArgument)
}

func TestDeleteHidesQuizButKeepsQuestions(t *testing.T) {
	ctx := context.Background()
	store := newSpyStore()
	svc := newTestQuizService(store)
	id, err := svc.Create(ctx, &CreateQuizRequest{Name: "Doomed", NewQuestions: []NewQuestionRequest{{Text: "Survivor", CorrectAnswer: "yes"}}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	details, _ := svc.GetDetails(ctx, id)
	questionID := details.Questions[0].ID

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = svc.GetDetails(ctx, id)
	wantKind(t, err, KindEntityNotFound)

	list, err := svc.ListPaged(ctx, QuizPagedRequest{})
	if err != nil {
		t.Fatalf("ListPaged: %v", err)
	}
	for _, item := range list.Items {
		if item.ID == id {
			t.Fatal("deleted quiz still listed")
		}
	}

	found, _ := store.GetQuestionsByIDs(ctx, []uuid.UUID{questionID})
	if len(found) != 1 {
		t.Fatal("linked question removed with quiz")
	}

	wantKind(t, svc.Delete(ctx, id), KindEntityNotFound)
	wantKind(t, svc.Delete(ctx, uuid.Nil), KindMissingArgument)
}

func TestListPagedDefaultsAndSearch(t *testing.T) {
	ctx := context.Background()
	svc := newTestQuizService(newSpyStore())
	for _, name := range []string{"Alpha geography", "Beta history", "Gamma GEOGRAPHY"} {
		if _, err := svc.Create(ctx, &CreateQuizRequest{Name: name, NewQuestions: []NewQuestionRequest{{Text: name + "?", CorrectAnswer: "a"}}}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := svc.ListPaged(ctx, QuizPagedRequest{})
	if err != nil {
		t.Fatalf("ListPaged: %v", err)
	}
	if all.Page != DefaultPage || all.PageSize != DefaultPageSize || all.TotalCount != 3 || all.TotalPages != 1 {
		t.Fatalf("unexpected envelope: %+v", all)
	}
	if all.Items[0].Name != "Gamma GEOGRAPHY" || all.Items[0].QuestionCount != 1 {
		t.Fatalf("default order should be newest first: %+v", all.Items)
	}

	geo, _ := svc.ListPaged(ctx, QuizPagedRequest{Search: "geo", SortOrder: "asc"})
	if geo.TotalCount != 2 || geo.Items[0].Name != "Alpha geography" {
		t.Fatalf("unexpected search result: %+v", geo.Items)
	}

	paged, _ := svc.ListPaged(ctx, QuizPagedRequest{Page: 2, PageSize: 2})
	if len(paged.Items) != 1 || paged.TotalPages != 2 {
		t.Fatalf("unexpected second page: %+v", paged)
	}
}

func TestQuestionSearch(t *testing.T) {
	ctx := context.Background()
	store := newSpyStore()
	svc := newTestQuizService(store)
	seedQuestions(t, svc, "Capital of France?", "Capital of Spain?", "Largest ocean?")

	questions := NewQuestionService(store)
	res, err := questions.SearchPaged(ctx, QuestionPagedRequest{Search: "CAPITAL"})
	if err != nil {
		t.Fatalf("SearchPaged: %v", err)
	}
	if res.TotalCount != 2 || res.Items[0].Text != "Capital of Spain?" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.PageSize != DefaultPageSize {
		t.Fatalf("page size = %d", res.PageSize)
	}
}
