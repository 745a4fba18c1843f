package services

import (
	"time"

	"quizmaker/models"

	"github.com/google/uuid"
)

// PagedResult is the paging envelope returned to API clients.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func newPagedResult[S, T any](p models.Page[S], convert func(S) T) *PagedResult[T] {
	items := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, convert(it))
	}
	return &PagedResult[T]{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages(),
	}
}

type QuizPagedRequest struct {
	Search    string           `form:"search"`
	Page      int              `form:"page"`
	PageSize  int              `form:"pageSize"`
	SortOrder models.SortOrder `form:"sortOrder"`
}

type QuestionPagedRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type NewQuestionRequest struct {
	Text          string `json:"text"`
	CorrectAnswer string `json:"correctAnswer"`
}

type CreateQuizRequest struct {
	Name                string               `json:"name" binding:"required,min=3,max=200"`
	ExistingQuestionIDs []uuid.UUID          `json:"existingQuestionIds"`
	NewQuestions        []NewQuestionRequest `json:"newQuestions" binding:"max=200"`
}

type UpdateQuizRequest struct {
	Name                string               `json:"name" binding:"required,min=3,max=200"`
	ExistingQuestionIDs []uuid.UUID          `json:"existingQuestionIds"`
	NewQuestions        []NewQuestionRequest `json:"newQuestions" binding:"max=200"`
}

type QuizListItem struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type QuizQuestionItem struct {
	ID            uuid.UUID `json:"id"`
	Text          string    `json:"text"`
	CorrectAnswer string    `json:"correctAnswer"`
}

type QuizDetails struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Questions []QuizQuestionItem `json:"questions"`
}

type QuestionListItem struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ExporterDTO struct {
	Key           string `json:"key"`
	DisplayName   string `json:"displayName"`
	FileExtension string `json:"fileExtension"`
	MimeType      string `json:"mimeType"`
}
