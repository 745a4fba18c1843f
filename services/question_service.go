package services

import (
	"context"
	"strings"

	"quizmaker/models"
	"quizmaker/repository"
)

type QuestionService struct {
	store repository.Store
}

func NewQuestionService(store repository.Store) *QuestionService {
	return &QuestionService{store: store}
}

// SearchPaged lists questions newest first, optionally filtered by text.
func (s *QuestionService) SearchPaged(ctx context.Context, req QuestionPagedRequest) (*PagedResult[QuestionListItem], error) {
	page := req.Page
	if page == 0 {
		page = DefaultPage
	}
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	result, err := s.store.SearchQuestionsPaged(ctx, strings.TrimSpace(req.Search), page, pageSize)
	if err != nil {
		return nil, err
	}
	return newPagedResult(result, func(q models.Question) QuestionListItem {
		return QuestionListItem{ID: q.ID, Text: q.Text, CreatedAt: q.CreatedAt}
	}), nil
}
