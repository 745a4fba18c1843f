package services

import (
	"context"
	"fmt"
	"strings"

	"quizmaker/exporters"
	"quizmaker/models"

	"github.com/google/uuid"
)

// QuizLoader is the read path the export service needs from the quiz aggregate.
type QuizLoader interface {
	LoadQuiz(ctx context.Context, id uuid.UUID) (*models.QuizAggregate, error)
}

type ExportService struct {
	quizzes  QuizLoader
	registry *exporters.Registry
	cache    ExportCache
}

func NewExportService(quizzes QuizLoader, registry *exporters.Registry, cache ExportCache) *ExportService {
	if cache == nil {
		cache = NopExportCache{}
	}
	return &ExportService{quizzes: quizzes, registry: registry, cache: cache}
}

func (s *ExportService) ListExporters() []ExporterDTO {
	infos := s.registry.ListAll()
	out := make([]ExporterDTO, 0, len(infos))
	for _, info := range infos {
		out = append(out, ExporterDTO{
			Key:           info.Key,
			DisplayName:   info.DisplayName,
			FileExtension: info.FileExtension,
			MimeType:      info.MimeType,
		})
	}
	return out
}

// Export renders the quiz with the renderer registered under key.
func (s *ExportService) Export(ctx context.Context, quizID uuid.UUID, key string) (*exporters.Result, error) {
	if quizID == uuid.Nil {
		return nil, missingArgument("quizId", "Quiz id is required.")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, missingArgument("exporter", "Exporter key is required.")
	}
	renderer, ok := s.registry.Resolve(key)
	if !ok {
		return nil, &ExporterNotFoundError{Key: key}
	}

	quiz, err := s.quizzes.LoadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	cacheKey := exportCacheKey(quiz, renderer.Info().Key)
	if res, ok := s.cache.Get(ctx, cacheKey); ok {
		return res, nil
	}

	res, err := renderer.Render(quiz)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", renderer.Info().Key, err)
	}
	s.cache.Set(ctx, cacheKey, res)
	return res, nil
}
