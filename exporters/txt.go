package exporters

import (
	"fmt"
	"strings"

	"quizmaker/models"
)

type TXTRenderer struct{}

func NewTXTRenderer() *TXTRenderer { return &TXTRenderer{} }

func (TXTRenderer) Info() Info {
	return Info{Key: "txt", DisplayName: "Plain Text", FileExtension: "txt", MimeType: "text/plain"}
}

// Render emits one question per line. Unlike the other formats it refuses a
// quiz whose link collection was never loaded.
func (r TXTRenderer) Render(quiz *models.QuizAggregate) (*Result, error) {
	if !quiz.HasQuestionCollection() {
		return nil, fmt.Errorf("txt export: %w", ErrMissingQuestions)
	}
	questions := quiz.OrderedQuestions()
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		lines = append(lines, q.Text)
	}
	content := []byte(strings.Join(lines, "\n"))
	return newResult(withBOM(content), quiz.Quiz.Name, r.Info()), nil
}
