package exporters

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"quizmaker/models"
)

type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

func (CSVRenderer) Info() Info {
	return Info{Key: "csv", DisplayName: "CSV", FileExtension: "csv", MimeType: "text/csv"}
}

// Render writes a single "Question" column. Fields holding a comma, quote or
// line break are quoted with inner quotes doubled.
func (r CSVRenderer) Render(quiz *models.QuizAggregate) (*Result, error) {
	if quiz == nil {
		return nil, fmt.Errorf("csv export: nil quiz")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Question"}); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	for _, q := range quiz.OrderedQuestions() {
		if err := w.Write([]string{q.Text}); err != nil {
			return nil, fmt.Errorf("csv export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	return newResult(withBOM(buf.Bytes()), quiz.Quiz.Name, r.Info()), nil
}
