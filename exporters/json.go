package exporters

import (
	"fmt"

	"quizmaker/models"

	"github.com/bytedance/sonic"
)

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (JSONRenderer) Info() Info {
	return Info{Key: "json", DisplayName: "JSON", FileExtension: "json", MimeType: "application/json"}
}

type jsonQuiz struct {
	Name      string         `json:"name"`
	Questions []jsonQuestion `json:"questions"`
}

type jsonQuestion struct {
	Text string `json:"text"`
}

func (r JSONRenderer) Render(quiz *models.QuizAggregate) (*Result, error) {
	if quiz == nil {
		return nil, fmt.Errorf("json export: nil quiz")
	}
	doc := jsonQuiz{Name: quiz.Quiz.Name, Questions: []jsonQuestion{}}
	for _, q := range quiz.OrderedQuestions() {
		doc.Questions = append(doc.Questions, jsonQuestion{Text: q.Text})
	}
	b, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json export: %w", err)
	}
	return newResult(b, quiz.Quiz.Name, r.Info()), nil
}
