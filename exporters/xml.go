package exporters

import (
	"encoding/xml"
	"fmt"

	"quizmaker/models"
)

type XMLRenderer struct{}

func NewXMLRenderer() *XMLRenderer { return &XMLRenderer{} }

func (XMLRenderer) Info() Info {
	return Info{Key: "xml", DisplayName: "XML", FileExtension: "xml", MimeType: "application/xml"}
}

type xmlQuiz struct {
	XMLName   xml.Name      `xml:"Quiz"`
	Name      string        `xml:"Name,attr"`
	Questions []xmlQuestion `xml:"Question"`
}

type xmlQuestion struct {
	Text string `xml:"Text"`
}

func (r XMLRenderer) Render(quiz *models.QuizAggregate) (*Result, error) {
	if quiz == nil {
		return nil, fmt.Errorf("xml export: nil quiz")
	}
	doc := xmlQuiz{Name: quiz.Quiz.Name}
	for _, q := range quiz.OrderedQuestions() {
		doc.Questions = append(doc.Questions, xmlQuestion{Text: q.Text})
	}
	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("xml export: %w", err)
	}
	content := append([]byte(xml.Header), b...)
	return newResult(content, quiz.Quiz.Name, r.Info()), nil
}
