// Package exporters renders a quiz into downloadable files.
//
// Each format is a Renderer registered with a Registry at startup. Renderers
// only ever emit question text; correct answers stay out of every export.
package exporters

import (
	"errors"

	"quizmaker/models"
)

// ErrMissingQuestions is returned by renderers that require the quiz's link
// collection to be loaded.
var ErrMissingQuestions = errors.New("quiz question collection is not loaded")

// Info describes a renderer to clients choosing an export format.
type Info struct {
	Key           string
	DisplayName   string
	FileExtension string
	MimeType      string
}

// Result is a rendered file.
type Result struct {
	Content  []byte `json:"content"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
}

type Renderer interface {
	Info() Info
	Render(quiz *models.QuizAggregate) (*Result, error)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func withBOM(b []byte) []byte {
	out := make([]byte, 0, len(utf8BOM)+len(b))
	out = append(out, utf8BOM...)
	return append(out, b...)
}

func fileName(quizName string, info Info) string {
	return SanitizeFileName(quizName) + "." + info.FileExtension
}

func newResult(content []byte, quizName string, info Info) *Result {
	return &Result{
		Content:  content,
		FileName: fileName(quizName, info),
		MimeType: info.MimeType,
	}
}
