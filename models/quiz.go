package models

import (
	"sort"

	"github.com/google/uuid"
)

type Quiz struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name  string    `json:"name" gorm:"size:200;not null;index"`
	Audit `gorm:"embedded"`

	// Relationships
	Links []QuizQuestion `json:"links,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

// QuizAggregate is a quiz together with the questions its links point at.
// Questions are keyed by id; links never hold the question itself.
type QuizAggregate struct {
	Quiz      Quiz
	Questions map[uuid.UUID]Question
}

// HasQuestionCollection reports whether the link collection was loaded at all.
// An empty but present collection returns true.
func (a *QuizAggregate) HasQuestionCollection() bool {
	return a != nil && a.Quiz.Links != nil
}

// OrderedQuestions returns the linked questions by ascending display order.
// Links whose question is missing from the arena yield a zero Question carrying only the id.
func (a *QuizAggregate) OrderedQuestions() []Question {
	if a == nil || len(a.Quiz.Links) == 0 {
		return []Question{}
	}
	links := make([]QuizQuestion, len(a.Quiz.Links))
	copy(links, a.Quiz.Links)
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].DisplayOrder < links[j].DisplayOrder
	})

	out := make([]Question, 0, len(links))
	for _, l := range links {
		q, ok := a.Questions[l.QuestionID]
		if !ok {
			q = Question{ID: l.QuestionID}
		}
		out = append(out, q)
	}
	return out
}
