package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizQuestion links one quiz to one question at a display position.
// The composite key forbids linking the same question twice into one quiz.
type QuizQuestion struct {
	QuizID       uuid.UUID `json:"quiz_id" gorm:"type:uuid;primaryKey;uniqueIndex:ux_quiz_question_display_order,priority:1"`
	QuestionID   uuid.UUID `json:"question_id" gorm:"type:uuid;primaryKey;index"`
	DisplayOrder int       `json:"display_order" gorm:"not null;uniqueIndex:ux_quiz_question_display_order,priority:2"`
	CreatedAt    time.Time `json:"created_at"`
}
