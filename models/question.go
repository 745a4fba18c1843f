package models

import (
	"github.com/google/uuid"
)

type Question struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Text          string    `json:"text" gorm:"size:1000;not null;index"`
	CorrectAnswer string    `json:"correct_answer" gorm:"size:1000;not null"`
	Audit         `gorm:"embedded"`
}
