package services

const (
	QuizNameMinLength        = 3
	QuizNameMaxLength        = 200
	QuizNewQuestionsMaxCount = 200
	QuestionTextMaxLength    = 1000
	CorrectAnswerMaxLength   = 1000

	DefaultPage     = 1
	DefaultPageSize = 50
)
