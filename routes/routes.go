package routes

import (
	"net/http"

	"quizmaker/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	quizHandler *handlers.QuizHandler,
	questionHandler *handlers.QuestionHandler,
	exportHandler *handlers.ExportHandler,
) {
	api := router.Group("/api")
	{
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.PUT("/:id", quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
			quizzes.GET("/:id/export", exportHandler.ExportQuiz)
		}

		api.GET("/questions", questionHandler.SearchQuestions)
		api.GET("/exporters", exportHandler.ListExporters)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
