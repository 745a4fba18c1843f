package handlers

import (
	"errors"
	"log"
	"net/http"

	"quizmaker/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const unexpectedMessage = "An unexpected error occurred."

// respondError maps service errors onto status codes. Unexpected errors are
// logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindMissingArgument:
		var missing *services.MissingArgumentError
		errors.As(err, &missing)
		c.JSON(http.StatusBadRequest, gin.H{"error": missing.Message, "field": missing.Field})
	case services.KindEntityNotFound, services.KindExporterNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": unexpectedMessage})
	}
}

// respondBindError reports a request body or query that could not be bound.
func respondBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID", "field": "id"})
		return uuid.Nil, false
	}
	return id, true
}
