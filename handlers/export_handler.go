package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"quizmaker/services"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) ListExporters(c *gin.Context) {
	c.JSON(http.StatusOK, h.exportService.ListExporters())
}

// ExportQuiz streams the rendered file as a download.
func (h *ExportHandler) ExportQuiz(c *gin.Context) {
	quizID, ok := parseID(c)
	if !ok {
		return
	}

	res, err := h.exportService.Export(c.Request.Context(), quizID, c.Query("exporter"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(res.FileName))
	c.Data(http.StatusOK, res.MimeType, res.Content)
}

func contentDisposition(fileName string) string {
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fileName, url.PathEscape(fileName))
}
