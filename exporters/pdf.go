package exporters

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"quizmaker/models"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Page geometry in points.
const (
	pdfMarginX      = 40.0
	pdfTitleY       = 50.0
	pdfTitleGap     = 30.0
	pdfLineHeight   = 18.0
	pdfBottomMargin = 40.0
	pdfTitleSize    = 16.0
	pdfTextSize     = 11.0
)

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (PDFRenderer) Info() Info {
	return Info{Key: "pdf", DisplayName: "PDF", FileExtension: "pdf", MimeType: "application/pdf"}
}

type pdfLine struct {
	y    float64
	text string
}

// layoutPDF places the numbered question lines on a single page. Once the
// cursor passes the bottom margin the remaining questions are dropped.
func layoutPDF(questions []models.Question, pageHeight float64) []pdfLine {
	lines := make([]pdfLine, 0, len(questions))
	y := pdfTitleY + pdfTitleGap
	for i, q := range questions {
		lines = append(lines, pdfLine{y: y, text: strconv.Itoa(i+1) + ". " + q.Text})
		y += pdfLineHeight
		if y > pageHeight-pdfBottomMargin {
			break
		}
	}
	return lines
}

// pdfText encodes s as Windows-1252, the code page of the core Helvetica font.
// Runes the code page cannot represent become '?'.
func pdfText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (r PDFRenderer) Render(quiz *models.QuizAggregate) (*Result, error) {
	if quiz == nil {
		return nil, fmt.Errorf("pdf export: nil quiz")
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(quiz.Quiz.Name, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	title := quiz.Quiz.Name
	if title == "" {
		title = "Quiz"
	}
	pdf.SetFont("Helvetica", "", pdfTitleSize)
	pdf.Text(pdfMarginX, pdfTitleY, pdfText(title))

	pdf.SetFont("Helvetica", "", pdfTextSize)
	for _, l := range layoutPDF(quiz.OrderedQuestions(), pageHeight) {
		pdf.Text(pdfMarginX, l.y, pdfText(l.text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf export: %w", err)
	}
	return newResult(buf.Bytes(), quiz.Quiz.Name, r.Info()), nil
}
