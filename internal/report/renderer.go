// internal/report/renderer.go
package report

import (
	"bytes"
	"fmt"
	"time"

	apperrors "transparency-service/internal/common/errors"
	"transparency-service/internal/common/logger"
	"transparency-service/internal/common/metrics"
	"transparency-service/internal/models"

	"github.com/go-pdf/fpdf"
)

// Renderer turns a report record into a paginated PDF. Rendering is a pure
// function of the record: document metadata dates are pinned to the record's
// GeneratedAt, so the same record always yields byte-identical output.
type Renderer struct {
	platformName string
	logger       logger.Logger
}

func NewRenderer(platformName string, log logger.Logger) *Renderer {
	return &Renderer{
		platformName: platformName,
		logger:       log.WithFields(map[string]interface{}{"component": "document-renderer"}),
	}
}

// Render produces the complete document bytes, or a RenderError. No partial
// output is ever returned.
func (r *Renderer) Render(record *models.ReportRecord) ([]byte, error) {
	start := time.Now()

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCreationDate(record.GeneratedAt)
	pdf.SetModificationDate(record.GeneratedAt)
	pdf.SetTitle("Product Transparency Report", true)
	pdf.SetMargins(50, 50, 50)
	pdf.SetAutoPageBreak(true, 50)
	pdf.AddPage()

	r.writeTitle(pdf)
	r.writeProductInfo(pdf, record)
	r.writeAssessment(pdf, record)
	r.writeFooter(pdf, record)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewRenderError(err)
	}

	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	r.logger.Info("report rendered", map[string]interface{}{
		"reportId":  record.ReportID,
		"byteCount": buf.Len(),
	})

	return buf.Bytes(), nil
}

func (r *Renderer) writeTitle(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(45, 80, 22)
	pdf.CellFormat(0, 30, "Product Transparency Report", "", 1, "C", false, 0, "")
	pdf.Ln(14)
}

func (r *Renderer) writeProductInfo(pdf *fpdf.Fpdf, record *models.ReportRecord) {
	pdf.SetFont("Helvetica", "BU", 18)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 24, "Product Information", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	description := record.Product.Description
	if description == "" {
		description = "Not provided"
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	lines := []string{
		fmt.Sprintf("Product Name: %s", record.Product.Name),
		fmt.Sprintf("Brand: %s", record.Product.Brand),
		fmt.Sprintf("Category: %s", record.Product.Category),
		fmt.Sprintf("Description: %s", description),
		fmt.Sprintf("Report Generated: %s", record.GeneratedAt.Format("1/2/2006")),
	}
	for _, line := range lines {
		pdf.SetX(70)
		pdf.MultiCell(0, 16, line, "", "L", false)
	}
	pdf.Ln(28)
}

func (r *Renderer) writeAssessment(pdf *fpdf.Fpdf, record *models.ReportRecord) {
	pdf.SetFont("Helvetica", "BU", 18)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 24, "Transparency Assessment", "", 1, "L", false, 0, "")

	for _, entry := range record.Entries {
		pdf.Ln(14)

		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(5, 150, 105)
		pdf.SetX(60)
		pdf.MultiCell(0, 18, fmt.Sprintf("Question %d: %s", entry.StepNumber, entry.Question), "", "L", false)

		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetX(70)
		pdf.MultiCell(0, 16, fmt.Sprintf("Response: %s", entry.Response), "", "L", false)
	}
	pdf.Ln(28)
}

func (r *Renderer) writeFooter(pdf *fpdf.Fpdf, record *models.ReportRecord) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 14, fmt.Sprintf("Generated by %s", r.platformName), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 14, "AI-powered Product Transparency Platform", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 14, fmt.Sprintf("Report ID: %s", record.ReportID), "", 1, "C", false, 0, "")
}
