package infra

// PDF report generation using go-pdf/fpdf.
// Three reports are produced to storagePath:
//   - fiche_{recordid}.pdf      one medication's full fiche
//   - stock_{date}.pdf          stock on hand with alert highlighting
//   - interactions_{date}.pdf   known interactions for a substance set

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/youssef7511/AVCNA/internal/model"

	"github.com/go-pdf/fpdf"
)

const reportDateLayout = "02/01/2006 15:04"

func newReportPage(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(180, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(180, 5, time.Now().Format(reportDateLayout), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	return pdf
}

func labelValue(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(135, 6, value, "", "L", false)
}

// GenerateMedicationPDF writes one medication's fiche to storagePath and
// returns the absolute path of the generated file.
func GenerateMedicationPDF(m *model.Medication, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("fiche_%d.pdf", m.RecordID))

	pdf := newReportPage("Fiche Médicament")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(180, 8, m.ItemName, "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	labelValue(pdf, "Code-barres :", m.Barcode)
	labelValue(pdf, "AMM :", m.AMM)
	labelValue(pdf, "DCI :", m.Dci)
	labelValue(pdf, "Famille :", m.Family)
	labelValue(pdf, "Laboratoire :", m.Labo)
	labelValue(pdf, "Forme :", m.Forme)
	labelValue(pdf, "Voie :", m.Voie)
	labelValue(pdf, "Présentation :", m.Present)
	labelValue(pdf, "Posologie :", m.Posology)
	labelValue(pdf, "Indication :", m.Indication)
	if m.Tableau != "" {
		labelValue(pdf, "Tableau :", m.Tableau)
	}
	if m.Pediatric == 1 {
		labelValue(pdf, "Pédiatrique :", "Oui")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

// GenerateStockPDF writes the stock-on-hand report. Lines below their
// minimum threshold are rendered on a light red background.
func GenerateStockPDF(lines []model.Stock, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("stock_%s.pdf", time.Now().Format("2006-01-02")))

	pdf := newReportPage("État du Stock")

	cols := []float64{70, 30, 20, 20, 40}
	headers := []string{"Médicament", "Lot", "Qté", "Min", "Péremption"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(25, 118, 210)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(cols[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8)
	for i := range lines {
		line := &lines[i]
		low := line.Quantity < line.MinStock
		if low {
			pdf.SetFillColor(255, 205, 210)
		}
		expiry := ""
		if line.ExpiryDate != nil {
			expiry = line.ExpiryDate.Format("02/01/2006")
		}
		pdf.CellFormat(cols[0], 6, line.MedicName, "1", 0, "L", low, 0, "")
		pdf.CellFormat(cols[1], 6, line.BatchNo, "1", 0, "L", low, 0, "")
		pdf.CellFormat(cols[2], 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", low, 0, "")
		pdf.CellFormat(cols[3], 6, fmt.Sprintf("%d", line.MinStock), "1", 0, "R", low, 0, "")
		pdf.CellFormat(cols[4], 6, expiry, "1", 1, "L", low, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

// GenerateInteractionsPDF writes the interaction report for a checked
// substance set.
func GenerateInteractionsPDF(interactions []model.Interaction, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("interactions_%s.pdf", time.Now().Format("2006-01-02")))

	pdf := newReportPage("Interactions Médicamenteuses")

	if len(interactions) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(180, 8, "Aucune interaction connue.", "", 1, "L", false, 0, "")
	}

	for i := range interactions {
		it := &interactions[i]
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(180, 7, fmt.Sprintf("%s  ×  %s", it.Dci1, it.Dci2), "B", 1, "L", false, 0, "")
		if it.Level != "" {
			labelValue(pdf, "Niveau :", it.Level)
		}
		if it.Description != "" {
			labelValue(pdf, "Description :", it.Description)
		}
		if it.Mecanisme != "" {
			labelValue(pdf, "Mécanisme :", it.Mecanisme)
		}
		if it.Conduite != "" {
			labelValue(pdf, "Conduite à tenir :", it.Conduite)
		}
		pdf.Ln(3)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
