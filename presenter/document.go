package presenter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/medwatch/disease-insights-api/extractor/entities"
)

// docBlock is one line-plus-body unit inside a document section.
type docBlock struct {
	Line string
	Body string
}

// docSection is a titled group of blocks. Sections and blocks are assembled
// separately from the PDF layout so the document's content can be tested
// without decompressing PDF streams.
type docSection struct {
	Header string
	Blocks []docBlock
}

// documentTitle returns the title line of the document.
func documentTitle(record *entities.DiseaseRecord) string {
	return orPlaceholder(record.Name, "Disease Info")
}

// buildSections assembles the document content in the same field order and
// with the same placeholder policy as BuildView.
func buildSections(record *entities.DiseaseRecord) []docSection {
	stats := record.Statistics
	statistics := docSection{
		Header: "Statistics",
		Blocks: []docBlock{{
			Body: fmt.Sprintf("Total Cases: %s\nRecovery Rate: %s\nMortality Rate: %s",
				orPlaceholder(stats.TotalCases.String(), placeholderValue),
				orPlaceholder(stats.RecoveryRate, placeholderValue),
				orPlaceholder(stats.MortalityRate, placeholderValue)),
		}},
	}

	options := docSection{Header: "Recovery Options"}
	for _, opt := range record.RecoveryOptions {
		options.Blocks = append(options.Blocks, docBlock{
			Line: "- " + opt.Label,
			Body: opt.Description,
		})
	}
	if len(options.Blocks) == 0 {
		options.Blocks = []docBlock{{Body: placeholderValue}}
	}

	medication := docSection{Header: "Medication"}
	for i, med := range record.Medication {
		medication.Blocks = append(medication.Blocks, docBlock{
			Line: fmt.Sprintf("%d. %s", i+1, orPlaceholder(med.Name, placeholderName)),
			Body: fmt.Sprintf("Dosage: %s\nSide Effects: %s",
				orPlaceholder(med.Dosage, placeholderValue),
				strings.Join(med.SideEffects, ", ")),
		})
	}
	if len(medication.Blocks) == 0 {
		medication.Blocks = []docBlock{{Body: placeholderValue}}
	}

	return []docSection{statistics, options, medication}
}

// RenderDocument lays the record out as a paginated PDF and returns its
// bytes, suitable for direct download. Page breaks are inserted automatically
// when content exceeds a page.
func RenderDocument(record *entities.DiseaseRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, tr(documentTitle(record)), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	for _, section := range buildSections(record) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 10, tr(section.Header), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)

		for _, block := range section.Blocks {
			if block.Line != "" {
				pdf.CellFormat(0, 8, tr(block.Line), "", 1, "L", false, 0, "")
			}
			if block.Body != "" {
				pdf.MultiCell(0, 8, tr(block.Body), "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}
