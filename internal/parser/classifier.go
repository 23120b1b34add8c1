package parser

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Marker sets used to score a document. The two sets are disjoint and
// their thresholds differ, so the decision can never tie.
var (
	porteiraMarkers = [][]byte{
		[]byte("Acompanhamento de Resultados"),
		[]byte("Conjunto de Contrato"),
		[]byte("Total"),
		[]byte("Leituras"),
	}
	releiturasMarkers = [][]byte{
		[]byte("Releitura"),
		[]byte("Instalacao"),
		[]byte("Endereco"),
		[]byte("Vencimento"),
	}
)

// ReportClassifier decides which report family a raw document belongs to
// by counting marker-string hits.
type ReportClassifier struct{}

// NewReportClassifier creates a classifier.
func NewReportClassifier() *ReportClassifier {
	return &ReportClassifier{}
}

// Classify scores the document content and returns the detected report
// type with a diagnostic message. It never fails: unreadable content
// degrades to UNKNOWN.
//
// Decision rule: PORTEIRA when at least 3 of its 4 markers are present,
// RELEITURAS when at least 2 of its 4 markers are present, UNKNOWN
// otherwise. PORTEIRA is checked first and wins if both thresholds are
// somehow met.
func (c *ReportClassifier) Classify(content []byte) (ReportType, string) {
	scannable := content
	if DetectFileKind(content) == FileKindXLSX {
		// xlsx content is deflate-compressed inside a zip container, so
		// markers are only visible in the extracted cell text.
		if text, err := workbookText(content); err == nil {
			scannable = text
		}
	}

	porteiraScore := countMarkers(scannable, porteiraMarkers)
	releiturasScore := countMarkers(scannable, releiturasMarkers)

	switch {
	case porteiraScore >= 3:
		return ReportTypePorteira, fmt.Sprintf("relatório identificado como PORTEIRA (score: %d/4)", porteiraScore)
	case releiturasScore >= 2:
		return ReportTypeReleituras, fmt.Sprintf("relatório identificado como RELEITURAS (score: %d/4)", releiturasScore)
	default:
		return ReportTypeUnknown, "tipo de relatório não identificado"
	}
}

// ClassifyFile reads and classifies a document on disk. Read errors
// yield UNKNOWN with the error as diagnostic, never a failure.
func (c *ReportClassifier) ClassifyFile(path string) (ReportType, string) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ReportTypeUnknown, fmt.Sprintf("erro ao validar: %v", err)
	}
	return c.Classify(content)
}

func countMarkers(content []byte, markers [][]byte) int {
	score := 0
	for _, m := range markers {
		if bytes.Contains(content, m) {
			score++
		}
	}
	return score
}

// workbookText concatenates every cell of every sheet so markers can be
// matched against xlsx content the same way as against flat bytes.
func workbookText(content []byte) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, c := range row {
				buf.WriteString(c)
				buf.WriteByte('\n')
			}
		}
	}
	return buf.Bytes(), nil
}
