// Package importer drives the full ingestion pipeline for an uploaded
// report: classify, parse, enrich/route, persist, refresh histories.
package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"vigilacore/internal/config"
	"vigilacore/internal/parser"
	"vigilacore/internal/reference"
	"vigilacore/internal/routing"
	"vigilacore/internal/store"
)

// Coordinator wires the parsers, router and store together for uploads.
type Coordinator struct {
	store      *store.Store
	cfg        *config.AppConfig
	root       string // reference discovery root (data dir parent)
	classifier *parser.ReportClassifier
}

// NewCoordinator creates a coordinator. root anchors reference workbook
// discovery, normally the executable directory.
func NewCoordinator(s *store.Store, cfg *config.AppConfig, root string) *Coordinator {
	return &Coordinator{
		store:      s,
		cfg:        cfg,
		root:       root,
		classifier: parser.NewReportClassifier(),
	}
}

// ImportResult summary of one processed upload.
type ImportResult struct {
	ID           string                `json:"id"`
	Filename     string                `json:"filename"`
	ReportType   parser.ReportType     `json:"reportType"`
	FileHash     string                `json:"fileHash"`
	Duplicate    bool                  `json:"duplicate"`
	TotalRows    int                   `json:"totalRows"`
	ImportedRows int                   `json:"importedRows"`
	Diagnostic   string                `json:"diagnostic,omitempty"`
	Releituras   *parser.ReleituraStats `json:"releituras,omitempty"`
	Porteira     *parser.PorteiraStats  `json:"porteira,omitempty"`
	Duration     time.Duration         `json:"duration"`
}

// FileHash computes the SHA-256 of a file, used to skip reprocessing the
// same upload.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ImportReleituras processes a pending-services report: classify, parse
// positionally, route every record, replace the stored set.
func (c *Coordinator) ImportReleituras(path, filename string) (*ImportResult, error) {
	start := time.Now()

	res := &ImportResult{
		ID:       uuid.NewString(),
		Filename: filename,
	}

	hash, err := FileHash(path)
	if err != nil {
		return nil, err
	}
	res.FileHash = hash
	if last, err := c.store.LastImportHash(string(parser.ReportTypeReleituras)); err == nil && last != "" && last == hash {
		res.Duplicate = true
	}

	reportType, msg := c.classifier.ClassifyFile(path)
	res.ReportType = reportType
	res.Diagnostic = msg
	log.Printf("classificação: %s", msg)

	if reportType == parser.ReportTypePorteira {
		return res, fmt.Errorf("arquivo identificado como PORTEIRA, não RELEITURAS")
	}
	if reportType == parser.ReportTypeUnknown {
		log.Printf("tipo de relatório não identificado, tentando processar mesmo assim")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("ler arquivo: %w", err)
	}
	grid, err := parser.GridFromBytes(content)
	if err != nil {
		return res, fmt.Errorf("abrir planilha: %w", err)
	}

	if err := c.store.CreateImportLog(res.ID, filename, string(parser.ReportTypeReleituras), hash); err != nil {
		log.Printf("falha ao registrar import: %v", err)
	}

	records, stats := parser.NewReleituraParser().Parse(grid)
	res.Releituras = &stats
	res.TotalRows = stats.TotalLinhas
	log.Printf("releituras: %d válidas de %d linhas (%d cabeçalhos)",
		stats.LinhasValidas, stats.TotalLinhas, stats.Cabecalhos)

	router := routing.NewFromFile(c.cfg.Reference.Localidade, c.root)
	routed := router.Route(records)

	if err := c.store.ReplaceReleituras(res.ID, routed); err != nil {
		c.finishLog(res, "error", err.Error())
		return res, err
	}

	res.ImportedRows = len(routed)
	res.Duration = time.Since(start)
	c.finishLog(res, "done", "")
	return res, nil
}

// ImportPorteira processes a reading-results report: classify, parse
// with reference enrichment and optional cycle pre-filter, aggregate,
// replace the stored set, refresh the abertura monthly history.
func (c *Coordinator) ImportPorteira(path, filename, ciclo string) (*ImportResult, error) {
	start := time.Now()

	res := &ImportResult{
		ID:       uuid.NewString(),
		Filename: filename,
	}

	hash, err := FileHash(path)
	if err != nil {
		return nil, err
	}
	res.FileHash = hash
	if last, err := c.store.LastImportHash(string(parser.ReportTypePorteira)); err == nil && last != "" && last == hash {
		res.Duplicate = true
	}

	reportType, msg := c.classifier.ClassifyFile(path)
	res.ReportType = reportType
	res.Diagnostic = msg
	log.Printf("classificação: %s", msg)

	if reportType == parser.ReportTypeReleituras {
		return res, fmt.Errorf("arquivo identificado como RELEITURAS, não PORTEIRA")
	}
	if reportType == parser.ReportTypeUnknown {
		log.Printf("tipo de relatório não identificado, tentando processar mesmo assim")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("ler arquivo: %w", err)
	}
	grid, err := parser.GridFromBytes(content)
	if err != nil {
		return res, fmt.Errorf("abrir planilha: %w", err)
	}

	if err := c.store.CreateImportLog(res.ID, filename, string(parser.ReportTypePorteira), hash); err != nil {
		log.Printf("falha ao registrar import: %v", err)
	}

	refPath := reference.FindReferenceFile(c.cfg.Reference.Localidade, c.root)
	refs := reference.LoadLocalidadeMapOrSeed(refPath)

	records, stats := parser.NewPorteiraParser(refs, ciclo).Parse(grid)
	res.Porteira = &stats
	res.TotalRows = stats.TotalLinhas
	log.Printf("porteira: %d válidas de %d linhas (%d filtradas por ciclo, %d sem mapeamento)",
		stats.LinhasValidas, stats.TotalLinhas, stats.FiltradasPorCiclo, stats.SemMapeamento)

	aggregated := parser.Aggregate(records)
	if len(aggregated) == 0 {
		c.finishLog(res, "error", "nenhum dado válido extraído")
		return res, fmt.Errorf("nenhum dado válido extraído do relatório")
	}

	if err := c.store.ReplaceResultados(res.ID, aggregated); err != nil {
		c.finishLog(res, "error", err.Error())
		return res, err
	}

	now := time.Now()
	if err := c.store.RefreshAberturaMonthly(now.Year(), int(now.Month())); err != nil {
		log.Printf("falha ao atualizar histórico mensal de abertura: %v", err)
	}

	res.ImportedRows = len(aggregated)
	res.Duration = time.Since(start)
	c.finishLog(res, "done", "")
	return res, nil
}

func (c *Coordinator) finishLog(res *ImportResult, status, errMsg string) {
	if err := c.store.FinishImportLog(res.ID, res.TotalRows, res.ImportedRows, status, errMsg); err != nil {
		log.Printf("falha ao concluir registro de import: %v", err)
	}
}
