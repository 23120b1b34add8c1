// Package reference loads the auxiliary lookup spreadsheets: the
// locality reference workbook (regional UL code → geographic names) and
// the reading calendar workbook (year/month/reason → reference date).
package reference

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReferenceFileName default locality reference workbook name.
const ReferenceFileName = "REFERENCIA_LOCALIDADE_TR_4680006773.xlsx"

// EnvReferencePath environment override for the reference workbook path.
const EnvReferencePath = "RELEITURA_REF_XLSX"

// Info geographic names attached to one regional UL code.
type Info struct {
	Localidade string `json:"localidade"`
	Supervisao string `json:"supervisao"`
	Regiao     string `json:"regiao"`
}

// LocalidadeMap maps a 4-digit regional UL code to its geographic names.
// Read-only once loaded.
type LocalidadeMap map[string]Info

// RegionalFromRaw derives the 4-character regional code from a raw UL
// value of the reference workbook: digits 3-6 for a full 8-digit UL, the
// last 4 characters for other values of at least 6, left-padded
// otherwise.
func RegionalFromRaw(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 6 {
		if len(s) == 8 {
			return s[2:6]
		}
		return s[len(s)-4:]
	}
	return padLeft(s, 4)
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// LoadLocalidadeMap reads the reference workbook. A missing file is not
// an error: it degrades to an empty map and callers fall back to
// sentinels or the static region table.
func LoadLocalidadeMap(path string) LocalidadeMap {
	m := LocalidadeMap{}

	if _, err := os.Stat(path); err != nil {
		log.Printf("arquivo de referência não encontrado: %s", path)
		return m
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		log.Printf("erro ao carregar arquivo de referência: %v", err)
		return m
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return m
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		return m
	}

	ulCol, locCol, supCol, regCol := discoverColumns(rows[0])
	if ulCol < 0 {
		log.Printf("coluna UL não encontrada no arquivo de referência")
		return m
	}

	for _, row := range rows[1:] {
		raw := cellAt(row, ulCol)
		if raw == "" {
			continue
		}
		m[RegionalFromRaw(raw)] = Info{
			Localidade: valueOr(cellAt(row, locCol), "N/A"),
			Supervisao: valueOr(cellAt(row, supCol), "N/A"),
			Regiao:     valueOr(cellAt(row, regCol), "N/A"),
		}
	}
	return m
}

// discoverColumns finds the relevant columns by tolerant, case-insensitive
// header matching. First matching header wins for each role.
func discoverColumns(header []string) (ul, loc, sup, reg int) {
	ul, loc, sup, reg = -1, -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case ul < 0 && strings.Contains(l, "ul"):
			ul = i
		case loc < 0 && (strings.Contains(l, "localidade") || strings.Contains(l, "local")):
			loc = i
		case sup < 0 && (strings.Contains(l, "supervisao") || strings.Contains(l, "supervisão")):
			sup = i
		case reg < 0 && (strings.Contains(l, "regiao") || strings.Contains(l, "região")):
			reg = i
		}
	}
	return ul, loc, sup, reg
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// FindReferenceFile resolves the reference workbook location: explicit
// override (environment first), then fixed candidate paths under root.
// Returns "" when nothing exists, in which case routing relies solely on
// the static fallback table.
func FindReferenceFile(override, root string) string {
	if env := strings.TrimSpace(os.Getenv(EnvReferencePath)); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
	}
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return override
		}
	}

	candidates := []string{
		filepath.Join(root, ReferenceFileName),
		filepath.Join(root, "data", ReferenceFileName),
		filepath.Join(root, "data", "reference", ReferenceFileName),
		filepath.Join(root, "data", "refs", ReferenceFileName),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
