package parser

import (
	"regexp"
	"strings"

	"vigilacore/internal/model"
)

var (
	reUL         = regexp.MustCompile(`^\d{8}$`)
	reInstalacao = regexp.MustCompile(`^\d{10}$`)
	reVencimento = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
)

// razaoDefault reason code assumed when the report leaves the cell blank.
const razaoDefault = "03"

// ReleituraParser extracts pending re-reading services from the
// RELEITURAS report grid. Parsing is purely positional; rows failing any
// mandatory field validation are dropped, never emitted partially.
type ReleituraParser struct {
	layout ReleituraLayout
}

// NewReleituraParser creates a parser with the standard SGL layout.
func NewReleituraParser() *ReleituraParser {
	return &ReleituraParser{layout: DefaultReleituraLayout}
}

// NewReleituraParserWithLayout creates a parser with a custom column
// layout, used when the export format shifts.
func NewReleituraParserWithLayout(layout ReleituraLayout) *ReleituraParser {
	return &ReleituraParser{layout: layout}
}

// Parse walks the grid and returns the valid records in source order plus
// the running statistics. An empty grid is a valid result: an empty
// slice, never an error.
func (p *ReleituraParser) Parse(grid Grid) ([]model.Releitura, ReleituraStats) {
	records := []model.Releitura{}
	stats := ReleituraStats{TotalLinhas: len(grid)}

	for _, row := range grid {
		ul := cell(row, p.layout.UL)
		inst := cell(row, p.layout.Instalacao)
		endereco := cell(row, p.layout.Endereco)
		vencimento := cell(row, p.layout.Vencimento)
		razao := cell(row, p.layout.Razao)
		if razao == "" {
			razao = razaoDefault
		}

		// header rows repeat inside the report body
		if strings.EqualFold(razao, "reg.") {
			stats.Cabecalhos++
			continue
		}

		hasUL := reUL.MatchString(ul)
		hasInst := reInstalacao.MatchString(inst)
		hasData := reVencimento.MatchString(vencimento)

		if !hasUL {
			stats.SemUL++
		}
		if !hasInst {
			stats.SemInstalacao++
		}
		if !hasData {
			stats.SemData++
		}
		if !hasUL || !hasInst || !hasData {
			continue
		}

		stats.LinhasValidas++
		records = append(records, model.Releitura{
			UL:         ul,
			Instalacao: inst,
			Vencimento: vencimento,
			Razao:      razao,
			Endereco:   cleanEndereco(endereco),
		})
	}

	return records, stats
}

// cleanEndereco drops placeholder address cells carried over from the
// report body ("nan"/"none" artifacts and the repeated column title).
func cleanEndereco(s string) string {
	switch strings.ToLower(s) {
	case "", "nan", "none", "endereco":
		return ""
	}
	return s
}
