package parser

import (
	"log"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"vigilacore/internal/cycle"
	"vigilacore/internal/model"
	"vigilacore/internal/reference"
)

// conjuntoMarker cell prefix that opens a new contract-group section.
const conjuntoMarker = "Conjunto de Contrato:"

var reTipoUL = regexp.MustCompile(`\b(CNV|OSB)\b`)

// PorteiraParser extracts reading results from the Acompanhamento de
// Resultados (Porteira) report grid. Rows are grouped under contract-set
// marker rows; each valid row is validated, enriched from the locality
// reference and emitted, then duplicates are summed by Aggregate.
type PorteiraParser struct {
	layout PorteiraLayout
	refs   reference.LocalidadeMap
	ciclo  string
}

// NewPorteiraParser creates a parser with the standard SGL layout. refs
// may be empty: unmapped regional codes degrade to sentinel names. An
// empty ciclo disables the rural pre-filter.
func NewPorteiraParser(refs reference.LocalidadeMap, ciclo string) *PorteiraParser {
	return &PorteiraParser{
		layout: DefaultPorteiraLayout,
		refs:   refs,
		ciclo:  strings.TrimSpace(ciclo),
	}
}

// Parse walks the grid and returns one record per valid row, in source
// order, plus the running statistics. Zero valid rows yields an empty
// slice; deciding whether that is an error state is the caller's call.
func (p *PorteiraParser) Parse(grid Grid) ([]model.ResultadoLeitura, PorteiraStats) {
	records := []model.ResultadoLeitura{}
	stats := PorteiraStats{TotalLinhas: len(grid)}

	conjuntos := map[string]bool{}
	currentConjunto := "N/A"

	for _, row := range grid {
		first := cell(row, p.layout.UL)

		if strings.Contains(first, conjuntoMarker) {
			_, name, _ := strings.Cut(first, ":")
			currentConjunto = strings.TrimSpace(name)
			conjuntos[currentConjunto] = true
			continue
		}

		// totals and empty separators
		if first == "" || strings.Contains(first, "Sub-Total") || strings.Contains(first, "Total Geral") {
			continue
		}

		ul := strings.TrimSuffix(first, ".0")
		if !isDigits(ul) || len(ul) != 8 {
			stats.ULInvalida++
			continue
		}
		stats.LinhasProcessadas++

		localidadeUL := ul[6:]
		if p.ciclo != "" && !cycle.Pass(p.ciclo, localidadeUL) {
			stats.FiltradasPorCiclo++
			continue
		}

		ulRegional := ul[2:6]

		razao := ul[:2]
		if !isDigits(razao) {
			stats.RazaoInvalida++
			continue
		}
		if n, _ := strconv.Atoi(razao); n < 1 || n > 18 {
			log.Printf("razão fora do intervalo esperado (01-18): %s (UL: %s)", razao, ul)
		}

		info, ok := p.refs[ulRegional]
		if !ok {
			stats.SemMapeamento++
			info = reference.Info{Localidade: "Desconhecida", Supervisao: "N/A", Regiao: "N/A"}
		}
		regiao := info.Regiao
		if regiao == "" || regiao == "N/A" {
			if info.Supervisao != "" {
				regiao = info.Supervisao
			}
		}

		planejadas := parseNumeric(cell(row, p.layout.LeiturasPlanejadas))
		executadas := parseNumeric(cell(row, p.layout.LeiturasExecutadas))
		naoExec := parseNumeric(cell(row, p.layout.NaoExecutadas))

		// Integrity rule: the upstream export occasionally maps the
		// planned-readings column wrong. When planned is non-positive but
		// executions or pendings exist, rebuild it from the parts.
		if planejadas <= 0 && (executadas > 0 || naoExec > 0) {
			planejadas = executadas + naoExec
		}

		stats.LinhasValidas++
		records = append(records, model.ResultadoLeitura{
			ConjuntoContrato:        currentConjunto,
			UL:                      ul,
			ULRegional:              ulRegional,
			TipoUL:                  p.extractTipoUL(row),
			LocalidadeUL:            localidadeUL,
			NomeLocalidade:          info.Localidade,
			Regiao:                  regiao,
			Supervisao:              info.Supervisao,
			Razao:                   padRazao(razao),
			TotalLeituras:           planejadas,
			LeiturasNaoExecutadas:   naoExec,
			ReleiturasTotais:        parseNumeric(cell(row, p.layout.RelTotais)),
			ReleiturasNaoExecutadas: parseNumeric(cell(row, p.layout.RelNaoExecutadas)),
			Impedimentos:            parseNumeric(cell(row, p.layout.Impedimentos)),
		})
	}

	stats.ConjuntosUnicos = len(conjuntos)
	return records, stats
}

// extractTipoUL finds the CNV/OSB unit type. Ordered strategies: the
// dedicated column, then an exact token in the leading columns, then a
// word match anywhere in them. First non-empty hit wins.
func (p *PorteiraParser) extractTipoUL(row []string) string {
	if v := strings.ToUpper(cell(row, p.layout.TipoUL)); v == "CNV" || v == "OSB" {
		return v
	}
	limit := len(row)
	if limit > 12 {
		limit = 12
	}
	for j := 0; j < limit; j++ {
		s := strings.ToUpper(cell(row, j))
		if s == "CNV" || s == "OSB" {
			return s
		}
	}
	for j := 0; j < limit; j++ {
		if m := reTipoUL.FindString(strings.ToUpper(cell(row, j))); m != "" {
			return m
		}
	}
	return ""
}

// Aggregate sums duplicate rows under the composite grouping key and
// derives the non-execution percentage. Output is sorted by key so the
// result is deterministic for identical input.
func Aggregate(records []model.ResultadoLeitura) []model.ResultadoAgregado {
	byKey := map[string]*model.ResultadoAgregado{}
	keys := []string{}

	for i := range records {
		r := &records[i]
		key := r.GroupKey()
		agg, ok := byKey[key]
		if !ok {
			agg = &model.ResultadoAgregado{ResultadoLeitura: *r}
			agg.TotalLeituras = 0
			agg.LeiturasNaoExecutadas = 0
			agg.ReleiturasTotais = 0
			agg.ReleiturasNaoExecutadas = 0
			agg.Impedimentos = 0
			byKey[key] = agg
			keys = append(keys, key)
		}
		agg.TotalLeituras += r.TotalLeituras
		agg.LeiturasNaoExecutadas += r.LeiturasNaoExecutadas
		agg.ReleiturasTotais += r.ReleiturasTotais
		agg.ReleiturasNaoExecutadas += r.ReleiturasNaoExecutadas
		agg.Impedimentos += r.Impedimentos
	}

	sort.Strings(keys)
	out := make([]model.ResultadoAgregado, 0, len(byKey))
	for _, key := range keys {
		agg := byKey[key]
		agg.PorcentagemNaoExecutada = SafePercent(agg.LeiturasNaoExecutadas, agg.TotalLeituras)
		out = append(out, *agg)
	}
	return out
}

// SafePercent computes nao/total*100 rounded to two decimals, clamped to
// 0 when total is non-positive or the division degenerates. Never NaN or
// Inf.
func SafePercent(nao, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := nao / total * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return math.Round(pct*100) / 100
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func padRazao(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
