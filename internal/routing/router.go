// Package routing enriches releitura records with their geographic
// region (Araxá, Uberaba, Frutal).
package routing

import (
	"fmt"
	"strings"

	"vigilacore/internal/model"
	"vigilacore/internal/reference"
)

// regionFallback static UL-regional → region table carried over from the
// legacy deployment. Consulted when the reference workbook has no region
// for a code.
var regionFallback = map[string]string{
	"3427": "Araxá", "5101": "Araxá", "5103": "Araxá", "5104": "Araxá",
	"5117": "Araxá", "5118": "Araxá", "5119": "Araxá", "5120": "Araxá",
	"5121": "Araxá", "5325": "Araxá", "1966": "Uberaba", "5105": "Uberaba",
	"5106": "Uberaba", "5300": "Uberaba", "5301": "Uberaba", "5302": "Uberaba",
	"5313": "Uberaba", "5314": "Uberaba", "5315": "Uberaba", "5309": "Frutal",
	"5310": "Frutal", "5311": "Frutal", "5312": "Frutal", "5323": "Frutal",
	"5324": "Frutal", "5413": "Frutal", "5415": "Frutal", "5418": "Frutal",
	"5420": "Frutal", "5422": "Frutal", "5424": "Frutal",
}

// RegionalFromUL extracts the 4-digit regional code from an 8-digit UL.
// ok is false when the UL is not exactly 8 numeric digits.
func RegionalFromUL(ul string) (string, bool) {
	s := strings.TrimSpace(ul)
	if len(s) != 8 {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s[2:6], true
}

// FallbackRegion resolves a regional code against the static table.
func FallbackRegion(ulRegional string) string {
	key := strings.TrimSpace(ulRegional)
	if allDigits(key) {
		key = padLeft(key, 4)
	}
	return regionFallback[key]
}

// Router resolves releitura records to regions using the reference
// workbook first and the static table second.
type Router struct {
	refs reference.LocalidadeMap
}

// New creates a router over an already-loaded reference map. An empty or
// nil map is valid: resolution then relies on the static table alone.
func New(refs reference.LocalidadeMap) *Router {
	return &Router{refs: refs}
}

// NewFromFile discovers and loads the reference workbook (override path,
// then the fixed candidates under root) and builds a router on it.
func NewFromFile(override, root string) *Router {
	path := reference.FindReferenceFile(override, root)
	if path == "" {
		return New(nil)
	}
	return New(reference.LoadLocalidadeMap(path))
}

// Route maps every input record to exactly one routed record; records
// are never dropped. Resolution order: derive the regional code, look up
// the reference map, fall back to the static table, else UNROUTED with a
// human-readable reason.
func (r *Router) Route(records []model.Releitura) []model.RoutedReleitura {
	routed := make([]model.RoutedReleitura, 0, len(records))

	for _, rec := range records {
		out := model.RoutedReleitura{
			Releitura:   rec,
			RouteStatus: model.RouteStatusRouted,
		}

		ulRegional, ok := RegionalFromUL(rec.UL)
		if !ok {
			out.RouteStatus = model.RouteStatusUnrouted
			out.RouteReason = "UL inválida"
			routed = append(routed, out)
			continue
		}
		out.ULRegional = ulRegional

		key := padLeft(ulRegional, 4)
		if info, found := r.refs[key]; found {
			out.Localidade = info.Localidade
			if info.Regiao != "" && info.Regiao != "N/A" {
				out.Regiao = info.Regiao
			}
		}
		if out.Regiao == "" {
			out.Regiao = FallbackRegion(ulRegional)
		}
		if out.Regiao == "" {
			out.RouteStatus = model.RouteStatusUnrouted
			out.RouteReason = fmt.Sprintf("UL regional %s sem região", ulRegional)
		}

		routed = append(routed, out)
	}
	return routed
}

func allDigits(s string) bool {
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

func padLeft(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
