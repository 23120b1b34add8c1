// Package cycle holds the rural reading-cycle rules: which locality
// suffixes (last two digits of a UL) belong to which quarterly cycle.
//
// Operational rules:
//   - urban suffixes 01..88 are included in every cycle
//   - rural suffixes are distributed per cycle:
//     97 → 90, 91, 96, 97
//     98 → 92, 93, 96, 98
//     99 → 89, 94, 96, 99
//   - suffix 96 is fixed and always included
//
// Both the parse-time pre-filter and the query-time SQL fragment derive
// from the same allowed set, so the two can never drift apart.
package cycle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	urbanMin = 1
	urbanMax = 88
)

// ruralAlways suffixes admitted regardless of the selected cycle.
var ruralAlways = []int{96}

// cycleExtras rural suffixes admitted only by the matching cycle.
var cycleExtras = map[string][]int{
	"97": {90, 91},
	"98": {92, 93},
	"99": {89, 94},
}

// RuralAllowed returns the set of rural suffixes (>= 89) admitted by the
// given cycle. An unrecognized cycle degrades to the fixed suffix only.
func RuralAllowed(ciclo string) map[int]bool {
	allowed := make(map[int]bool)
	for _, s := range ruralAlways {
		allowed[s] = true
	}

	c := strings.TrimSpace(ciclo)
	if extras, ok := cycleExtras[c]; ok {
		for _, s := range extras {
			allowed[s] = true
		}
		if n, err := strconv.Atoi(c); err == nil {
			allowed[n] = true
		}
	}
	return allowed
}

// Pass reports whether a locality suffix belongs to the requested cycle.
// An empty cycle selects everything. Urban suffixes always pass; a
// non-numeric suffix never does.
func Pass(ciclo, localidadeSuffix string) bool {
	if strings.TrimSpace(ciclo) == "" {
		return true
	}
	n, err := strconv.Atoi(strings.TrimSpace(localidadeSuffix))
	if err != nil {
		return false
	}
	if n >= urbanMin && n <= urbanMax {
		return true
	}
	return RuralAllowed(ciclo)[n]
}

// WhereFragment builds the SQL filter over the last two digits of the UL
// column, with prefix "WHERE" or "AND". An empty cycle yields no filter.
func WhereFragment(ciclo, prefix string) (string, []any) {
	if strings.TrimSpace(ciclo) == "" {
		return "", nil
	}

	allowed := make([]int, 0, urbanMax+4)
	for n := urbanMin; n <= urbanMax; n++ {
		allowed = append(allowed, n)
	}
	for n := range RuralAllowed(ciclo) {
		allowed = append(allowed, n)
	}
	sort.Ints(allowed)

	placeholders := make([]string, len(allowed))
	args := make([]any, len(allowed))
	for i, n := range allowed {
		placeholders[i] = "?"
		args[i] = n
	}

	clause := fmt.Sprintf(
		"%s (CAST(SUBSTR(COALESCE(UL,''), -2) AS INTEGER) IN (%s))",
		prefix, strings.Join(placeholders, ","),
	)
	return clause, args
}

// monthToCycle fixed quarterly rotation of the reading calendar.
var monthToCycle = map[time.Month]string{
	time.January: "97", time.February: "98", time.March: "99",
	time.April: "97", time.May: "98", time.June: "99",
	time.July: "97", time.August: "98", time.September: "99",
	time.October: "97", time.November: "98", time.December: "99",
}

var monthNames = map[time.Month]string{
	time.January: "Janeiro", time.February: "Fevereiro", time.March: "Março",
	time.April: "Abril", time.May: "Maio", time.June: "Junho",
	time.July: "Julho", time.August: "Agosto", time.September: "Setembro",
	time.October: "Outubro", time.November: "Novembro", time.December: "Dezembro",
}

// Info describes the reading cycle in effect at a point in time.
type Info struct {
	Ciclo     string `json:"ciclo"`
	Mes       string `json:"mes"`
	MesNumero int    `json:"mesNumero"`
	Ano       int    `json:"ano"`
}

// ForMonth returns the cycle identifier for a calendar month.
func ForMonth(m time.Month) string {
	return monthToCycle[m]
}

// Current returns the cycle in effect at now.
func Current(now time.Time) Info {
	return Info{
		Ciclo:     ForMonth(now.Month()),
		Mes:       monthNames[now.Month()],
		MesNumero: int(now.Month()),
		Ano:       now.Year(),
	}
}

// MonthName returns the Portuguese name of a month.
func MonthName(m time.Month) string {
	return monthNames[m]
}
