package reference

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// CalendarKey addresses one reference date in the reading calendar.
type CalendarKey struct {
	Ano   int
	Mes   int
	Razao int
}

// CalendarMap is the fully materialized (year, month, reason) → date
// lookup built from the calendar workbook.
type CalendarMap map[CalendarKey]time.Time

var monthAbbr = map[string]int{
	"Jan": 1, "Fev": 2, "Mar": 3, "Abr": 4, "Mai": 5, "Jun": 6,
	"Jul": 7, "Ago": 8, "Set": 9, "Out": 10, "Nov": 11, "Dez": 12,
}

// sheetToMonthYear extracts (year, month) from a calendar sheet name such
// as "Jan-26" or "Fev-2026".
func sheetToMonthYear(name string) (ano, mes int, ok bool) {
	s := strings.TrimSpace(name)
	a, b, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	abbr := strings.TrimSpace(a)
	if len(abbr) > 3 {
		abbr = abbr[:3]
	}
	if abbr == "" {
		return 0, 0, false
	}
	abbr = strings.ToUpper(abbr[:1]) + strings.ToLower(abbr[1:])
	mes = monthAbbr[abbr]
	if mes == 0 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, false
	}
	if y < 100 {
		y += 2000
	}
	return y, mes, true
}

// normHeader lowercases and strips separators so header candidates match
// loosely ("Cálculo do Faturamento" vs "calculo_do_faturamento").
func normHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range []string{" ", ".", "_"} {
		s = strings.ReplaceAll(s, r, "")
	}
	return s
}

func findColumn(header []string, candidates ...string) int {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = normHeader(h)
	}
	for _, cand := range candidates {
		key := normHeader(cand)
		for i, h := range norm {
			if h == key {
				return i
			}
		}
	}
	for i, h := range norm {
		for _, cand := range candidates {
			if strings.Contains(h, normHeader(cand)) {
				return i
			}
		}
	}
	return -1
}

var calendarDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"01-02-06", // excelize default date style
}

func parseCalendarDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	s = strings.ReplaceAll(s, ".", "/")
	for _, layout := range calendarDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LoadCalendarMap reads every month sheet of the calendar workbook. The
// reference date comes from the "Cálculo do Faturamento" column, with
// the "Leitura" column as fallback. Reasons outside 01-18 are ignored.
func LoadCalendarMap(path string) (CalendarMap, error) {
	m := CalendarMap{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return m, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		ano, mes, ok := sheetToMonthYear(sheet)
		if !ok {
			continue
		}

		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}

		header := rows[0]
		colRazao := findColumn(header, "Razão", "Razao")
		colCalc := findColumn(header, "Cálculo do Faturamento", "Calculo do Faturamento")
		colLeit := findColumn(header, "Leitura")
		if colRazao < 0 {
			continue
		}

		for _, row := range rows[1:] {
			raw := strings.TrimSuffix(cellAt(row, colRazao), ".0")
			razao, err := strconv.Atoi(raw)
			if err != nil || razao < 1 || razao > 18 {
				continue
			}

			ref, ok := parseCalendarDate(cellAt(row, colCalc))
			if !ok {
				ref, ok = parseCalendarDate(cellAt(row, colLeit))
			}
			if ok {
				m[CalendarKey{Ano: ano, Mes: mes, Razao: razao}] = ref
			}
		}
	}
	return m, nil
}

// CalendarCache keeps the loaded calendar map keyed by (path, mtime) and
// reloads when the backing file changes. Check-then-reload is guarded by
// a mutex so concurrent request handlers cannot race the refresh.
type CalendarCache struct {
	mu    sync.Mutex
	path  string
	mtime time.Time
	m     CalendarMap
}

// NewCalendarCache creates an empty cache.
func NewCalendarCache() *CalendarCache {
	return &CalendarCache{}
}

// DueDate looks up the reference date for (ano, mes, razao) in the
// workbook at path, reloading if the file is new or changed. A missing
// file or absent entry yields ok=false.
func (c *CalendarCache) DueDate(path string, ano, mes, razao int) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path != path || !c.mtime.Equal(info.ModTime()) || c.m == nil {
		m, err := LoadCalendarMap(path)
		if err != nil {
			return time.Time{}, false
		}
		c.path = path
		c.mtime = info.ModTime()
		c.m = m
	}

	t, ok := c.m[CalendarKey{Ano: ano, Mes: mes, Razao: razao}]
	return t, ok
}

// Invalidate drops the cached map; the next DueDate call reloads.
func (c *CalendarCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = ""
	c.mtime = time.Time{}
	c.m = nil
}
