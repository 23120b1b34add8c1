package reference

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeCalendar writes a calendar workbook with one month sheet.
func writeCalendar(t *testing.T, path, sheet string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, row := range rows {
		for j, v := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cellName, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestSheetToMonthYear(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ano  int
		mes  int
		ok   bool
	}{
		{"Jan-26", 2026, 1, true},
		{"Fev-26", 2026, 2, true},
		{"Dez-25", 2025, 12, true},
		{"Ago-2026", 2026, 8, true},
		{"jan-26", 2026, 1, true},
		{"MAR-26", 2026, 3, true},
		{"Plan1", 0, 0, false},
		{"Xyz-26", 0, 0, false},
		{"Jan", 0, 0, false},
	}
	for _, tc := range cases {
		ano, mes, ok := sheetToMonthYear(tc.name)
		if ok != tc.ok || ano != tc.ano || mes != tc.mes {
			t.Fatalf("sheetToMonthYear(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tc.name, ano, mes, ok, tc.ano, tc.mes, tc.ok)
		}
	}
}

func TestLoadCalendarMap(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calendario.xlsx")
	writeCalendar(t, path, "Jan-26", [][]string{
		{"Razão", "Leitura", "Cálculo do Faturamento"},
		{"1", "02/01/2026", "05/01/2026"},
		{"2", "03/01/2026", ""},
		{"19", "04/01/2026", "04/01/2026"}, // fora do intervalo
		{"x", "04/01/2026", "04/01/2026"},
	})

	m, err := LoadCalendarMap(path)
	if err != nil {
		t.Fatalf("load calendar: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(m), m)
	}

	// billing-calculation column has priority
	if d := m[CalendarKey{2026, 1, 1}]; d.Day() != 5 {
		t.Fatalf("expected calc column date, got %v", d)
	}
	// reading column is the fallback
	if d := m[CalendarKey{2026, 1, 2}]; d.Day() != 3 {
		t.Fatalf("expected leitura fallback date, got %v", d)
	}
}

func TestLoadCalendarMap_RazaoFloatArtifact(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calendario.xlsx")
	writeCalendar(t, path, "Fev-26", [][]string{
		{"Razao", "Calculo do Faturamento"},
		{"3.0", "10/02/2026"},
	})

	m, err := LoadCalendarMap(path)
	if err != nil {
		t.Fatalf("load calendar: %v", err)
	}
	if _, ok := m[CalendarKey{2026, 2, 3}]; !ok {
		t.Fatalf("razão with .0 suffix not normalized: %v", m)
	}
}

func TestParseCalendarDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"05/01/2026", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"5/1/2026", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"2026-01-05", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"05.01.2026", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"hoje", time.Time{}, false},
	}
	for _, tc := range cases {
		got, ok := parseCalendarDate(tc.in)
		if ok != tc.ok {
			t.Fatalf("parseCalendarDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("parseCalendarDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCalendarCache_ReloadOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "calendario.xlsx")
	writeCalendar(t, path, "Jan-26", [][]string{
		{"Razão", "Cálculo do Faturamento"},
		{"1", "05/01/2026"},
	})

	cache := NewCalendarCache()
	d, ok := cache.DueDate(path, 2026, 1, 1)
	if !ok || d.Day() != 5 {
		t.Fatalf("first lookup: (%v, %v)", d, ok)
	}

	// rewrite the workbook and bump mtime past filesystem resolution
	writeCalendar(t, path, "Jan-26", [][]string{
		{"Razão", "Cálculo do Faturamento"},
		{"1", "09/01/2026"},
	})
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	d, ok = cache.DueDate(path, 2026, 1, 1)
	if !ok || d.Day() != 9 {
		t.Fatalf("lookup after change: (%v, %v)", d, ok)
	}
}

func TestCalendarCache_MissingFile(t *testing.T) {
	t.Parallel()

	cache := NewCalendarCache()
	if _, ok := cache.DueDate(filepath.Join(t.TempDir(), "nope.xlsx"), 2026, 1, 1); ok {
		t.Fatalf("missing file must yield ok=false")
	}
}

func TestCalendarCache_Invalidate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calendario.xlsx")
	writeCalendar(t, path, "Jan-26", [][]string{
		{"Razão", "Cálculo do Faturamento"},
		{"1", "05/01/2026"},
	})

	cache := NewCalendarCache()
	if _, ok := cache.DueDate(path, 2026, 1, 1); !ok {
		t.Fatalf("first lookup failed")
	}
	cache.Invalidate()
	if _, ok := cache.DueDate(path, 2026, 1, 1); !ok {
		t.Fatalf("lookup after invalidate failed")
	}
}
