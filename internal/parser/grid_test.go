package parser

import (
	"strings"
	"testing"
)

func TestDetectFileKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		content []byte
		want    FileKind
	}{
		{[]byte{0x50, 0x4B, 0x03, 0x04, 0x00}, FileKindXLSX},
		{[]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1}, FileKindXLS},
		{[]byte("UL;Instalacao\n"), FileKindUnknown},
		{nil, FileKindUnknown},
	}
	for _, tc := range cases {
		if got := DetectFileKind(tc.content); got != tc.want {
			t.Fatalf("DetectFileKind(% x) = %s, want %s", tc.content[:min(4, len(tc.content))], got, tc.want)
		}
	}
}

func TestGridFromBytes_RoundTrip(t *testing.T) {
	t.Parallel()

	content := buildWorkbook(t, [][]string{
		{"03520101", "x", "y"},
		{"03520102"},
	})

	grid, err := GridFromBytes(content)
	if err != nil {
		t.Fatalf("grid from bytes: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(grid))
	}
	if cell(grid[0], 0) != "03520101" || cell(grid[1], 0) != "03520102" {
		t.Fatalf("unexpected grid: %v", grid)
	}
}

func TestGridFromBytes_RejectsLegacyXLS(t *testing.T) {
	t.Parallel()

	content := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	_, err := GridFromBytes(content)
	if err == nil {
		t.Fatalf("expected an error for legacy .xls content")
	}
	if !strings.Contains(err.Error(), ".xls") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGridFromBytes_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := GridFromBytes([]byte("not a workbook")); err == nil {
		t.Fatalf("expected an error for non-workbook content")
	}
}

func TestCell_RaggedRows(t *testing.T) {
	t.Parallel()

	row := []string{"a", " b ", "c"}
	if got := cell(row, 1); got != "b" {
		t.Fatalf("cell not trimmed: %q", got)
	}
	if got := cell(row, 10); got != "" {
		t.Fatalf("out-of-range cell must be empty, got %q", got)
	}
	if got := cell(row, -1); got != "" {
		t.Fatalf("negative index must be empty, got %q", got)
	}
}

func TestParseNumeric(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"20.5", 20.5},
		{"1.234,5", 1234.5},
		{" 42 ", 42},
		{"", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := parseNumeric(tc.in); got != tc.want {
			t.Fatalf("parseNumeric(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
