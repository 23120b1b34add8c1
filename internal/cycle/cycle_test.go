package cycle

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestRuralAllowed_PerCycle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ciclo string
		want  []int
	}{
		{"97", []int{90, 91, 96, 97}},
		{"98", []int{92, 93, 96, 98}},
		{"99", []int{89, 94, 96, 99}},
		{"50", []int{96}},
		{"", []int{96}},
		{"abc", []int{96}},
	}

	for _, tc := range cases {
		got := RuralAllowed(tc.ciclo)
		if len(got) != len(tc.want) {
			t.Fatalf("ciclo %q: got %v, want %v", tc.ciclo, got, tc.want)
		}
		for _, n := range tc.want {
			if !got[n] {
				t.Fatalf("ciclo %q: missing suffix %d in %v", tc.ciclo, n, got)
			}
		}
	}
}

func TestPass(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ciclo  string
		suffix string
		want   bool
	}{
		{"97", "90", true},
		{"97", "91", true},
		{"97", "97", true},
		{"97", "96", true},
		{"97", "92", false},
		{"97", "89", false},
		{"98", "92", true},
		{"98", "90", false},
		{"99", "89", true},
		{"99", "94", true},
		{"99", "91", false},
		// urban suffixes pass any cycle
		{"97", "01", true},
		{"98", "45", true},
		{"99", "88", true},
		// empty cycle selects everything
		{"", "95", true},
		{"", "xx", true},
		// non-numeric suffix never passes a real cycle
		{"97", "xx", false},
		{"97", "", false},
		// unrecognized cycle keeps urban and fixed suffix only
		{"50", "96", true},
		{"50", "90", false},
		{"50", "12", true},
	}

	for _, tc := range cases {
		if got := Pass(tc.ciclo, tc.suffix); got != tc.want {
			t.Fatalf("Pass(%q, %q) = %v, want %v", tc.ciclo, tc.suffix, got, tc.want)
		}
	}
}

func TestPass_Idempotent(t *testing.T) {
	t.Parallel()

	// filtering an already-filtered set changes nothing
	suffixes := []string{}
	for n := 1; n <= 99; n++ {
		suffixes = append(suffixes, fmt.Sprintf("%02d", n))
	}

	first := []string{}
	for _, s := range suffixes {
		if Pass("97", s) {
			first = append(first, s)
		}
	}
	second := []string{}
	for _, s := range first {
		if Pass("97", s) {
			second = append(second, s)
		}
	}
	if len(first) != len(second) {
		t.Fatalf("second pass changed the set: %d -> %d", len(first), len(second))
	}
}

func TestWhereFragment(t *testing.T) {
	t.Parallel()

	clause, args := WhereFragment("97", "WHERE")
	if clause == "" {
		t.Fatalf("expected a clause for cycle 97")
	}
	if !strings.HasPrefix(clause, "WHERE ") {
		t.Fatalf("clause missing prefix: %s", clause)
	}
	if !strings.Contains(clause, "SUBSTR(COALESCE(UL,''), -2)") {
		t.Fatalf("clause does not filter on UL suffix: %s", clause)
	}

	// 88 urban + {90, 91, 96, 97}
	if len(args) != 92 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
	seen := map[int]bool{}
	for _, a := range args {
		n, ok := a.(int)
		if !ok {
			t.Fatalf("unexpected arg type: %T", a)
		}
		seen[n] = true
	}
	for _, want := range []int{1, 88, 90, 91, 96, 97} {
		if !seen[want] {
			t.Fatalf("suffix %d missing from args", want)
		}
	}
	for _, reject := range []int{89, 92, 93, 94, 95, 98, 99} {
		if seen[reject] {
			t.Fatalf("suffix %d must not be in args for cycle 97", reject)
		}
	}
}

func TestWhereFragment_EmptyCycle(t *testing.T) {
	t.Parallel()

	clause, args := WhereFragment("", "WHERE")
	if clause != "" || args != nil {
		t.Fatalf("empty cycle must yield no filter, got %q %v", clause, args)
	}
}

func TestForMonth(t *testing.T) {
	t.Parallel()

	cases := map[time.Month]string{
		time.January: "97", time.February: "98", time.March: "99",
		time.April: "97", time.May: "98", time.June: "99",
		time.July: "97", time.August: "98", time.September: "99",
		time.October: "97", time.November: "98", time.December: "99",
	}
	for m, want := range cases {
		if got := ForMonth(m); got != want {
			t.Fatalf("ForMonth(%s) = %s, want %s", m, got, want)
		}
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	info := Current(now)
	if info.Ciclo != "98" {
		t.Fatalf("unexpected ciclo: %s", info.Ciclo)
	}
	if info.Mes != "Agosto" || info.MesNumero != 8 || info.Ano != 2026 {
		t.Fatalf("unexpected info: %+v", info)
	}
}
