package routing

import (
	"strings"
	"testing"

	"vigilacore/internal/model"
	"vigilacore/internal/reference"
)

func TestRegionalFromUL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"03520101", "5201", true},
		{"15300042", "3000", true},
		{" 03520101 ", "5201", true},
		{"0352010", "", false},   // 7 digits
		{"035201011", "", false}, // 9 digits
		{"0352010a", "", false},  // non-numeric
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := RegionalFromUL(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("RegionalFromUL(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFallbackRegion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"5101", "Araxá"},
		{"5300", "Uberaba"},
		{"5309", "Frutal"},
		{"1966", "Uberaba"},
		{"9999", ""},
	}
	for _, tc := range cases {
		if got := FallbackRegion(tc.in); got != tc.want {
			t.Fatalf("FallbackRegion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoute_ReferenceMapHit(t *testing.T) {
	t.Parallel()

	refs := reference.LocalidadeMap{
		"2010": {Localidade: "TESTELÂNDIA", Supervisao: "Uberaba", Regiao: "Uberaba"},
	}
	r := New(refs)

	routed := r.Route([]model.Releitura{{UL: "03201012", Razao: "03"}})
	if len(routed) != 1 {
		t.Fatalf("expected 1 routed record, got %d", len(routed))
	}
	out := routed[0]
	if out.RouteStatus != model.RouteStatusRouted {
		t.Fatalf("expected ROUTED: %+v", out)
	}
	if out.ULRegional != "2010" || out.Regiao != "Uberaba" || out.Localidade != "TESTELÂNDIA" {
		t.Fatalf("unexpected routing: %+v", out)
	}
}

func TestRoute_StaticFallback(t *testing.T) {
	t.Parallel()

	// reference map empty: the static table resolves known codes
	r := New(nil)

	routed := r.Route([]model.Releitura{{UL: "01510155"}})
	out := routed[0]
	if out.RouteStatus != model.RouteStatusRouted || out.Regiao != "Araxá" {
		t.Fatalf("static fallback not applied: %+v", out)
	}
}

func TestRoute_ReferenceWithoutRegionFallsBack(t *testing.T) {
	t.Parallel()

	// a map entry with region N/A still gets the static table region
	refs := reference.LocalidadeMap{
		"5300": {Localidade: "UBERABA", Supervisao: "Uberaba", Regiao: "N/A"},
	}
	r := New(refs)

	routed := r.Route([]model.Releitura{{UL: "03530001"}})
	out := routed[0]
	if out.RouteStatus != model.RouteStatusRouted || out.Regiao != "Uberaba" {
		t.Fatalf("N/A region must fall back to the static table: %+v", out)
	}
	if out.Localidade != "UBERABA" {
		t.Fatalf("locality from the map must be kept: %+v", out)
	}
}

func TestRoute_InvalidUL(t *testing.T) {
	t.Parallel()

	r := New(nil)
	routed := r.Route([]model.Releitura{{UL: "abc"}, {UL: "1234567"}})
	if len(routed) != 2 {
		t.Fatalf("records must never be dropped: got %d", len(routed))
	}
	for _, out := range routed {
		if out.RouteStatus != model.RouteStatusUnrouted {
			t.Fatalf("expected UNROUTED: %+v", out)
		}
		if out.RouteReason != "UL inválida" {
			t.Fatalf("unexpected reason: %q", out.RouteReason)
		}
	}
}

func TestRoute_UnknownRegional(t *testing.T) {
	t.Parallel()

	r := New(nil)
	routed := r.Route([]model.Releitura{{UL: "99999999"}})
	out := routed[0]
	if out.RouteStatus != model.RouteStatusUnrouted {
		t.Fatalf("expected UNROUTED: %+v", out)
	}
	if !strings.Contains(out.RouteReason, "9999") {
		t.Fatalf("reason must name the regional code: %q", out.RouteReason)
	}
	if out.ULRegional != "9999" {
		t.Fatalf("regional code must still be recorded: %+v", out)
	}
}

func TestRoute_Totality(t *testing.T) {
	t.Parallel()

	refs := reference.LocalidadeMap{
		"2010": {Localidade: "X", Regiao: "Uberaba"},
	}
	r := New(refs)

	input := []model.Releitura{
		{UL: "03201012"}, // map hit
		{UL: "01510155"}, // static fallback
		{UL: "99999999"}, // unresolvable
		{UL: "bad"},      // invalid
	}
	routed := r.Route(input)
	if len(routed) != len(input) {
		t.Fatalf("routing dropped records: %d -> %d", len(input), len(routed))
	}
	for i, out := range routed {
		if out.UL != input[i].UL {
			t.Fatalf("order not preserved at %d: %+v", i, out)
		}
	}
}

func TestNewFromFile_MissingEverything(t *testing.T) {
	t.Parallel()

	// no workbook anywhere: the router still works on the static table
	r := NewFromFile("", t.TempDir())
	routed := r.Route([]model.Releitura{{UL: "01530001"}})
	if routed[0].Regiao != "Uberaba" {
		t.Fatalf("static-only routing failed: %+v", routed[0])
	}
}
