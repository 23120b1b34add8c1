package model

// RouteStatus outcome of the V2 regional routing pass.
type RouteStatus string

const (
	RouteStatusRouted   RouteStatus = "ROUTED"
	RouteStatusUnrouted RouteStatus = "UNROUTED"
)

// Releitura is one pending re-reading service extracted from the
// "Releituras" (pending services) report.
type Releitura struct {
	UL         string `json:"ul"`         // 8-digit unit/location code
	Instalacao string `json:"instalacao"` // 10-digit installation code
	Vencimento string `json:"vencimento"` // due date as reported, dd/mm/yyyy
	Razao      string `json:"razao"`      // 2-digit reason code, defaults to "03"
	Endereco   string `json:"endereco,omitempty"`
}

// RoutedReleitura is a Releitura enriched with the geographic routing
// decision. The router emits exactly one of these per input record.
type RoutedReleitura struct {
	Releitura

	ULRegional  string      `json:"ulRegional,omitempty"` // digits 3-6 of the UL
	Localidade  string      `json:"localidade,omitempty"`
	Regiao      string      `json:"regiao,omitempty"`
	RouteStatus RouteStatus `json:"routeStatus"`
	RouteReason string      `json:"routeReason,omitempty"`
}
