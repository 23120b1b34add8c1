package model

// ResultadoLeitura is one valid row of the "Acompanhamento de Resultados
// de Leitura" (Porteira) report, before grouping.
type ResultadoLeitura struct {
	ConjuntoContrato string `json:"conjuntoContrato"`
	UL               string `json:"ul"`
	ULRegional       string `json:"ulRegional"`   // digits 3-6 of the UL
	TipoUL           string `json:"tipoUl"`       // CNV / OSB / ""
	LocalidadeUL     string `json:"localidadeUl"` // last 2 digits of the UL
	NomeLocalidade   string `json:"nomeLocalidade"`
	Regiao           string `json:"regiao"`
	Supervisao       string `json:"supervisao"`
	Razao            string `json:"razao"` // 2-digit, zero-padded

	TotalLeituras           float64 `json:"totalLeituras"`
	LeiturasNaoExecutadas   float64 `json:"leiturasNaoExecutadas"`
	ReleiturasTotais        float64 `json:"releiturasTotais"`
	ReleiturasNaoExecutadas float64 `json:"releiturasNaoExecutadas"`
	Impedimentos            float64 `json:"impedimentos"`
}

// GroupKey is the composite key duplicate rows are summed under.
func (r *ResultadoLeitura) GroupKey() string {
	return r.ConjuntoContrato + "\x00" + r.UL + "\x00" + r.ULRegional + "\x00" +
		r.TipoUL + "\x00" + r.Razao + "\x00" + r.LocalidadeUL + "\x00" +
		r.NomeLocalidade + "\x00" + r.Regiao + "\x00" + r.Supervisao
}

// ResultadoAgregado is a ResultadoLeitura with duplicate keys summed and
// the non-execution percentage derived. The percentage is 0 when no
// readings were planned, never NaN or Inf.
type ResultadoAgregado struct {
	ResultadoLeitura

	PorcentagemNaoExecutada float64 `json:"porcentagemNaoExecutada"`
}
