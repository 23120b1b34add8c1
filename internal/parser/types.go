package parser

// ReportType identified family of an uploaded report.
type ReportType string

const (
	ReportTypePorteira   ReportType = "PORTEIRA"   // Acompanhamento de Resultados de Leitura
	ReportTypeReleituras ReportType = "RELEITURAS" // Serviços pendentes de releitura
	ReportTypeUnknown    ReportType = "UNKNOWN"
)

// FileKind container format of the uploaded bytes.
type FileKind string

const (
	FileKindXLSX    FileKind = "xlsx" // OOXML (zip container)
	FileKindXLS     FileKind = "xls"  // legacy OLE compound file
	FileKindUnknown FileKind = "unknown"
)

// ReleituraLayout pins the positional column contract of the pending
// services report. The report carries no reliable header row, so parsing
// is by index only.
type ReleituraLayout struct {
	UL         int
	Instalacao int
	Razao      int
	Endereco   int
	Vencimento int
}

// DefaultReleituraLayout matches the standard SGL export.
var DefaultReleituraLayout = ReleituraLayout{
	UL:         0,
	Instalacao: 4,
	Razao:      9,
	Endereco:   10,
	Vencimento: 26,
}

// PorteiraLayout pins the positional column contract of the reading
// results report.
type PorteiraLayout struct {
	UL                 int
	TipoUL             int
	LeiturasPlanejadas int // "Leituras a Exec."
	LeiturasExecutadas int // "Total" (executado)
	NaoExecutadas      int // "ñ exec."
	Impedimentos       int // "C/Imp"
	RelExecutadas      int
	RelNaoExecutadas   int
	RelTotais          int
}

// DefaultPorteiraLayout matches the standard SGL export.
var DefaultPorteiraLayout = PorteiraLayout{
	UL:                 0,
	TipoUL:             1,
	LeiturasPlanejadas: 3,
	LeiturasExecutadas: 13,
	NaoExecutadas:      16,
	Impedimentos:       23,
	RelExecutadas:      49,
	RelNaoExecutadas:   50,
	RelTotais:          52,
}

// ReleituraStats running counters collected while parsing the pending
// services report. Observability only, not part of the record stream.
type ReleituraStats struct {
	TotalLinhas   int `json:"totalLinhas"`
	LinhasValidas int `json:"linhasValidas"`
	SemUL         int `json:"semUl"`
	SemInstalacao int `json:"semInstalacao"`
	SemData       int `json:"semData"`
	Cabecalhos    int `json:"cabecalhos"`
}

// PorteiraStats running counters collected while parsing the reading
// results report.
type PorteiraStats struct {
	TotalLinhas       int `json:"totalLinhas"`
	LinhasProcessadas int `json:"linhasProcessadas"`
	LinhasValidas     int `json:"linhasValidas"`
	FiltradasPorCiclo int `json:"filtradasPorCiclo"`
	ULInvalida        int `json:"ulInvalida"`
	RazaoInvalida     int `json:"razaoInvalida"`
	SemMapeamento     int `json:"semMapeamento"`
	ConjuntosUnicos   int `json:"conjuntosUnicos"`
}
