package reference

// Static locality rows used when no reference workbook is present on
// disk. Extracted from the legacy deployment data.
var seedLocalidades = []struct {
	ULRegional string
	Localidade string
	Supervisao string
	Regiao     string
}{
	{"3427", "SANTA ROSA", "Araxa", "Araxa"},
	{"5101", "ARAXÁ", "Araxa", "Araxa"},
	{"5103", "PERDIZES", "Araxa", "Araxa"},
	{"5104", "IBIA", "Araxa", "Araxa"},
	{"5117", "CAMPOS ALTOS", "Araxa", "Araxa"},
	{"5118", "SANTA JULIANA", "Araxa", "Araxa"},
	{"5119", "PEDRINOPÓLIS", "Araxa", "Araxa"},
	{"5120", "TAPIRA", "Araxa", "Araxa"},
	{"5121", "PRATINHA", "Araxa", "Araxa"},
	{"5325", "NOVA PONTE", "Araxa", "Araxa"},
	{"1966", "DELTA", "Uberaba", "Uberaba"},
	{"5105", "SACRAMENTO", "Uberaba", "Uberaba"},
	{"5106", "CONSQUISTA", "Uberaba", "Uberaba"},
	{"5300", "UBERABA", "Uberaba", "Uberaba"},
	{"5301", "UBERABA", "Uberaba", "Uberaba"},
	{"5302", "CONCEIÇAO DAS ALAGOAS", "Uberaba", "Uberaba"},
	{"5313", "CAMPO FLORIDO", "Uberaba", "Uberaba"},
	{"5314", "AGUA COMPRIDA", "Uberaba", "Uberaba"},
	{"5315", "VERÍSSIMO", "Uberaba", "Uberaba"},
	{"5309", "FRUTAL", "Frutal", "Frutal"},
	{"5310", "ITURAMA", "Frutal", "Frutal"},
	{"5311", "UNIÃO DE MINAS", "Frutal", "Frutal"},
	{"5312", "CAMPINA VERDE", "Frutal", "Frutal"},
	{"5316", "COMENDADOR GOMES", "Frutal", "Frutal"},
	{"5317", "CARNEIRINHO", "Frutal", "Frutal"},
	{"5318", "ITUIUTABA", "Frutal", "Frutal"},
	{"5319", "CACHOEIRA DOURADA", "Frutal", "Frutal"},
	{"5320", "IPIAÇÚ", "Frutal", "Frutal"},
	{"5321", "CAPINÓPOLIS", "Frutal", "Frutal"},
	{"5322", "CENTRALINA", "Frutal", "Frutal"},
	{"5323", "GURINHATÃ", "Frutal", "Frutal"},
}

// SeedMap builds a LocalidadeMap from the static rows.
func SeedMap() LocalidadeMap {
	m := make(LocalidadeMap, len(seedLocalidades))
	for _, s := range seedLocalidades {
		m[s.ULRegional] = Info{
			Localidade: s.Localidade,
			Supervisao: s.Supervisao,
			Regiao:     s.Regiao,
		}
	}
	return m
}

// LoadLocalidadeMapOrSeed loads the workbook at path, falling back to the
// static seed rows when the workbook is missing or empty.
func LoadLocalidadeMapOrSeed(path string) LocalidadeMap {
	if m := LoadLocalidadeMap(path); len(m) > 0 {
		return m
	}
	return SeedMap()
}
