package store

import (
	"fmt"

	"vigilacore/internal/cycle"
	"vigilacore/internal/model"
)

// ReplaceResultados swaps the stored reading results for the aggregated
// records of a new upload, atomically.
func (s *Store) ReplaceResultados(importID string, records []model.ResultadoAgregado) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM resultados_leitura`); err != nil {
		return fmt.Errorf("clear resultados: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO resultados_leitura (
			import_id, Conjunto_Contrato, UL, UL_Regional, Tipo_UL,
			Localidade_UL, Nome_Localidade, Regiao, Supervisao, Razao,
			Total_Leituras, Leituras_Nao_Executadas, Porcentagem_Nao_Executada,
			Releituras_Totais, Releituras_Nao_Executadas, Impedimentos
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			importID, r.ConjuntoContrato, r.UL, r.ULRegional, r.TipoUL,
			r.LocalidadeUL, r.NomeLocalidade, r.Regiao, r.Supervisao, r.Razao,
			r.TotalLeituras, r.LeiturasNaoExecutadas, r.PorcentagemNaoExecutada,
			r.ReleiturasTotais, r.ReleiturasNaoExecutadas, r.Impedimentos,
		)
		if err != nil {
			return fmt.Errorf("insert resultado %s: %w", r.UL, err)
		}
	}

	return tx.Commit()
}

// resultadosWhere builds the shared WHERE clause for cycle and region
// filtering over resultados_leitura.
func resultadosWhere(ciclo, regiao string) (string, []any) {
	clause := ""
	args := []any{}

	if cw, cargs := cycle.WhereFragment(ciclo, "WHERE"); cw != "" {
		clause = cw
		args = append(args, cargs...)
	}
	if regiao != "" {
		if clause == "" {
			clause = "WHERE (COALESCE(Regiao,'Não Mapeado') = ?)"
		} else {
			clause += " AND (COALESCE(Regiao,'Não Mapeado') = ?)"
		}
		args = append(args, regiao)
	}
	return clause, args
}

// ResultadosTable returns the detailed rows for the Porteira dashboard
// table, optionally narrowed by cycle and region.
func (s *Store) ResultadosTable(ciclo, regiao string) ([]model.ResultadoAgregado, error) {
	where, args := resultadosWhere(ciclo, regiao)

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT
			Conjunto_Contrato, UL, UL_Regional, COALESCE(Tipo_UL, '') AS Tipo_UL,
			Localidade_UL, COALESCE(Nome_Localidade, 'Não Mapeado') AS Nome_Localidade,
			COALESCE(Regiao, 'Não Mapeado') AS Regiao, Supervisao, Razao,
			Total_Leituras, Leituras_Nao_Executadas, Porcentagem_Nao_Executada,
			Releituras_Totais, Releituras_Nao_Executadas, COALESCE(Impedimentos, 0) AS Impedimentos
		FROM resultados_leitura
		%s
		ORDER BY Regiao, UL
	`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("query resultados: %w", err)
	}
	defer rows.Close()

	var out []model.ResultadoAgregado
	for rows.Next() {
		var r model.ResultadoAgregado
		err := rows.Scan(
			&r.ConjuntoContrato, &r.UL, &r.ULRegional, &r.TipoUL,
			&r.LocalidadeUL, &r.NomeLocalidade, &r.Regiao, &r.Supervisao, &r.Razao,
			&r.TotalLeituras, &r.LeiturasNaoExecutadas, &r.PorcentagemNaoExecutada,
			&r.ReleiturasTotais, &r.ReleiturasNaoExecutadas, &r.Impedimentos,
		)
		if err != nil {
			return nil, fmt.Errorf("scan resultado: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RegionStats summed reading metrics for one region.
type RegionStats struct {
	Regiao                  string `json:"regiao"`
	TotalULs                int    `json:"totalUls"`
	TotalLeituras           int    `json:"totalLeituras"`
	LeiturasNaoExecutadas   int    `json:"leiturasNaoExec"`
	TotalReleituras         int    `json:"totalReleituras"`
	ReleiturasNaoExecutadas int    `json:"releiturasNaoExec"`
}

// ResultadosStatsByRegion aggregates reading metrics per region.
func (s *Store) ResultadosStatsByRegion(ciclo, regiao string) ([]RegionStats, error) {
	where, args := resultadosWhere(ciclo, regiao)

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT
			COALESCE(Regiao, 'Não Mapeado') AS Regiao,
			COUNT(DISTINCT UL),
			COALESCE(SUM(Total_Leituras), 0),
			COALESCE(SUM(Leituras_Nao_Executadas), 0),
			COALESCE(SUM(Releituras_Totais), 0),
			COALESCE(SUM(Releituras_Nao_Executadas), 0)
		FROM resultados_leitura
		%s
		GROUP BY Regiao
		ORDER BY Regiao
	`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("query region stats: %w", err)
	}
	defer rows.Close()

	var out []RegionStats
	for rows.Next() {
		var st RegionStats
		var tl, ne, rt, rne float64
		if err := rows.Scan(&st.Regiao, &st.TotalULs, &tl, &ne, &rt, &rne); err != nil {
			return nil, fmt.Errorf("scan region stats: %w", err)
		}
		st.TotalLeituras = int(tl)
		st.LeiturasNaoExecutadas = int(ne)
		st.TotalReleituras = int(rt)
		st.ReleiturasNaoExecutadas = int(rne)
		out = append(out, st)
	}
	return out, rows.Err()
}

// Totals grand totals of the stored reading results.
type Totals struct {
	TotalLeituras         int `json:"totalLeituras"`
	LeiturasNaoExecutadas int `json:"leiturasNaoExec"`
	Impedimentos          int `json:"impedimentos"`
}

// ResultadosTotals sums the stored reading results.
func (s *Store) ResultadosTotals(ciclo, regiao string) (Totals, error) {
	where, args := resultadosWhere(ciclo, regiao)

	var tl, ne, imp float64
	err := s.db.QueryRow(fmt.Sprintf(`
		SELECT
			COALESCE(SUM(Total_Leituras), 0),
			COALESCE(SUM(Leituras_Nao_Executadas), 0),
			COALESCE(SUM(Impedimentos), 0)
		FROM resultados_leitura
		%s
	`, where), args...).Scan(&tl, &ne, &imp)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return Totals{
		TotalLeituras:         int(tl),
		LeiturasNaoExecutadas: int(ne),
		Impedimentos:          int(imp),
	}, nil
}

// DistinctRegions lists the regions present in the stored results.
func (s *Store) DistinctRegions() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT COALESCE(Regiao, 'Não Mapeado')
		FROM resultados_leitura
		ORDER BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
