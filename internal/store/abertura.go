package store

import (
	"fmt"
	"time"
)

// Quantities pending readings for one reason code, split by unit type.
type Quantities struct {
	Quantidade float64 `json:"quantidade"`
	OSB        float64 `json:"osb"`
	CNV        float64 `json:"cnv"`
}

// AberturaLatestQuantities sums the pending (not executed) readings of
// the current snapshot per reason code, keyed "01".."18", optionally
// narrowed by cycle and region.
func (s *Store) AberturaLatestQuantities(ciclo, regiao string) (map[string]Quantities, error) {
	where, args := resultadosWhere(ciclo, regiao)

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT
			Razao,
			SUM(CASE WHEN UPPER(COALESCE(Tipo_UL, '')) = 'OSB' THEN COALESCE(Leituras_Nao_Executadas, 0) ELSE 0 END),
			SUM(CASE WHEN UPPER(COALESCE(Tipo_UL, '')) = 'CNV' THEN COALESCE(Leituras_Nao_Executadas, 0) ELSE 0 END),
			SUM(COALESCE(Leituras_Nao_Executadas, 0))
		FROM resultados_leitura
		%s
		GROUP BY Razao
	`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("query abertura quantities: %w", err)
	}
	defer rows.Close()

	out := map[string]Quantities{}
	for rows.Next() {
		var razao string
		var osb, cnv, qtd float64
		if err := rows.Scan(&razao, &osb, &cnv, &qtd); err != nil {
			return nil, fmt.Errorf("scan abertura quantities: %w", err)
		}
		if len(razao) == 1 {
			razao = "0" + razao
		}
		out[razao] = Quantities{Quantidade: qtd, OSB: osb, CNV: cnv}
	}
	return out, rows.Err()
}

// RefreshAberturaMonthly rewrites the monthly history for (ano, mes)
// from the current snapshot, for every cycle×region combination present
// in the data (plus the unfiltered combination).
func (s *Store) RefreshAberturaMonthly(ano, mes int) error {
	regions, err := s.DistinctRegions()
	if err != nil {
		return err
	}
	regions = append([]string{""}, regions...)
	cycles := []string{"", "97", "98", "99"}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM porteira_abertura_monthly WHERE ano = ? AND mes = ?`, ano, mes,
	); err != nil {
		return fmt.Errorf("clear abertura monthly: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO porteira_abertura_monthly
			(ano, mes, ciclo, regiao, razao, quantidade, osb, cnv, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	updatedAt := time.Now().Format(time.RFC3339)
	for _, c := range cycles {
		for _, r := range regions {
			agg, err := s.AberturaLatestQuantities(c, r)
			if err != nil {
				return err
			}
			for razaoInt := 1; razaoInt <= 18; razaoInt++ {
				razao := fmt.Sprintf("%02d", razaoInt)
				q := agg[razao]
				if q.Quantidade <= 0 {
					continue
				}
				if _, err := stmt.Exec(ano, mes, c, r, razao, q.Quantidade, q.OSB, q.CNV, updatedAt); err != nil {
					return fmt.Errorf("insert abertura monthly: %w", err)
				}
			}
		}
	}

	return tx.Commit()
}

// AberturaMonthlyQuantities reads the stored monthly history for
// (ano, mes). When fallbackLatest is set and the month has no history
// (the current month before its first refresh), it recomputes from the
// live snapshot instead.
func (s *Store) AberturaMonthlyQuantities(ano, mes int, ciclo, regiao string, fallbackLatest bool) (map[string]Quantities, error) {
	rows, err := s.db.Query(`
		SELECT razao, quantidade, osb, cnv
		FROM porteira_abertura_monthly
		WHERE ano = ? AND mes = ? AND ciclo = ? AND regiao = ?
	`, ano, mes, ciclo, regiao)
	if err != nil {
		return nil, fmt.Errorf("query abertura monthly: %w", err)
	}
	defer rows.Close()

	out := map[string]Quantities{}
	for rows.Next() {
		var razao string
		var qtd, osb, cnv float64
		if err := rows.Scan(&razao, &qtd, &osb, &cnv); err != nil {
			return nil, fmt.Errorf("scan abertura monthly: %w", err)
		}
		if qtd > 0 || osb > 0 || cnv > 0 {
			if len(razao) == 1 {
				razao = "0" + razao
			}
			out[razao] = Quantities{Quantidade: qtd, OSB: osb, CNV: cnv}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 && fallbackLatest {
		return s.AberturaLatestQuantities(ciclo, regiao)
	}
	return out, nil
}
