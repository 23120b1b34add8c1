package store

import (
	"fmt"

	"vigilacore/internal/model"
)

// ReplaceReleituras swaps the stored pending services for the routed
// records of a new upload, atomically.
func (s *Store) ReplaceReleituras(importID string, records []model.RoutedReleitura) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM releituras`); err != nil {
		return fmt.Errorf("clear releituras: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO releituras (
			import_id, ul, instalacao, vencimento, razao, endereco,
			ul_regional, localidade, regiao, route_status, route_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			importID, r.UL, r.Instalacao, r.Vencimento, r.Razao, r.Endereco,
			r.ULRegional, r.Localidade, r.Regiao, string(r.RouteStatus), r.RouteReason,
		)
		if err != nil {
			return fmt.Errorf("insert releitura %s: %w", r.UL, err)
		}
	}

	return tx.Commit()
}

// ListReleituras returns all stored pending services in insertion order.
func (s *Store) ListReleituras() ([]model.RoutedReleitura, error) {
	rows, err := s.db.Query(`
		SELECT ul, instalacao, vencimento, razao, endereco,
		       ul_regional, localidade, regiao, route_status, route_reason
		FROM releituras
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query releituras: %w", err)
	}
	defer rows.Close()

	var out []model.RoutedReleitura
	for rows.Next() {
		var r model.RoutedReleitura
		var status string
		err := rows.Scan(
			&r.UL, &r.Instalacao, &r.Vencimento, &r.Razao, &r.Endereco,
			&r.ULRegional, &r.Localidade, &r.Regiao, &status, &r.RouteReason,
		)
		if err != nil {
			return nil, fmt.Errorf("scan releitura: %w", err)
		}
		r.RouteStatus = model.RouteStatus(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountUnrouted returns how many stored records the router could not
// resolve to a region.
func (s *Store) CountUnrouted() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM releituras WHERE route_status = 'UNROUTED'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unrouted: %w", err)
	}
	return n, nil
}
