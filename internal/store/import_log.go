package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateImportLog records the start of an upload.
func (s *Store) CreateImportLog(id, filename, reportType, fileHash string) error {
	_, err := s.db.Exec(`
		INSERT INTO import_logs (id, filename, report_type, file_hash, status)
		VALUES (?, ?, ?, ?, 'processing')
	`, id, filename, reportType, fileHash)
	if err != nil {
		return fmt.Errorf("create import log: %w", err)
	}
	return nil
}

// FinishImportLog completes an upload record. errorMessage is empty on
// success.
func (s *Store) FinishImportLog(id string, totalRows, importedRows int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			total_rows = ?,
			imported_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = datetime('now')
		WHERE id = ?
	`, totalRows, importedRows, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("update import log: %w", err)
	}
	return nil
}

// LastImportHash returns the file hash of the most recent completed
// import of the given report type, or "" when none exists.
func (s *Store) LastImportHash(reportType string) (string, error) {
	var hash string
	err := s.db.QueryRow(`
		SELECT file_hash FROM import_logs
		WHERE report_type = ? AND status = 'done'
		ORDER BY created_at DESC
		LIMIT 1
	`, reportType).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("query last import hash: %w", err)
	}
	return hash, nil
}
