package store

import (
	"fmt"
	"time"
)

// RequestRecord 一次请求的审计记录
type RequestRecord struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Query      string    `json:"query"`
	EmployeeID string    `json:"employeeId,omitempty"`
	Response   string    `json:"response"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LogRequest 写入一条请求记录
func (s *Store) LogRequest(rec RequestRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO requests (id, role, query, employee_id, response, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Role, rec.Query, rec.EmployeeID, rec.Response, rec.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to log request: %w", err)
	}
	return nil
}

// ListRequests 按时间倒序列出最近的请求记录
func (s *Store) ListRequests(limit int) ([]RequestRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, role, query, employee_id, response, duration_ms, created_at
		FROM requests
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	records := []RequestRecord{}
	for rows.Next() {
		var rec RequestRecord
		if err := rows.Scan(&rec.ID, &rec.Role, &rec.Query, &rec.EmployeeID,
			&rec.Response, &rec.DurationMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountRequests 请求总数
func (s *Store) CountRequests() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM requests`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return count, nil
}
