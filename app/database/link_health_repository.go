package database

import (
	"context"
	"fmt"
)

var _ LinkHealthRepository = (*LinkHealthRepo)(nil)

// LinkHealthRepo handles database operations for dataset link probes.
// Failures accumulate across checks and reset on the first healthy probe.
type LinkHealthRepo struct {
	db *DB
}

func NewLinkHealthRepository(db *DB) *LinkHealthRepo {
	return &LinkHealthRepo{db: db}
}

func (r *LinkHealthRepo) RecordCheck(ctx context.Context, url, appName string, healthy bool, status int) error {
	failureDelta := 1
	if healthy {
		failureDelta = 0
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO link_health (url, app_name, failures, last_status, checked_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (url) DO UPDATE SET
			app_name = excluded.app_name,
			failures = CASE WHEN excluded.failures = 0 THEN 0 ELSE link_health.failures + 1 END,
			last_status = excluded.last_status,
			checked_at = CURRENT_TIMESTAMP
	`, url, appName, failureDelta, status)

	if err != nil {
		return fmt.Errorf("failed to record link check: %w", err)
	}

	return nil
}

func (r *LinkHealthRepo) GetFailing(ctx context.Context, threshold int) ([]LinkHealth, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT url, app_name, failures, last_status, checked_at
		FROM link_health
		WHERE failures >= ?
		ORDER BY failures DESC, url
	`, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get failing links: %w", err)
	}
	defer rows.Close()

	var links []LinkHealth
	for rows.Next() {
		var link LinkHealth
		err := rows.Scan(&link.URL, &link.AppName, &link.Failures, &link.LastStatus, &link.CheckedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link health: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

func (r *LinkHealthRepo) GetSummary(ctx context.Context) (int, int, error) {
	var total, failing int

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN failures > 0 THEN 1 ELSE 0 END), 0)
		FROM link_health
	`).Scan(&total, &failing)

	if err != nil {
		return 0, 0, fmt.Errorf("failed to get link health summary: %w", err)
	}

	return total, failing, nil
}
