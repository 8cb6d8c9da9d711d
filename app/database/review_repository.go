package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var _ ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo handles database operations for triage run records.
type ReviewRepo struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) RecordReview(ctx context.Context, issueNumber int, decision, label, platform, category string, durationMs int64, runErr string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, issue_number, decision, label, platform, category, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), issueNumber, decision, label, platform, category, durationMs, runErr)

	if err != nil {
		return fmt.Errorf("failed to record review: %w", err)
	}

	return nil
}

func (r *ReviewRepo) GetStats(ctx context.Context) (ReviewStats, error) {
	var stats ReviewStats

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN decision = 'in_review' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN decision = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN decision = 'incomplete' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0)
		FROM reviews
	`).Scan(&stats.Total, &stats.InReview, &stats.Rejected, &stats.Incomplete, &stats.Failed)

	if err != nil {
		return stats, fmt.Errorf("failed to get review stats: %w", err)
	}

	return stats, nil
}

func (r *ReviewRepo) GetRecent(ctx context.Context, limit int) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, issue_number, decision, label, platform, category, duration_ms, error, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var review Review
		err := rows.Scan(&review.ID, &review.IssueNumber, &review.Decision, &review.Label,
			&review.Platform, &review.Category, &review.DurationMs, &review.Error, &review.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
