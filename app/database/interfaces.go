package database

import (
	"context"
)

// ReviewRepository persists triage run records. It also satisfies the
// review pipeline's audit recorder.
type ReviewRepository interface {
	RecordReview(ctx context.Context, issueNumber int, decision, label, platform, category string, durationMs int64, runErr string) error
	GetStats(ctx context.Context) (ReviewStats, error)
	GetRecent(ctx context.Context, limit int) ([]Review, error)
}

// LinkHealthRepository tracks probe results for published app URLs.
type LinkHealthRepository interface {
	RecordCheck(ctx context.Context, url, appName string, healthy bool, status int) error
	GetFailing(ctx context.Context, threshold int) ([]LinkHealth, error)
	GetSummary(ctx context.Context) (total int, failing int, err error)
}
