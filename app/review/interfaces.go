package review

import (
	"context"
)

// PublishRequest carries everything the publisher needs to add one accepted
// submission to the shared dataset.
type PublishRequest struct {
	IssueNumber int
	Name        string
	URL         string
	Category    Category
	Description string
	Author      string
	Row         Row
	ExistingPR  *ExistingPR
}

// Publisher performs the idempotent branch/commit/merge-request sequence
// for an accepted submission. Invoking it twice for the same submission id
// updates the same branch and merge request instead of creating duplicates.
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) error
}

// AuditRecorder persists one record per triage run. Recording is
// best-effort; failures are logged and never abort a review.
type AuditRecorder interface {
	RecordReview(ctx context.Context, issueNumber int, decision, label, platform, category string, durationMs int64, runErr string) error
}
