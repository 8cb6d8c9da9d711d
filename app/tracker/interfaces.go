package tracker

import (
	"context"
)

// IssueService defines the issue-tracker operations consumed by the review
// pipeline: issue reads, label transitions, comments, lifecycle changes,
// submitter identity lookup and merge request creation.
type IssueService interface {
	GetIssue(ctx context.Context, number int) (*Issue, error)
	PostComment(ctx context.Context, number int, body string) error
	EditLabels(ctx context.Context, number int, remove []string, add []string) error
	CloseIssue(ctx context.Context, number int) error
	GetUserID(ctx context.Context, handle string) (int64, error)
	CreatePullRequest(ctx context.Context, pr NewPullRequest) (*PullRequest, error)
}
