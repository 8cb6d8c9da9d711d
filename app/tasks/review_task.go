package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/lysyi3m/app-comb/app/review"
)

// ReviewTask runs the triage pipeline for one enqueued submission. The
// pipeline itself makes single-attempt collaborator calls with fallbacks;
// the task retries once so a transient publish failure gets a second whole
// run, which the publisher's idempotent sequence makes safe.
type ReviewTask struct {
	Task
	Request  review.Request
	reviewer *review.Reviewer
}

func NewReviewTask(reviewer *review.Reviewer, request review.Request) *ReviewTask {
	task := NewTask(TaskTypeReview, strconv.Itoa(request.IssueNumber))
	task.MaxRetries = 1

	return &ReviewTask{
		Task:     task,
		Request:  request,
		reviewer: reviewer,
	}
}

func (t *ReviewTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	decision, err := t.reviewer.Run(ctx, t.Request)
	if err != nil {
		return fmt.Errorf("review of issue #%d failed: %w", t.Request.IssueNumber, err)
	}

	slog.Info("Task completed",
		"type", "Review",
		"issue", t.Request.IssueNumber,
		"decision", string(decision),
		"duration", t.GetDuration())

	return nil
}
