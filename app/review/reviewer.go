package review

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lysyi3m/app-comb/app/tracker"
)

const fallbackFailureComment = "There was an issue processing your submission. " +
	"Please check the requirements and try again, or comment here for help."

const failureCommentSystemPrompt = `You are a reviewer for a public app directory. ` +
	`You explain submission problems to users in a friendly, direct tone.`

// Request identifies one triage invocation: the submission issue, its
// author and the externally computed validation outcome.
type Request struct {
	IssueNumber int
	Author      string
	Outcome     ValidationOutcome
}

// Reviewer runs the triage decision and publish pipeline for a single
// submission. One invocation per submission; collaborator failures degrade
// to deterministic fallbacks, and only the publish step can abort the run.
type Reviewer struct {
	tracker   tracker.IssueService
	assistant Assistant
	enricher  *Enricher
	rewriter  *Rewriter
	publisher Publisher
	audit     AuditRecorder
	labels    Labels
	repoSlug  string
	now       func() time.Time
}

func NewReviewer(trackerClient tracker.IssueService, assistant Assistant, classifier *Classifier,
	publisher Publisher, audit AuditRecorder, labels Labels, repoSlug string) *Reviewer {
	return &Reviewer{
		tracker:   trackerClient,
		assistant: assistant,
		enricher:  NewEnricher(assistant, classifier),
		rewriter:  NewRewriter(assistant),
		publisher: publisher,
		audit:     audit,
		labels:    labels,
		repoSlug:  repoSlug,
		now:       time.Now,
	}
}

// Run executes one triage invocation and returns the terminal decision.
func (r *Reviewer) Run(ctx context.Context, req Request) (Decision, error) {
	started := r.now()
	transition := Triage(req.Outcome, r.labels)

	if transition.Decision != DecisionInReview {
		r.handleInvalid(ctx, req, transition)
		r.record(ctx, req.IssueNumber, transition, Metadata{}, started, nil)
		return transition.Decision, nil
	}

	meta, err := r.handleValid(ctx, req, transition)
	r.record(ctx, req.IssueNumber, transition, meta, started, err)
	if err != nil {
		return transition.Decision, err
	}

	return transition.Decision, nil
}

// handleInvalid posts an explanatory comment and applies the computed label
// transition. The comment and label calls are independent; a failure in one
// is logged and does not roll back the other, because labeling is
// idempotent and the next scheduled run can repair it.
func (r *Reviewer) handleInvalid(ctx context.Context, req Request, transition Transition) {
	comment := r.failureComment(ctx, req)

	if err := r.tracker.PostComment(ctx, req.IssueNumber, comment); err != nil {
		slog.Error("Failed to post comment", "issue", req.IssueNumber, "error", err)
	}

	if err := r.tracker.EditLabels(ctx, req.IssueNumber, transition.RemoveLabels, []string{transition.AddLabel}); err != nil {
		slog.Error("Failed to update labels", "issue", req.IssueNumber, "error", err)
	}

	if transition.CloseIssue {
		if err := r.tracker.CloseIssue(ctx, req.IssueNumber); err != nil {
			slog.Error("Failed to close issue", "issue", req.IssueNumber, "error", err)
		}
	}

	slog.Info("Handled validation failure",
		"issue", req.IssueNumber,
		"decision", string(transition.Decision),
		"label", transition.AddLabel)
}

func (r *Reviewer) handleValid(ctx context.Context, req Request, transition Transition) (Metadata, error) {
	issue, err := r.tracker.GetIssue(ctx, req.IssueNumber)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to fetch submission: %w", err)
	}

	author := req.Author
	if author == "" {
		author = issue.Author
	}

	sub := ParseSubmission(issue.Body)
	slog.Info("Parsed submission", "issue", req.IssueNumber, "app", sub.Name, "url", sub.URL)

	meta := r.enricher.Run(ctx, sub)
	description := r.rewriter.Run(ctx, sub.Name, sub.Description)

	row := BuildRow(RowInput{
		Submission:  sub,
		Meta:        meta,
		Description: description,
		Stars:       req.Outcome.Stars,
		Author:      author,
		AuthorID:    r.lookupAuthorID(ctx, author),
		IssueNumber: req.IssueNumber,
		RepoSlug:    r.repoSlug,
		SubmittedAt: issue.CreatedAt,
		Now:         r.now(),
	})

	err = r.publisher.Publish(ctx, PublishRequest{
		IssueNumber: req.IssueNumber,
		Name:        sub.Name,
		URL:         sub.URL,
		Category:    meta.Category,
		Description: description,
		Author:      author,
		Row:         row,
		ExistingPR:  req.Outcome.ExistingPR,
	})
	if err != nil {
		return meta, fmt.Errorf("failed to publish submission: %w", err)
	}

	if err := r.tracker.EditLabels(ctx, req.IssueNumber, transition.RemoveLabels, []string{transition.AddLabel}); err != nil {
		slog.Error("Failed to update labels", "issue", req.IssueNumber, "error", err)
	}

	slog.Info("Submission published",
		"issue", req.IssueNumber,
		"app", sub.Name,
		"platform", string(meta.Platform),
		"category", string(meta.Category))

	return meta, nil
}

// failureComment asks the assistant for a short human-facing explanation of
// the validation errors, degrading to a fixed generic message.
func (r *Reviewer) failureComment(ctx context.Context, req Request) string {
	var errorList strings.Builder
	for _, e := range req.Outcome.Errors {
		fmt.Fprintf(&errorList, "- %s\n", e)
	}

	prompt := fmt.Sprintf(`Validation failed for app submission #%d.

Errors:
%s
Write a concise, helpful comment (2-3 sentences max) explaining the issue and what the user should do. Be friendly but direct. Don't use markdown headers.`,
		req.IssueNumber, errorList.String())

	comment, err := r.assistant.Complete(ctx, failureCommentSystemPrompt, prompt)
	if err != nil || strings.TrimSpace(comment) == "" {
		slog.Warn("Failure comment generation failed, using fallback", "issue", req.IssueNumber, "error", err)
		return fallbackFailureComment
	}

	return strings.TrimSpace(comment)
}

// lookupAuthorID resolves the submitter's numeric identity; the lookup is
// best-effort and yields an empty column on failure.
func (r *Reviewer) lookupAuthorID(ctx context.Context, author string) string {
	if author == "" {
		return ""
	}

	id, err := r.tracker.GetUserID(ctx, author)
	if err != nil {
		slog.Warn("Failed to resolve submitter id", "author", author, "error", err)
		return ""
	}

	return strconv.FormatInt(id, 10)
}

func (r *Reviewer) record(ctx context.Context, issueNumber int, transition Transition, meta Metadata, started time.Time, runErr error) {
	if r.audit == nil {
		return
	}

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
	}

	err := r.audit.RecordReview(ctx, issueNumber, string(transition.Decision), transition.AddLabel,
		string(meta.Platform), string(meta.Category), time.Since(started).Milliseconds(), errMsg)
	if err != nil {
		slog.Warn("Failed to record review", "issue", issueNumber, "error", err)
	}
}
