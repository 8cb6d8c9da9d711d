package publish

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lysyi3m/app-comb/app/dataset"
	"github.com/lysyi3m/app-comb/app/review"
	"github.com/lysyi3m/app-comb/app/tracker"
)

var _ review.Publisher = (*Publisher)(nil)

// GitService is the subset of version-control operations the publisher
// performs, in invocation order.
type GitService interface {
	Fetch(ctx context.Context, branch string) error
	CheckoutReset(ctx context.Context, branch, base string) error
	Configure(ctx context.Context, name, email string) error
	CommitAll(ctx context.Context, message string) error
	PushForceWithLease(ctx context.Context, branch string) error
}

// Publisher adds an accepted submission to the shared dataset through a
// branch-and-merge-request flow. The whole sequence is idempotent: the
// working branch name is derived from the submission id, the branch is
// reset from the shared tip on every run, and the push updates an existing
// merge request when one is already open.
type Publisher struct {
	git         GitService
	tracker     tracker.IssueService
	labels      review.Labels
	baseBranch  string
	botName     string
	botEmail    string
	datasetFile string
	summaryFile string
}

type Config struct {
	BaseBranch  string
	BotName     string
	BotEmail    string
	DatasetFile string
	SummaryFile string
}

func NewPublisher(git GitService, trackerClient tracker.IssueService, labels review.Labels, cfg Config) *Publisher {
	return &Publisher{
		git:         git,
		tracker:     trackerClient,
		labels:      labels,
		baseBranch:  cfg.BaseBranch,
		botName:     cfg.BotName,
		botEmail:    cfg.BotEmail,
		datasetFile: cfg.DatasetFile,
		summaryFile: cfg.SummaryFile,
	}
}

// Publish runs the branch/commit/merge-request sequence for one accepted
// submission.
func (p *Publisher) Publish(ctx context.Context, req review.PublishRequest) error {
	branch := BranchName(req.IssueNumber, req.Name)

	if err := p.git.Fetch(ctx, p.baseBranch); err != nil {
		return err
	}
	if err := p.git.CheckoutReset(ctx, branch, p.baseBranch); err != nil {
		return err
	}

	if err := dataset.PrependRow(p.datasetFile, req.Row.Columns()); err != nil {
		return fmt.Errorf("failed to insert dataset row: %w", err)
	}
	if err := dataset.RegenerateSummary(p.datasetFile, p.summaryFile); err != nil {
		return fmt.Errorf("failed to regenerate summary: %w", err)
	}

	if err := p.git.Configure(ctx, p.botName, p.botEmail); err != nil {
		return err
	}

	message := fmt.Sprintf("Add %s to %s\n\nCo-authored-by: %s <%s@users.noreply.github.com>",
		req.Name, req.Category, req.Author, req.Author)
	if err := p.git.CommitAll(ctx, message); err != nil {
		return err
	}

	if err := p.git.PushForceWithLease(ctx, branch); err != nil {
		return err
	}

	if req.ExistingPR != nil {
		// The push alone refreshed the open merge request.
		slog.Info("Updated existing merge request", "issue", req.IssueNumber, "pr", req.ExistingPR.Number)
		return nil
	}

	pr, err := p.tracker.CreatePullRequest(ctx, tracker.NewPullRequest{
		Title:  fmt.Sprintf("Add %s to %s", req.Name, req.Category),
		Body:   p.pullRequestBody(req),
		Head:   branch,
		Base:   p.baseBranch,
		Labels: []string{p.labels.ReviewPR},
	})
	if err != nil {
		return err
	}

	slog.Info("Opened merge request", "issue", req.IssueNumber, "pr", pr.Number, "url", pr.URL)
	return nil
}

func (p *Publisher) pullRequestBody(req review.PublishRequest) string {
	return fmt.Sprintf("- Adds [%s](%s) to %s\n- %s\n\nFixes #%d",
		req.Name, req.URL, req.Category, req.Description, req.IssueNumber)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)

// BranchName derives the deterministic working branch for a submission:
// auto/app-<id>-<slug of name, max 20 chars>.
func BranchName(issueNumber int, name string) string {
	slug := strings.ToLower(name)
	slug = strings.NewReplacer(" ", "-", "_", "-").Replace(slug)
	slug = slugStrip.ReplaceAllString(slug, "")
	if len(slug) > 20 {
		slug = slug[:20]
	}
	slug = strings.Trim(slug, "-")

	return fmt.Sprintf("auto/app-%d-%s", issueNumber, slug)
}
