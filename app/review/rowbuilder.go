package review

import (
	"fmt"
	"time"
)

// Code-hosting domains whose URLs identify a source repository. Hosted
// pages domains (github.io and friends) are distinct hosts and therefore
// never match.
var repoHostDomains = []string{
	"github.com",
	"gitlab.com",
	"bitbucket.org",
	"codeberg.org",
}

// IsRepositoryURL reports whether rawURL points at a source repository on a
// known code-hosting domain. Matching is host-based, exact or subdomain.
func IsRepositoryURL(rawURL string) bool {
	hostname, _ := parseHostPath(rawURL)
	if hostname == "" {
		return false
	}

	for _, domain := range repoHostDomains {
		if hostMatches(hostname, domain) {
			return true
		}
	}
	return false
}

// RowInput carries everything the row builder needs. External lookups
// (submitter id, issue creation date) are resolved by the caller and passed
// in; a failed lookup arrives as the zero value.
type RowInput struct {
	Submission  Submission
	Meta        Metadata
	Description string
	Stars       int
	Author      string
	AuthorID    string
	IssueNumber int
	RepoSlug    string    // "owner/repo" of the tracker repository
	SubmittedAt time.Time // issue creation time; zero means lookup failed
	Now         time.Time
}

// BuildRow assembles the fixed-column dataset record. Exactly one of the
// web and repository URL columns is populated: a submission URL on a
// code-hosting domain becomes the repository URL (unless an explicit one
// was given) and leaves the web column empty.
func BuildRow(in RowInput) Row {
	webURL := in.Submission.URL
	repoURL := in.Submission.Repo

	if IsRepositoryURL(in.Submission.URL) {
		webURL = ""
		if repoURL == "" {
			repoURL = in.Submission.URL
		}
	}

	stars := ""
	if in.Stars > 0 {
		stars = fmt.Sprintf("⭐%d", in.Stars)
	}

	submitted := in.SubmittedAt
	if submitted.IsZero() {
		submitted = in.Now
	}

	return Row{
		Emoji:         in.Meta.Emoji,
		Name:          in.Submission.Name,
		WebURL:        webURL,
		Description:   in.Description,
		Language:      in.Meta.Language,
		Category:      in.Meta.Category,
		Platform:      in.Meta.Platform,
		Submitter:     "@" + in.Author,
		SubmitterID:   in.AuthorID,
		RepoURL:       repoURL,
		Stars:         stars,
		Discord:       in.Submission.Discord,
		SubmittedDate: submitted.Format("2006-01-02"),
		IssueURL:      fmt.Sprintf("https://github.com/%s/issues/%d", in.RepoSlug, in.IssueNumber),
		ApprovedDate:  in.Now.Format("2006-01-02"),
	}
}
