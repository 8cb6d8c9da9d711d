package tracker

import (
	"time"
)

// Issue is the tracker-side view of a submission issue.
type Issue struct {
	Number    int
	Title     string
	Body      string
	Author    string
	CreatedAt time.Time
}

// NewPullRequest describes a merge request to open.
type NewPullRequest struct {
	Title  string
	Body   string
	Head   string
	Base   string
	Labels []string
}

// PullRequest is the tracker-side view of an opened merge request.
type PullRequest struct {
	Number int
	URL    string
}
