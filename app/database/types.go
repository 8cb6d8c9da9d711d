package database

import (
	"time"
)

// Review is one audit record of a triage run.
type Review struct {
	ID          string
	IssueNumber int
	Decision    string
	Label       string
	Platform    string
	Category    string
	DurationMs  int64
	Error       string
	CreatedAt   time.Time
}

// ReviewStats aggregates run outcomes for the stats endpoint.
type ReviewStats struct {
	Total      int
	InReview   int
	Rejected   int
	Incomplete int
	Failed     int // runs that recorded an error
}

// LinkHealth tracks consecutive probe failures for one published app URL.
type LinkHealth struct {
	URL        string
	AppName    string
	Failures   int
	LastStatus int
	CheckedAt  time.Time
}
