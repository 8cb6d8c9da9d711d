package api

type StatsResponse struct {
	Reviews ReviewStatsResponse `json:"reviews"`
	Links   LinkStatsResponse   `json:"links"`
}

type ReviewStatsResponse struct {
	Total      int `json:"total"`
	InReview   int `json:"in_review"`
	Rejected   int `json:"rejected"`
	Incomplete int `json:"incomplete"`
	Failed     int `json:"failed"`
}

type LinkStatsResponse struct {
	Total   int `json:"total"`
	Failing int `json:"failing"`
}

type ReviewResponse struct {
	ID          string `json:"id"`
	IssueNumber int    `json:"issue_number"`
	Decision    string `json:"decision"`
	Label       string `json:"label"`
	Platform    string `json:"platform"`
	Category    string `json:"category"`
	DurationMs  int64  `json:"duration_ms"`
	Error       string `json:"error,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type LinkHealthResponse struct {
	URL        string `json:"url"`
	AppName    string `json:"app_name"`
	Failures   int    `json:"failures"`
	LastStatus int    `json:"last_status"`
	CheckedAt  string `json:"checked_at"`
}
