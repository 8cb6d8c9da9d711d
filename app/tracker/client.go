package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var _ IssueService = (*Client)(nil)

// Client is a thin wrapper over the tracker's REST API (GitHub v3). Every
// method performs a single attempt; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	token      string
	repo       string // "owner/repo"
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, token, repo, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		repo:       repo,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

type issuePayload struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	User      userRef   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type userRef struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// GetIssue fetches a submission issue by number.
func (c *Client) GetIssue(ctx context.Context, number int) (*Issue, error) {
	var payload issuePayload
	endpoint := fmt.Sprintf("/repos/%s/issues/%d", c.repo, number)

	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d: %w", number, err)
	}

	return &Issue{
		Number:    payload.Number,
		Title:     payload.Title,
		Body:      payload.Body,
		Author:    payload.User.Login,
		CreatedAt: payload.CreatedAt,
	}, nil
}

// PostComment posts a comment on the issue.
func (c *Client) PostComment(ctx context.Context, number int, body string) error {
	endpoint := fmt.Sprintf("/repos/%s/issues/%d/comments", c.repo, number)

	err := c.do(ctx, http.MethodPost, endpoint, map[string]string{"body": body}, nil)
	if err != nil {
		return fmt.Errorf("failed to post comment on issue #%d: %w", number, err)
	}
	return nil
}

// EditLabels removes and adds labels on the issue. Removing a label that is
// not present is not an error; label edits are idempotent and safe to
// repeat on the next run.
func (c *Client) EditLabels(ctx context.Context, number int, remove []string, add []string) error {
	for _, label := range remove {
		endpoint := fmt.Sprintf("/repos/%s/issues/%d/labels/%s", c.repo, number, url.PathEscape(label))

		err := c.do(ctx, http.MethodDelete, endpoint, nil, nil)
		if err != nil && !isNotFound(err) {
			return fmt.Errorf("failed to remove label %q from issue #%d: %w", label, number, err)
		}
	}

	if len(add) > 0 {
		endpoint := fmt.Sprintf("/repos/%s/issues/%d/labels", c.repo, number)

		err := c.do(ctx, http.MethodPost, endpoint, map[string][]string{"labels": add}, nil)
		if err != nil {
			return fmt.Errorf("failed to add labels to issue #%d: %w", number, err)
		}
	}

	return nil
}

// CloseIssue closes the issue.
func (c *Client) CloseIssue(ctx context.Context, number int) error {
	endpoint := fmt.Sprintf("/repos/%s/issues/%d", c.repo, number)

	err := c.do(ctx, http.MethodPatch, endpoint, map[string]string{"state": "closed"}, nil)
	if err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", number, err)
	}
	return nil
}

// GetUserID resolves a user handle to its numeric identity. A leading "@"
// is tolerated.
func (c *Client) GetUserID(ctx context.Context, handle string) (int64, error) {
	handle = strings.TrimPrefix(handle, "@")
	if handle == "" {
		return 0, fmt.Errorf("empty user handle")
	}

	var payload userRef
	endpoint := "/users/" + url.PathEscape(handle)

	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return 0, fmt.Errorf("failed to look up user %q: %w", handle, err)
	}

	return payload.ID, nil
}

// CreatePullRequest opens a merge request and applies its labels.
func (c *Client) CreatePullRequest(ctx context.Context, pr NewPullRequest) (*PullRequest, error) {
	var payload struct {
		Number  int    `json:"number"`
		HTMLURL string `json:"html_url"`
	}
	endpoint := fmt.Sprintf("/repos/%s/pulls", c.repo)

	body := map[string]string{
		"title": pr.Title,
		"body":  pr.Body,
		"head":  pr.Head,
		"base":  pr.Base,
	}
	if err := c.do(ctx, http.MethodPost, endpoint, body, &payload); err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	if len(pr.Labels) > 0 {
		// Pull requests share the issue label endpoint.
		if err := c.EditLabels(ctx, payload.Number, nil, pr.Labels); err != nil {
			return nil, err
		}
	}

	return &PullRequest{Number: payload.Number, URL: payload.HTMLURL}, nil
}

type apiError struct {
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Body)
}

func isNotFound(err error) bool {
	apiErr, ok := err.(*apiError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
