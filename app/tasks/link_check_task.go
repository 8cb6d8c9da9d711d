package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/app-comb/app/database"
	"github.com/lysyi3m/app-comb/app/dataset"
)

// Statuses that indicate anti-bot protection, auth walls, rate limits or
// geo blocks rather than a dead app; the URL counts as alive.
var aliveStatusCodes = map[int]bool{
	http.StatusUnauthorized:               true,
	http.StatusForbidden:                  true,
	http.StatusTooManyRequests:            true,
	http.StatusUnavailableForLegalReasons: true,
}

// LinkCheckTask probes every published app URL and records the result, so
// persistently dead listings can be found and removed.
type LinkCheckTask struct {
	Task
	datasetFile string
	userAgent   string
	httpClient  *http.Client
	linkRepo    database.LinkHealthRepository
}

func NewLinkCheckTask(datasetFile, userAgent string, httpClient *http.Client, linkRepo database.LinkHealthRepository) *LinkCheckTask {
	return &LinkCheckTask{
		Task:        NewTask(TaskTypeLinkCheck, "dataset"),
		datasetFile: datasetFile,
		userAgent:   userAgent,
		httpClient:  httpClient,
		linkRepo:    linkRepo,
	}
}

func (t *LinkCheckTask) Execute(ctx context.Context) error {
	entries, err := dataset.ParseEntries(t.datasetFile)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	checked := 0
	unhealthy := 0

	for _, entry := range entries {
		url := entry.WebURL
		if url == "" {
			url = entry.RepoURL
		}
		if url == "" {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		healthy, status := t.probe(ctx, url)
		checked++
		if !healthy {
			unhealthy++
			slog.Debug("App link unhealthy", "app", entry.Name, "url", url, "status", status)
		}

		if err := t.linkRepo.RecordCheck(ctx, url, entry.Name, healthy, status); err != nil {
			slog.Warn("Failed to record link check", "url", url, "error", err)
		}
	}

	slog.Info("Task completed",
		"type", "LinkCheck",
		"duration", t.GetDuration(),
		"checked", checked,
		"unhealthy", unhealthy)

	return nil
}

// probe issues one HEAD request, falling back to GET for servers that
// reject HEAD outright.
func (t *LinkCheckTask) probe(ctx context.Context, url string) (bool, int) {
	status, err := t.request(ctx, http.MethodHead, url)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = t.request(ctx, http.MethodGet, url)
	}
	if err != nil {
		return false, 0
	}

	if status >= 200 && status < 400 {
		return true, status
	}
	return aliveStatusCodes[status], status
}

func (t *LinkCheckTask) request(ctx context.Context, method, url string) (int, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
