package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lysyi3m/app-comb/app/api"
	"github.com/lysyi3m/app-comb/app/assistant"
	"github.com/lysyi3m/app-comb/app/cfg"
	"github.com/lysyi3m/app-comb/app/database"
	"github.com/lysyi3m/app-comb/app/publish"
	"github.com/lysyi3m/app-comb/app/review"
	"github.com/lysyi3m/app-comb/app/rules"
	"github.com/lysyi3m/app-comb/app/tasks"
	"github.com/lysyi3m/app-comb/app/tracker"
	"github.com/lysyi3m/app-comb/app/vcs"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting App Comb", "version", appCfg.Version, "serve", appCfg.Serve)

	ruleSet, err := rules.Load(appCfg.RulesFile)
	if err != nil {
		slog.Error("Failed to load rules", "file", appCfg.RulesFile, "error", err)
		os.Exit(1)
	}

	trackerClient := tracker.NewClient(appCfg.TrackerAPIURL, appCfg.TrackerToken,
		appCfg.RepoSlug, appCfg.UserAgent, nil)

	assistantClient := assistant.NewClient(appCfg.ModelEndpoint, appCfg.ModelAPIKey,
		appCfg.UserAgent, assistant.Options{
			Model:     appCfg.Model,
			MaxTokens: appCfg.MaxTokens,
		}, nil)

	classifier := review.NewClassifier(ruleSet.Hosts, ruleSet.Keywords)

	git := vcs.NewGit(appCfg.WorkDir)
	publisher := publish.NewPublisher(git, trackerClient, ruleSet.Labels, publish.Config{
		BaseBranch:  appCfg.BaseBranch,
		BotName:     appCfg.BotName,
		BotEmail:    appCfg.BotEmail,
		DatasetFile: appCfg.DatasetFile,
		SummaryFile: appCfg.SummaryFile,
	})

	if appCfg.Serve {
		runServer(appCfg, trackerClient, assistantClient, classifier, publisher, ruleSet)
		return
	}

	runReview(appCfg, trackerClient, assistantClient, classifier, publisher, ruleSet)
}

// runReview executes a single triage invocation and exits. This is the mode
// CI invokes once per submission event.
func runReview(appCfg *cfg.Cfg, trackerClient *tracker.Client, assistantClient *assistant.Client,
	classifier *review.Classifier, publisher *publish.Publisher, ruleSet *rules.Rules) {

	outcome, err := review.ParseValidationOutcome(appCfg.ValidationResult)
	if err != nil {
		slog.Error("Invalid validation result", "issue", appCfg.IssueNumber, "error", err)
		os.Exit(1)
	}

	reviewer := review.NewReviewer(trackerClient, assistantClient, classifier,
		publisher, nil, ruleSet.Labels, appCfg.RepoSlug)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	decision, err := reviewer.Run(ctx, review.Request{
		IssueNumber: appCfg.IssueNumber,
		Author:      appCfg.IssueAuthor,
		Outcome:     outcome,
	})
	if err != nil {
		slog.Error("Review failed", "issue", appCfg.IssueNumber, "decision", string(decision), "error", err)
		os.Exit(1)
	}

	slog.Info("Review completed", "issue", appCfg.IssueNumber, "decision", string(decision))
}

// runServer starts the long-lived service: HTTP API, background workers and
// the periodic dataset link check, with the audit store enabled.
func runServer(appCfg *cfg.Cfg, trackerClient *tracker.Client, assistantClient *assistant.Client,
	classifier *review.Classifier, publisher *publish.Publisher, ruleSet *rules.Rules) {

	slog.Info("Connecting to database", "path", appCfg.DBPath)
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "schema_version", version, "dirty", dirty)

	reviewRepo := database.NewReviewRepository(db)
	linkRepo := database.NewLinkHealthRepository(db)

	reviewer := review.NewReviewer(trackerClient, assistantClient, classifier,
		publisher, reviewRepo, ruleSet.Labels, appCfg.RepoSlug)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(linkRepo, &http.Client{})
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(reviewRepo, linkRepo, reviewer, scheduler, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
