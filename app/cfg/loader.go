package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Review invocation inputs
	IssueNumber      int    `long:"issue" env:"ISSUE_NUMBER" description:"Submission issue number to review (required in review mode)"`
	IssueAuthor      string `long:"issue-author" env:"ISSUE_AUTHOR" description:"Submitter handle; falls back to the issue author"`
	ValidationResult string `long:"validation-result" env:"VALIDATION_RESULT" description:"Serialized validation outcome JSON"`

	// Issue tracker configuration
	TrackerAPIURL string `long:"tracker-api-url" env:"TRACKER_API_URL" default:"https://api.github.com" description:"Issue tracker REST API base URL"`
	TrackerToken  string `long:"tracker-token" env:"GH_TOKEN" description:"Issue tracker API token (required in review mode)"`
	RepoSlug      string `long:"repo" env:"REPO_SLUG" default:"app-comb/apps" description:"Tracker repository as owner/repo"`

	// Version control / publish configuration
	WorkDir     string `long:"work-dir" env:"WORK_DIR" default:"." description:"Working tree of the dataset repository"`
	BaseBranch  string `long:"base-branch" env:"BASE_BRANCH" default:"main" description:"Shared branch that working branches are cut from"`
	BotName     string `long:"bot-name" env:"BOT_NAME" default:"app-comb[bot]" description:"Committer name for published rows"`
	BotEmail    string `long:"bot-email" env:"BOT_EMAIL" default:"app-comb[bot]@users.noreply.github.com" description:"Committer email for published rows"`
	DatasetFile string `long:"dataset-file" env:"DATASET_FILE" default:"apps/APPS.md" description:"Path of the shared dataset table, relative to the working tree"`
	SummaryFile string `long:"summary-file" env:"SUMMARY_FILE" default:"apps/SUMMARY.md" description:"Path of the derived summary view"`

	// Assistant model configuration
	ModelEndpoint string `long:"model-endpoint" env:"MODEL_ENDPOINT" description:"Chat completions endpoint (OpenAI-compatible); enrichment degrades to defaults when unset"`
	ModelAPIKey   string `long:"model-api-key" env:"MODEL_API_KEY" description:"Assistant model API key (optional)"`
	Model         string `long:"model" env:"MODEL" default:"openai" description:"Assistant model name"`
	MaxTokens     int    `long:"max-tokens" env:"MAX_TOKENS" default:"2048" description:"Completion token limit"`

	// Server mode configuration
	Serve             bool   `long:"serve" env:"SERVE" description:"Run as a long-lived service instead of a one-shot review"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve mode)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for review tasks (serve mode)"`
	LinkCheckInterval int    `long:"link-check-interval" env:"LINK_CHECK_INTERVAL" default:"86400" description:"Dataset link health check interval in seconds (serve mode)"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the trigger endpoint (optional)"`
	DBPath            string `long:"db-path" env:"DB_PATH" default:"./app-comb.db" description:"SQLite database path for the review audit store"`

	// Application metadata
	RulesFile string `long:"rules-file" env:"RULES_FILE" description:"Optional YAML file overriding labels and classifier rules"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"App Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		IssueNumber:       raw.IssueNumber,
		IssueAuthor:       raw.IssueAuthor,
		ValidationResult:  raw.ValidationResult,
		TrackerAPIURL:     raw.TrackerAPIURL,
		TrackerToken:      raw.TrackerToken,
		RepoSlug:          raw.RepoSlug,
		WorkDir:           raw.WorkDir,
		BaseBranch:        raw.BaseBranch,
		BotName:           raw.BotName,
		BotEmail:          raw.BotEmail,
		DatasetFile:       raw.DatasetFile,
		SummaryFile:       raw.SummaryFile,
		ModelEndpoint:     raw.ModelEndpoint,
		ModelAPIKey:       raw.ModelAPIKey,
		Model:             raw.Model,
		MaxTokens:         raw.MaxTokens,
		Serve:             raw.Serve,
		Port:              raw.Port,
		WorkerCount:       raw.WorkerCount,
		LinkCheckInterval: raw.LinkCheckInterval,
		APIAccessKey:      raw.APIAccessKey,
		DBPath:            raw.DBPath,
		RulesFile:         raw.RulesFile,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// validate enforces the two fatal preconditions of a one-shot review before
// any side effect can occur. Serve mode checks the token only; issue
// numbers arrive per request.
func validate(cfg *Cfg) error {
	if cfg.TrackerToken == "" {
		return fmt.Errorf("tracker token is required (GH_TOKEN)")
	}
	if !cfg.Serve && cfg.IssueNumber <= 0 {
		return fmt.Errorf("issue number is required in review mode (ISSUE_NUMBER)")
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
