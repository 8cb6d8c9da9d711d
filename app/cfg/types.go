package cfg

type Cfg struct {
	// Review invocation inputs
	IssueNumber      int
	IssueAuthor      string
	ValidationResult string

	// Issue tracker configuration
	TrackerAPIURL string
	TrackerToken  string
	RepoSlug      string

	// Version control / publish configuration
	WorkDir     string
	BaseBranch  string
	BotName     string
	BotEmail    string
	DatasetFile string
	SummaryFile string

	// Assistant model configuration
	ModelEndpoint string
	ModelAPIKey   string
	Model         string
	MaxTokens     int

	// Server mode configuration
	Serve             bool
	Port              string
	WorkerCount       int
	LinkCheckInterval int
	APIAccessKey      string
	DBPath            string

	// Application metadata
	RulesFile string
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
