package review

// Platform is the normalized platform tag assigned to a published app.
type Platform string

const (
	PlatformWeb        Platform = "web"
	PlatformAndroid    Platform = "android"
	PlatformIOS        Platform = "ios"
	PlatformWindows    Platform = "windows"
	PlatformMacOS      Platform = "macos"
	PlatformDesktop    Platform = "desktop"
	PlatformCLI        Platform = "cli"
	PlatformDiscord    Platform = "discord"
	PlatformTelegram   Platform = "telegram"
	PlatformWhatsApp   Platform = "whatsapp"
	PlatformLibrary    Platform = "library"
	PlatformBrowserExt Platform = "browser-ext"
	PlatformRoblox     Platform = "roblox"
	PlatformWordpress  Platform = "wordpress"
	PlatformAPI        Platform = "api"
)

// Category is the normalized app category used in the published dataset.
type Category string

const (
	CategoryImage      Category = "image"
	CategoryVideoAudio Category = "video_audio"
	CategoryWriting    Category = "writing"
	CategoryChat       Category = "chat"
	CategoryGames      Category = "games"
	CategoryLearn      Category = "learn"
	CategoryBots       Category = "bots"
	CategoryBuild      Category = "build"
	CategoryBusiness   Category = "business"
)

var validCategories = map[Category]bool{
	CategoryImage:      true,
	CategoryVideoAudio: true,
	CategoryWriting:    true,
	CategoryChat:       true,
	CategoryGames:      true,
	CategoryLearn:      true,
	CategoryBots:       true,
	CategoryBuild:      true,
	CategoryBusiness:   true,
}

// IsValidCategory reports whether c is one of the enumerated categories.
func IsValidCategory(c Category) bool {
	return validCategories[c]
}

var validPlatforms = map[Platform]bool{
	PlatformWeb:        true,
	PlatformAndroid:    true,
	PlatformIOS:        true,
	PlatformWindows:    true,
	PlatformMacOS:      true,
	PlatformDesktop:    true,
	PlatformCLI:        true,
	PlatformDiscord:    true,
	PlatformTelegram:   true,
	PlatformWhatsApp:   true,
	PlatformLibrary:    true,
	PlatformBrowserExt: true,
	PlatformRoblox:     true,
	PlatformWordpress:  true,
	PlatformAPI:        true,
}

// IsValidPlatform reports whether p is one of the enumerated platforms.
func IsValidPlatform(p Platform) bool {
	return validPlatforms[p]
}

// ValidationOutcome is the externally computed verdict on a submission,
// supplied as a JSON artifact by the validation workflow.
type ValidationOutcome struct {
	Valid      bool        `json:"valid"`
	Errors     []string    `json:"errors"`
	Checks     Checks      `json:"checks"`
	Stars      int         `json:"stars"`
	ExistingPR *ExistingPR `json:"existing_pr"`
}

type Checks struct {
	Registration RegistrationCheck `json:"registration"`
	Duplicate    DuplicateCheck    `json:"duplicate"`
}

type RegistrationCheck struct {
	ErrorCode string `json:"error_code"`
}

type DuplicateCheck struct {
	IsDuplicate bool `json:"isDuplicate"`
}

type ExistingPR struct {
	Number int `json:"number"`
}

// Submission holds the fields extracted from a submission issue body.
// Absent fields are empty strings.
type Submission struct {
	Name        string
	Description string
	URL         string
	Repo        string
	Discord     string
	Category    string
	Language    string
	Email       string
}

// Metadata is the enriched classification metadata for a submission.
type Metadata struct {
	Emoji    string
	Category Category
	Language string
	Platform Platform
}

// Decision is the terminal triage decision for a single run.
type Decision string

const (
	DecisionRejected   Decision = "rejected"
	DecisionIncomplete Decision = "incomplete"
	DecisionInReview   Decision = "in_review"
)

// Labels holds the issue label names used for lifecycle transitions.
type Labels struct {
	Pending    string `yaml:"pending"`
	Rejected   string `yaml:"rejected"`
	Incomplete string `yaml:"incomplete"`
	InReview   string `yaml:"in_review"`
	ReviewPR   string `yaml:"review_pr"`
}

// DefaultLabels returns the label set used when no override is configured.
func DefaultLabels() Labels {
	return Labels{
		Pending:    "app-submission",
		Rejected:   "app-rejected",
		Incomplete: "app-incomplete",
		InReview:   "app-review",
		ReviewPR:   "app-review-pr",
	}
}

// Transition is the label/lifecycle change computed by the triage state
// machine for one invocation.
type Transition struct {
	Decision     Decision
	AddLabel     string
	RemoveLabels []string
	CloseIssue   bool
}

// Row is the fixed-order 18-column dataset record for an accepted app.
type Row struct {
	Emoji         string
	Name          string
	WebURL        string
	Description   string
	Language      string
	Category      Category
	Platform      Platform
	Submitter     string // "@handle"
	SubmitterID   string
	RepoURL       string
	Stars         string // "⭐N" badge, empty when zero
	Discord       string
	Other         string
	SubmittedDate string // YYYY-MM-DD
	IssueURL      string
	ApprovedDate  string // YYYY-MM-DD
}

// Columns returns the row as dataset columns in the fixed published order.
// The two trailing columns are reserved placeholders.
func (r Row) Columns() []string {
	return []string{
		r.Emoji,
		r.Name,
		r.WebURL,
		r.Description,
		r.Language,
		string(r.Category),
		string(r.Platform),
		r.Submitter,
		r.SubmitterID,
		r.RepoURL,
		r.Stars,
		r.Discord,
		r.Other,
		r.SubmittedDate,
		r.IssueURL,
		r.ApprovedDate,
		"",
		"",
	}
}
