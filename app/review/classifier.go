package review

import (
	"net/url"
	"strings"
)

// HostRule maps a hostname (exact or true subdomain match) to a platform.
// An optional path prefix further narrows the match.
type HostRule struct {
	Domain     string   `yaml:"domain"`
	PathPrefix string   `yaml:"path_prefix"`
	Platform   Platform `yaml:"platform"`
}

// KeywordRule maps phrases found in the lowercase name+description to a
// platform. Any matches when at least one phrase is present; All requires
// every phrase. NoHost restricts the rule to submissions without a URL host.
type KeywordRule struct {
	Any      []string `yaml:"any"`
	All      []string `yaml:"all"`
	NoHost   bool     `yaml:"no_host"`
	Platform Platform `yaml:"platform"`
}

// Rules are evaluated in order; the first matching rule wins.
var defaultHostRules = []HostRule{
	{Domain: "play.google.com", Platform: PlatformAndroid},
	{Domain: "apps.apple.com", Platform: PlatformIOS},
	{Domain: "routinehub.co", Platform: PlatformIOS},
	{Domain: "api.whatsapp.com", Platform: PlatformWhatsApp},
	{Domain: "chat.whatsapp.com", Platform: PlatformWhatsApp},
	{Domain: "t.me", Platform: PlatformTelegram},
	{Domain: "discord.gg", Platform: PlatformDiscord},
	{Domain: "discord.com", Platform: PlatformDiscord},
	{Domain: "addons.mozilla.org", Platform: PlatformBrowserExt},
	{Domain: "chromewebstore.google.com", Platform: PlatformBrowserExt},
	{Domain: "chrome.google.com", PathPrefix: "/webstore", Platform: PlatformBrowserExt},
	{Domain: "roblox.com", Platform: PlatformRoblox},
	{Domain: "pypi.org", Platform: PlatformLibrary},
	{Domain: "npmjs.com", Platform: PlatformLibrary},
	{Domain: "wordpress.org", PathPrefix: "/plugins", Platform: PlatformWordpress},
	{Domain: "bsky.app", Platform: PlatformAPI},
	{Domain: "pkg.go.dev", Platform: PlatformLibrary},
	{Domain: "crates.io", Platform: PlatformLibrary},
}

var defaultKeywordRules = []KeywordRule{
	{Any: []string{"discord bot", "discord slash"}, Platform: PlatformDiscord},
	{Any: []string{"telegram bot"}, Platform: PlatformTelegram},
	{All: []string{"telegram", "bot"}, Platform: PlatformTelegram},
	{Any: []string{"whatsapp"}, Platform: PlatformWhatsApp},
	{Any: []string{"roblox"}, Platform: PlatformRoblox},
	{Any: []string{"wordpress plugin", "wordpress"}, Platform: PlatformWordpress},
	{Any: []string{"home assistant"}, Platform: PlatformAPI},
	{Any: []string{"obsidian plugin"}, Platform: PlatformLibrary},
	{Any: []string{"firefox extension", "chrome extension", "browser extension"}, Platform: PlatformBrowserExt},
	{Any: []string{"command-line", "command line", " cli "}, Platform: PlatformCLI},
	{Any: []string{"pyqt", "tkinter", "desktop app", "desktop application"}, Platform: PlatformDesktop},
	{Any: []string{"rimworld", "steam workshop", "game mod"}, Platform: PlatformDesktop},
	{Any: []string{"discord"}, NoHost: true, Platform: PlatformDiscord},
	{Any: []string{"telegram"}, NoHost: true, Platform: PlatformTelegram},
}

// Classifier infers the platform tag for a submission from its name, URL
// and description. Pure and deterministic; no external calls.
type Classifier struct {
	hostRules    []HostRule
	keywordRules []KeywordRule
}

// NewClassifier builds a classifier from the built-in rule tables. Extra
// rules, if any, are appended after the built-ins of the same kind and so
// only apply when no built-in rule matched first.
func NewClassifier(extraHosts []HostRule, extraKeywords []KeywordRule) *Classifier {
	c := &Classifier{
		hostRules:    make([]HostRule, 0, len(defaultHostRules)+len(extraHosts)),
		keywordRules: make([]KeywordRule, 0, len(defaultKeywordRules)+len(extraKeywords)),
	}
	c.hostRules = append(c.hostRules, defaultHostRules...)
	c.hostRules = append(c.hostRules, extraHosts...)
	c.keywordRules = append(c.keywordRules, defaultKeywordRules...)
	c.keywordRules = append(c.keywordRules, extraKeywords...)
	return c
}

// Run returns the platform for the given submission fields. Host rules are
// checked first against the parsed hostname (exact or subdomain match,
// never a raw substring check), then the URL path suffix, then keyword
// rules over the lowercase name+description, then the default.
func (c *Classifier) Run(name, rawURL, description string) Platform {
	nd := strings.ToLower(name) + " " + strings.ToLower(description)

	hostname, path := parseHostPath(rawURL)

	for _, rule := range c.hostRules {
		if !hostMatches(hostname, rule.Domain) {
			continue
		}
		if rule.PathPrefix != "" && !strings.HasPrefix(path, rule.PathPrefix) {
			continue
		}
		return rule.Platform
	}

	if strings.HasSuffix(path, ".exe") {
		return PlatformWindows
	}

	for _, rule := range c.keywordRules {
		if rule.NoHost && hostname != "" {
			continue
		}
		if matchesKeywordRule(nd, rule) {
			return rule.Platform
		}
	}

	if hostname != "" {
		return PlatformWeb
	}
	return PlatformAPI
}

// parseHostPath normalizes a candidate URL (prepending a scheme if absent)
// and returns its lowercase hostname and path. Unparseable input yields
// empty strings.
func parseHostPath(rawURL string) (string, string) {
	if rawURL == "" {
		return "", ""
	}

	raw := rawURL
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(strings.ToLower(raw))
	if err != nil {
		return "", ""
	}

	return parsed.Hostname(), parsed.Path
}

// hostMatches reports whether hostname equals domain or is a true subdomain
// of it. Substring tricks like "evilplay.google.com.attacker.com" never
// match "play.google.com".
func hostMatches(hostname, domain string) bool {
	if hostname == "" || domain == "" {
		return false
	}
	return hostname == domain || strings.HasSuffix(hostname, "."+domain)
}

func matchesKeywordRule(nd string, rule KeywordRule) bool {
	if len(rule.All) > 0 {
		for _, phrase := range rule.All {
			if !strings.Contains(nd, phrase) {
				return false
			}
		}
		return true
	}

	for _, phrase := range rule.Any {
		if strings.Contains(nd, phrase) {
			return true
		}
	}
	return false
}
