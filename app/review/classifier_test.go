package review

import (
	"testing"
)

func TestClassifier_Run_HostRules(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{"Play Store", "https://play.google.com/store/apps/details?id=com.example", PlatformAndroid},
		{"App Store", "https://apps.apple.com/us/app/example/id123", PlatformIOS},
		{"RoutineHub", "https://routinehub.co/shortcut/12345", PlatformIOS},
		{"WhatsApp API link", "https://api.whatsapp.com/send?phone=123", PlatformWhatsApp},
		{"WhatsApp chat link", "https://chat.whatsapp.com/ABCDEF", PlatformWhatsApp},
		{"Telegram", "https://t.me/examplebot", PlatformTelegram},
		{"Discord invite", "https://discord.gg/abc123", PlatformDiscord},
		{"Discord app", "https://discord.com/oauth2/authorize?client_id=1", PlatformDiscord},
		{"Firefox addons", "https://addons.mozilla.org/en-US/firefox/addon/example", PlatformBrowserExt},
		{"Chrome web store", "https://chromewebstore.google.com/detail/example/abc", PlatformBrowserExt},
		{"Legacy Chrome web store", "https://chrome.google.com/webstore/detail/example/abc", PlatformBrowserExt},
		{"Roblox", "https://www.roblox.com/games/123/example", PlatformRoblox},
		{"PyPI", "https://pypi.org/project/example", PlatformLibrary},
		{"npm", "https://www.npmjs.com/package/example", PlatformLibrary},
		{"WordPress plugin", "https://wordpress.org/plugins/example", PlatformWordpress},
		{"Bluesky", "https://bsky.app/profile/example.bsky.social", PlatformAPI},
		{"Go packages", "https://pkg.go.dev/github.com/example/pkg", PlatformLibrary},
		{"crates.io", "https://crates.io/crates/example", PlatformLibrary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Run("Example", tt.url, "")
			if result != tt.expected {
				t.Errorf("Expected platform %s for %s, got %s", tt.expected, tt.url, result)
			}
		})
	}
}

func TestClassifier_Run_HostMatchIsNotSubstring(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	// A hostname that merely contains a known domain must not match it.
	result := classifier.Run("Example", "https://evilplay.google.com.attacker.com/app", "")
	if result != PlatformWeb {
		t.Errorf("Expected web for spoofed hostname, got %s", result)
	}

	// True subdomains do match.
	result = classifier.Run("Example", "https://www.roblox.com/games/123", "")
	if result != PlatformRoblox {
		t.Errorf("Expected roblox for subdomain, got %s", result)
	}
}

func TestClassifier_Run_PathPrefix(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	// chrome.google.com only maps to browser-ext under /webstore.
	result := classifier.Run("Example", "https://chrome.google.com/other/page", "")
	if result != PlatformWeb {
		t.Errorf("Expected web for chrome.google.com outside /webstore, got %s", result)
	}

	// wordpress.org only maps to wordpress under /plugins.
	result = classifier.Run("Example", "https://wordpress.org/news/2024/01/release", "")
	if result != PlatformWeb {
		t.Errorf("Expected web for wordpress.org outside /plugins, got %s", result)
	}
}

func TestClassifier_Run_ExeSuffix(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	result := classifier.Run("Example", "https://example.com/downloads/setup.exe", "")
	if result != PlatformWindows {
		t.Errorf("Expected windows for .exe URL, got %s", result)
	}
}

func TestClassifier_Run_KeywordRules(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	tests := []struct {
		name        string
		appName     string
		url         string
		description string
		expected    Platform
	}{
		{"Discord bot phrase", "HelperBot", "https://example.com", "A discord bot for images", PlatformDiscord},
		{"Telegram bot phrase", "TeleHelper", "https://example.com", "A telegram bot that chats", PlatformTelegram},
		{"Telegram and bot apart", "MyBot", "https://example.com", "telegram assistant, a friendly bot", PlatformTelegram},
		{"WhatsApp keyword", "WappTool", "https://example.com", "Works over whatsapp", PlatformWhatsApp},
		{"WordPress keyword", "WPHelper", "https://example.com", "A wordpress integration", PlatformWordpress},
		{"Home Assistant", "HAAddon", "https://example.com", "home assistant integration", PlatformAPI},
		{"Obsidian plugin", "NoteGen", "https://example.com", "An obsidian plugin for notes", PlatformLibrary},
		{"Browser extension", "TabTool", "https://example.com", "A chrome extension for tabs", PlatformBrowserExt},
		{"CLI", "TermTool", "https://example.com", "A command-line image generator", PlatformCLI},
		{"Desktop app", "DeskGen", "https://example.com", "A tkinter desktop application", PlatformDesktop},
		{"Game mod", "ModPack", "https://example.com", "A rimworld mod adding dialogue", PlatformDesktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Run(tt.appName, tt.url, tt.description)
			if result != tt.expected {
				t.Errorf("Expected platform %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestClassifier_Run_NoHostKeywordRules(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	// Bare "discord" only classifies when the submission has no URL.
	result := classifier.Run("Helper", "", "Runs on our discord server")
	if result != PlatformDiscord {
		t.Errorf("Expected discord for URL-less discord mention, got %s", result)
	}

	result = classifier.Run("Helper", "https://example.com", "Runs on our discord server")
	if result != PlatformWeb {
		t.Errorf("Expected web when a host is present, got %s", result)
	}
}

func TestClassifier_Run_Defaults(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	result := classifier.Run("Plain App", "https://example.com/app", "A generic page")
	if result != PlatformWeb {
		t.Errorf("Expected web default with host, got %s", result)
	}

	result = classifier.Run("Plain Service", "", "A generic service")
	if result != PlatformAPI {
		t.Errorf("Expected api default without host, got %s", result)
	}
}

func TestClassifier_Run_SchemelessURL(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	result := classifier.Run("Example", "play.google.com/store/apps/details?id=com.example", "")
	if result != PlatformAndroid {
		t.Errorf("Expected android for schemeless Play Store URL, got %s", result)
	}
}

func TestClassifier_Run_ExtraRules(t *testing.T) {
	classifier := NewClassifier(
		[]HostRule{{Domain: "itch.io", Platform: PlatformDesktop}},
		[]KeywordRule{{Any: []string{"minecraft"}, Platform: PlatformDesktop}},
	)

	result := classifier.Run("Game", "https://example.itch.io/game", "")
	if result != PlatformDesktop {
		t.Errorf("Expected desktop from extra host rule, got %s", result)
	}

	result = classifier.Run("BlockGen", "", "A minecraft world generator")
	if result != PlatformDesktop {
		t.Errorf("Expected desktop from extra keyword rule, got %s", result)
	}

	// Built-in rules still win over extras.
	result = classifier.Run("Game", "https://play.google.com/store/apps/details?id=x", "A minecraft companion")
	if result != PlatformAndroid {
		t.Errorf("Expected built-in host rule to win, got %s", result)
	}
}

func TestClassifier_Run_AlwaysReturnsValidPlatform(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	inputs := []struct {
		name, url, description string
	}{
		{"", "", ""},
		{"App", "https://example.com", "text"},
		{"App", "not a url at all %%%", "text"},
		{"App", "https://t.me/bot", ""},
	}

	for _, in := range inputs {
		result := classifier.Run(in.name, in.url, in.description)
		if !IsValidPlatform(result) {
			t.Errorf("Classifier returned invalid platform %q for %+v", result, in)
		}
	}
}
