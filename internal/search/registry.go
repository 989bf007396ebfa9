package search

// Options carries per-engine settings the registry constructors need.
// Engines that take no settings ignore it.
type Options struct {
	SearxURL  string
	SearxKey  string
	BraveKey  string
	FilePath  string
	UserAgent string
}

// registry is the closed set of known engines. Names resolve
// case-insensitively; adding an engine means adding a constructor here,
// never loading anything at runtime.
var registry = map[string]func(Options) Provider{
	"duckduckgo": func(o Options) Provider {
		return &DuckDuckGo{UserAgent: o.UserAgent}
	},
	"searx": func(o Options) Provider {
		return &SearxNG{BaseURL: o.SearxURL, APIKey: o.SearxKey, UserAgent: o.UserAgent}
	},
	"brave": func(o Options) Provider {
		return &Brave{APIKey: o.BraveKey, UserAgent: o.UserAgent}
	},
	"file": func(o Options) Provider {
		return &FileProvider{Path: o.FilePath}
	},
}
