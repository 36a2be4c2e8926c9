package sandbox

import "time"

// Config controls engine limits.
type Config struct {
	Timeout       time.Duration
	EnableConsole bool
}

// DefaultConfig returns sensible engine limits.
func DefaultConfig() Config {
	return Config{
		Timeout:       5 * time.Second,
		EnableConsole: true,
	}
}

// Section is one structural section of the loaded document: an href and its
// XHTML content.
type Section struct {
	Href    string
	Content string
}

// LogEntry is one captured console line from injected scripts.
type LogEntry struct {
	Level   string
	Message string
	Time    time.Time
}

// Annotation is an engine-side mark over a position range.
type Annotation struct {
	Type      string
	CFIRange  string
	ClassName string
	Data      map[string]any
	Styles    map[string]string
}
