// Package state holds the host-side source of truth for a reader instance.
//
// ReaderState is mutated exclusively through Reduce, a pure transition
// function over a closed action vocabulary. The Store wraps the reducer with
// the minimal synchronization needed for transport goroutines to fold
// asynchronous results back in; the reducer itself never locks and never
// touches the bridge.
package state

// Theme maps a CSS-selector-like key to a style-property/value table.
//
// The engine treats these as stylesheet rules; the host treats them as
// opaque. A reserved "default" theme is always present after construction.
type Theme map[string]map[string]string

// Location is the engine-reported reading position. Its shape is defined by
// the rendering engine; the host stores and returns it without inspection.
type Location map[string]any

// SearchResult is a single full-text search hit posted back by the engine.
type SearchResult struct {
	CFI     string `json:"cfi"`
	Excerpt string `json:"excerpt"`
}

// MarkType enumerates the annotation kinds the engine understands.
type MarkType string

const (
	MarkHighlight MarkType = "highlight"
	MarkUnderline MarkType = "underline"
)

// FontSizes is the fixed set of sizes the reader UI offers. The reducer does
// not enforce membership; the engine accepts any CSS length.
var FontSizes = []string{"10pt", "12pt", "14pt", "16pt", "18pt", "20pt", "24pt"}

// DefaultFontSize is applied until the host changes it.
const DefaultFontSize = "12pt"

// ReaderState is the complete host-side reader state. One instance exists per
// mounted reader and lives until the reader unmounts.
type ReaderState struct {
	Themes          map[string]Theme
	ActiveTheme     string
	FontFamily      string
	FontSize        string
	AtStart         bool
	AtEnd           bool
	BookKey         string
	TotalLocations  int
	CurrentLocation Location
	Progress        float64
	Locations       []string
	IsLoading       bool
	SearchResults   []SearchResult
}

// NewReaderState returns the fixed mount-time defaults: a single default
// theme, empty pagination, not loading.
func NewReaderState(bookKey string) ReaderState {
	return ReaderState{
		Themes:      map[string]Theme{"default": DefaultTheme()},
		ActiveTheme: "default",
		FontSize:    DefaultFontSize,
		BookKey:     bookKey,
		Locations:   []string{},
	}
}

// DefaultTheme is the built-in theme registered under the reserved
// "default" name.
func DefaultTheme() Theme {
	return Theme{
		"body": {
			"background": "#ffffff",
			"color":      "#1a1a1a",
		},
	}
}

// cloneThemeTable duplicates a theme table so theme actions never alias the
// previous state or a caller-held map.
func cloneThemeTable(src map[string]Theme) map[string]Theme {
	themes := make(map[string]Theme, len(src))
	for name, theme := range src {
		themes[name] = theme
	}
	return themes
}
