package command

import (
	"strings"

	"github.com/foliohq/folio/internal/state"
)

// Engine globals written alongside theme commands so the engine can
// re-apply the active theme table after a remount.
const (
	themesGlobal      = "THEMES"
	activeThemeGlobal = "ACTIVE_THEME"
)

// DefaultMarkStyles is applied to annotations when the caller supplies no
// style overrides.
var DefaultMarkStyles = map[string]string{"fill": "yellow"}

// RegisterTheme encodes a single-theme registration.
func RegisterTheme(name string, theme state.Theme) (Command, error) {
	script, err := call("themes", "register", JSON(name), JSON(theme))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "themes.register", Script: script}, nil
}

// RegisterThemes encodes a wholesale theme-table replacement: the table is
// written to the engine global and then registered.
func RegisterThemes(themes map[string]state.Theme) (Command, error) {
	set, err := assign(themesGlobal, themes)
	if err != nil {
		return Command{}, err
	}
	reg, err := call("themes", "register", Raw("window."+themesGlobal))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "themes.register", Script: set + " " + reg}, nil
}

// SelectTheme encodes an active-theme switch. The name is forwarded even
// when it was never registered; the engine's behavior is then undefined.
func SelectTheme(name string) (Command, error) {
	set, err := assign(activeThemeGlobal, name)
	if err != nil {
		return Command{}, err
	}
	sel, err := call("themes", "select", JSON(name))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "themes.select", Script: set + " " + sel}, nil
}

// Font encodes a font-family change.
func Font(family string) (Command, error) {
	script, err := call("themes", "font", JSON(family))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "themes.font", Script: script}, nil
}

// FontSize encodes a font-size change.
func FontSize(size string) (Command, error) {
	script, err := call("themes", "fontSize", JSON(size))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "themes.fontSize", Script: script}, nil
}

// UpdateTheme encodes a theme refresh. This forces the engine to re-apply a
// theme without changing the recorded active theme on the host.
func UpdateTheme(name string) (Command, error) {
	script, err := call("themes", "update", JSON(name))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "themes.update", Script: script}, nil
}

// Display encodes navigation to a position target (CFI, href, or
// percentage, engine-defined).
func Display(target string) (Command, error) {
	script, err := call("", "display", JSON(target))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "display", Script: script}, nil
}

// Prev encodes a previous-page turn.
func Prev() (Command, error) {
	script, err := call("", "prev")
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "prev", Script: script}, nil
}

// Next encodes a next-page turn.
func Next() (Command, error) {
	script, err := call("", "next")
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "next", Script: script}, nil
}

// AddAnnotation encodes an annotation-add. A nil styles map falls back to
// DefaultMarkStyles. The callback is a caller-supplied function expression
// forwarded verbatim for the engine to invoke; empty means none.
func AddAnnotation(markType state.MarkType, cfiRange string, data map[string]any, callback, className string, styles map[string]string) (Command, error) {
	if styles == nil {
		styles = DefaultMarkStyles
	}
	cb := Raw("undefined")
	if callback != "" {
		cb = Raw(callback)
	}
	script, err := call("annotations", "add",
		JSON(markType), JSON(cfiRange), JSON(data), cb, JSON(className), JSON(styles))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "annotations.add", Script: script}, nil
}

// RemoveAnnotation encodes an annotation-remove.
func RemoveAnnotation(cfiRange string, markType state.MarkType) (Command, error) {
	script, err := call("annotations", "remove", JSON(cfiRange), JSON(markType))
	if err != nil {
		return Command{}, err
	}
	return Command{Name: "annotations.remove", Script: script}, nil
}

// Search encodes the full-text search script: every spine section is loaded
// on demand, searched with the trimmed query, unloaded, and the concatenated
// hits are posted back as an onSearch message carrying the correlation
// token. The host never waits on this; results arrive through the inbound
// message channel.
func Search(query, token string) (Command, error) {
	q, err := encodeJSON(query)
	if err != nil {
		return Command{}, err
	}
	t, err := encodeJSON(token)
	if err != nil {
		return Command{}, err
	}

	var b strings.Builder
	b.WriteString("(function() { ")
	b.WriteString("var query = " + q + ".trim(); ")
	b.WriteString("var token = " + t + "; ")
	b.WriteString("var found = []; ")
	b.WriteString("book.spine.spineItems.forEach(function(item) { ")
	b.WriteString("item.load(book.load.bind(book)); ")
	b.WriteString("found = found.concat(item.find(query)); ")
	b.WriteString("item.unload(); ")
	b.WriteString("}); ")
	b.WriteString(`postMessage(JSON.stringify({ type: "onSearch", token: token, results: found })); `)
	b.WriteString("})();")

	return Command{Name: "search", Script: b.String()}, nil
}
