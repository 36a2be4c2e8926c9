package reader

import (
	"go.uber.org/zap"

	"github.com/foliohq/folio/internal/command"
	"github.com/foliohq/folio/internal/shared/id"
	"github.com/foliohq/folio/internal/state"
)

// send encodes and fires one command. Encoding failures are logged and
// counted but never surfaced; the boundary offers no failure signal, so the
// whole command path is best-effort.
func (r *Reader) send(cmd command.Command, err error) {
	if err != nil {
		r.log.Warn("command encoding failed", zap.Error(err))
		if r.metrics != nil {
			r.metrics.EncodeFailures.Inc()
		}
		return
	}
	r.handle.Send(cmd)
}

// RegisterTheme registers one named theme with the engine and merges it into
// the local theme table. Re-registering a name overwrites it.
func (r *Reader) RegisterTheme(name string, theme state.Theme) {
	r.send(command.RegisterTheme(name, theme))
	r.store.Dispatch(state.RegisterTheme{Name: name, Theme: theme})
}

// RegisterThemes replaces the engine's entire theme table and the local one.
func (r *Reader) RegisterThemes(themes map[string]state.Theme) {
	r.send(command.RegisterThemes(themes))
	r.store.Dispatch(state.SetThemes{Themes: themes})
}

// SelectTheme makes name the active theme on both sides. The name is not
// validated against the theme table; selecting an unregistered theme is
// forwarded and the engine's behavior is undefined.
func (r *Reader) SelectTheme(name string) {
	r.send(command.SelectTheme(name))
	r.store.Dispatch(state.SelectTheme{Name: name})
}

// ChangeFontFamily updates the engine font and the local record.
func (r *Reader) ChangeFontFamily(family string) {
	r.send(command.Font(family))
	r.store.Dispatch(state.SetFontFamily{Family: family})
}

// ChangeFontSize updates the engine font size and the local record.
func (r *Reader) ChangeFontSize(size string) {
	r.send(command.FontSize(size))
	r.store.Dispatch(state.SetFontSize{Size: size})
}

// UpdateTheme forces the engine to re-apply a theme. Local state is
// unchanged on purpose: the recorded active theme stays as-is.
func (r *Reader) UpdateTheme(name string) {
	r.send(command.UpdateTheme(name))
}

// GoToLocation navigates the engine to a position target. No local state
// changes here; the resulting location arrives later through the engine's
// own location-change reporting.
func (r *Reader) GoToLocation(target string) {
	r.send(command.Display(target))
}

// GoPrevious turns to the previous page.
func (r *Reader) GoPrevious() {
	r.send(command.Prev())
}

// GoNext turns to the next page.
func (r *Reader) GoNext() {
	r.send(command.Next())
}

// AddMark adds an annotation over the given position range. A nil styles map
// falls back to the default highlight fill. callback, when non-empty, is a
// JS function expression the engine invokes on its own schedule. Engine-side
// effect only.
func (r *Reader) AddMark(markType state.MarkType, cfiRange string, data map[string]any, callback, className string, styles map[string]string) {
	r.send(command.AddAnnotation(markType, cfiRange, data, callback, className, styles))
}

// RemoveMark removes an annotation. Engine-side effect only.
func (r *Reader) RemoveMark(cfiRange string, markType state.MarkType) {
	r.send(command.RemoveAnnotation(cfiRange, markType))
}

// Search issues a full-text search across every section of the loaded
// document. The call returns immediately; results arrive later as an
// onSearch message. Each call supersedes the previous one: a result carrying
// an older correlation token is dropped on receipt.
func (r *Reader) Search(query string) {
	token := id.NewSearchToken()

	r.searchMu.Lock()
	r.searchToken = token
	r.searchMu.Unlock()

	if r.metrics != nil {
		r.metrics.SearchesIssued.Inc()
	}
	r.send(command.Search(query, string(token)))
}
