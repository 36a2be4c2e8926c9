package state

// Action is the closed vocabulary of state transitions. Each variant
// replaces exactly one ReaderState field; RegisterTheme merges one entry
// into the theme table. Tags outside this set are ignored by Reduce.
type Action interface {
	isAction()
}

// RegisterTheme merges a single named theme into the theme table.
// Re-registering a name overwrites its previous value.
type RegisterTheme struct {
	Name  string
	Theme Theme
}

// SetThemes replaces the entire theme table.
type SetThemes struct {
	Themes map[string]Theme
}

// SelectTheme records the active theme name. The name is not validated
// against the theme table; see the facade for the forwarding semantics.
type SelectTheme struct {
	Name string
}

// SetFontSize records the current font size.
type SetFontSize struct {
	Size string
}

// SetFontFamily records the current font family.
type SetFontFamily struct {
	Family string
}

// SetAtStart records whether the reader is at the first page.
type SetAtStart struct {
	AtStart bool
}

// SetAtEnd records whether the reader is at the last page.
type SetAtEnd struct {
	AtEnd bool
}

// SetBookKey records the opaque identifier of the loaded document.
type SetBookKey struct {
	Key string
}

// SetTotalLocations records the engine-reported pagination count.
type SetTotalLocations struct {
	Total int
}

// SetCurrentLocation records the engine-reported reading position.
type SetCurrentLocation struct {
	Location Location
}

// SetProgress records the reading progress fraction. Expected range is
// [0,1]; not enforced.
type SetProgress struct {
	Progress float64
}

// SetLocations replaces the full pagination map.
type SetLocations struct {
	Locations []string
}

// SetLoading records the loading flag.
type SetLoading struct {
	Loading bool
}

// SetSearchResults replaces the search result list wholesale.
type SetSearchResults struct {
	Results []SearchResult
}

func (RegisterTheme) isAction()      {}
func (SetThemes) isAction()          {}
func (SelectTheme) isAction()        {}
func (SetFontSize) isAction()        {}
func (SetFontFamily) isAction()      {}
func (SetAtStart) isAction()         {}
func (SetAtEnd) isAction()           {}
func (SetBookKey) isAction()         {}
func (SetTotalLocations) isAction()  {}
func (SetCurrentLocation) isAction() {}
func (SetProgress) isAction()        {}
func (SetLocations) isAction()       {}
func (SetLoading) isAction()         {}
func (SetSearchResults) isAction()   {}
