package state

// Reduce applies a single action to the state and returns the next state.
//
// Transitions are pure, total, and synchronous: no validation, no failure
// path, no cross-field derived logic. Callers keep dependent fields (for
// example Progress vs CurrentLocation) consistent themselves. An action
// outside the closed vocabulary returns the state unchanged, which keeps the
// vocabulary forward-extensible.
func Reduce(s ReaderState, a Action) ReaderState {
	switch a := a.(type) {
	case RegisterTheme:
		themes := cloneThemeTable(s.Themes)
		themes[a.Name] = a.Theme
		s.Themes = themes
	case SetThemes:
		s.Themes = cloneThemeTable(a.Themes)
	case SelectTheme:
		s.ActiveTheme = a.Name
	case SetFontSize:
		s.FontSize = a.Size
	case SetFontFamily:
		s.FontFamily = a.Family
	case SetAtStart:
		s.AtStart = a.AtStart
	case SetAtEnd:
		s.AtEnd = a.AtEnd
	case SetBookKey:
		s.BookKey = a.Key
	case SetTotalLocations:
		s.TotalLocations = a.Total
	case SetCurrentLocation:
		s.CurrentLocation = a.Location
	case SetProgress:
		s.Progress = a.Progress
	case SetLocations:
		s.Locations = a.Locations
	case SetLoading:
		s.IsLoading = a.Loading
	case SetSearchResults:
		s.SearchResults = a.Results
	}
	return s
}
