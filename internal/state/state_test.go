package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownAction struct{}

func (unknownAction) isAction() {}

func TestNewReaderStateDefaults(t *testing.T) {
	s := NewReaderState("book-1")

	assert.Equal(t, "book-1", s.BookKey)
	assert.Equal(t, "default", s.ActiveTheme)
	require.Contains(t, s.Themes, "default")
	assert.Equal(t, DefaultFontSize, s.FontSize)
	assert.False(t, s.IsLoading, "a freshly mounted reader is not loading")
	assert.Empty(t, s.Locations)
	assert.Nil(t, s.CurrentLocation)
	assert.Nil(t, s.SearchResults)
}

func TestRegisterThemeLastWriteWins(t *testing.T) {
	s := NewReaderState("k")

	first := Theme{"body": {"color": "red"}}
	second := Theme{"body": {"color": "blue"}}

	s = Reduce(s, RegisterTheme{Name: "dark", Theme: first})
	s = Reduce(s, RegisterTheme{Name: "sepia", Theme: Theme{"body": {"color": "tan"}}})
	s = Reduce(s, RegisterTheme{Name: "dark", Theme: second})

	// Union of registered names plus the default, each mapped to its most
	// recent value.
	require.Len(t, s.Themes, 3)
	assert.Equal(t, second, s.Themes["dark"])
	assert.Contains(t, s.Themes, "sepia")
	assert.Contains(t, s.Themes, "default")
}

func TestRegisterThemeDoesNotMutatePrevious(t *testing.T) {
	before := NewReaderState("k")
	after := Reduce(before, RegisterTheme{Name: "dark", Theme: Theme{}})

	assert.NotContains(t, before.Themes, "dark")
	assert.Contains(t, after.Themes, "dark")
}

func TestSetThemesDoesNotAliasCallerMap(t *testing.T) {
	table := map[string]Theme{"dark": {"body": {"color": "white"}}}
	s := Reduce(NewReaderState("k"), SetThemes{Themes: table})

	table["injected"] = Theme{}
	delete(table, "dark")

	assert.NotContains(t, s.Themes, "injected")
	assert.Contains(t, s.Themes, "dark")
}

func TestSelectThemeIsNotValidated(t *testing.T) {
	s := NewReaderState("k")
	s = Reduce(s, SelectTheme{Name: "never-registered"})

	assert.Equal(t, "never-registered", s.ActiveTheme)
}

func TestUnknownActionIsIdentity(t *testing.T) {
	s := NewReaderState("k")
	s = Reduce(s, RegisterTheme{Name: "dark", Theme: Theme{"body": {"color": "white"}}})
	s = Reduce(s, SetProgress{Progress: 0.5})

	got := Reduce(s, unknownAction{})

	assert.Equal(t, s, got)
}

func TestSetSearchResultsReplacesWholesale(t *testing.T) {
	s := NewReaderState("k")

	s = Reduce(s, SetSearchResults{Results: []SearchResult{
		{CFI: "a", Excerpt: "first"},
		{CFI: "b", Excerpt: "second"},
	}})
	s = Reduce(s, SetSearchResults{Results: []SearchResult{
		{CFI: "c", Excerpt: "third"},
	}})

	require.Len(t, s.SearchResults, 1)
	assert.Equal(t, "c", s.SearchResults[0].CFI)
}

func TestThemeRegistrationScenario(t *testing.T) {
	s := NewReaderState("k")
	dark := Theme{"body": {"background": "#000"}}

	s = Reduce(s, RegisterTheme{Name: "dark", Theme: dark})
	s = Reduce(s, SelectTheme{Name: "dark"})

	require.Len(t, s.Themes, 2)
	assert.Equal(t, dark, s.Themes["dark"])
	assert.Contains(t, s.Themes, "default")
	assert.Equal(t, "dark", s.ActiveTheme)
}

func TestNavigationFieldsAreIndependent(t *testing.T) {
	s := NewReaderState("k")
	loc := Location{"cfi": "epubcfi(/6/4!/4/2)"}

	s = Reduce(s, SetTotalLocations{Total: 120})
	s = Reduce(s, SetCurrentLocation{Location: loc})
	s = Reduce(s, SetProgress{Progress: 0.25})

	assert.Equal(t, 120, s.TotalLocations)
	assert.Equal(t, loc, s.CurrentLocation)
	assert.Equal(t, 0.25, s.Progress)
	// No cross-effects on anything else.
	assert.Equal(t, "default", s.ActiveTheme)
	assert.False(t, s.IsLoading)
}

func TestSingleFieldTransitions(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		check  func(t *testing.T, s ReaderState)
	}{
		{"font size", SetFontSize{Size: "16pt"}, func(t *testing.T, s ReaderState) {
			assert.Equal(t, "16pt", s.FontSize)
		}},
		{"font family", SetFontFamily{Family: "Georgia"}, func(t *testing.T, s ReaderState) {
			assert.Equal(t, "Georgia", s.FontFamily)
		}},
		{"at start", SetAtStart{AtStart: true}, func(t *testing.T, s ReaderState) {
			assert.True(t, s.AtStart)
		}},
		{"at end", SetAtEnd{AtEnd: true}, func(t *testing.T, s ReaderState) {
			assert.True(t, s.AtEnd)
		}},
		{"book key", SetBookKey{Key: "other"}, func(t *testing.T, s ReaderState) {
			assert.Equal(t, "other", s.BookKey)
		}},
		{"locations", SetLocations{Locations: []string{"a", "b"}}, func(t *testing.T, s ReaderState) {
			assert.Equal(t, []string{"a", "b"}, s.Locations)
		}},
		{"loading", SetLoading{Loading: true}, func(t *testing.T, s ReaderState) {
			assert.True(t, s.IsLoading)
		}},
		{"themes table", SetThemes{Themes: map[string]Theme{"only": {}}}, func(t *testing.T, s ReaderState) {
			assert.Equal(t, map[string]Theme{"only": {}}, s.Themes)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(NewReaderState("k"), tt.action)
			tt.check(t, s)
		})
	}
}

func TestStoreDispatchAndSnapshot(t *testing.T) {
	st := NewStore("book-2")
	st.Dispatch(SetProgress{Progress: 0.75})

	snap := st.Snapshot()
	assert.Equal(t, "book-2", snap.BookKey)
	assert.Equal(t, 0.75, snap.Progress)

	// Snapshots are copies of the value; later dispatches don't rewrite
	// what a caller already holds.
	st.Dispatch(SetProgress{Progress: 1})
	assert.Equal(t, 0.75, snap.Progress)
}
