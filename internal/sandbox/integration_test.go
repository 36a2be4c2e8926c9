package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/reader"
	"github.com/foliohq/folio/internal/state"
)

// Closes the full loop: facade → command encoder → bridge → engine →
// postMessage → inbound handler → state store.
func TestReaderEngineRoundTrip(t *testing.T) {
	r := reader.New(reader.Options{BookKey: "moby-dick"})

	e, err := New(DefaultConfig(), testSections, func(data []byte) {
		r.HandleMessage(data)
	})
	require.NoError(t, err)
	r.AttachChannel(e)

	r.RegisterTheme("dark", state.Theme{"body": {"background": "#000"}})
	r.SelectTheme("dark")
	assert.Equal(t, "dark", e.ActiveTheme())
	assert.Equal(t, "dark", r.State().ActiveTheme)

	r.ChangeFontSize("18pt")
	assert.Equal(t, "18pt", e.FontSize())

	r.GoNext()
	assert.Equal(t, "chapter-2.xhtml", e.CurrentSection())

	r.Search("Ishmael")
	results := r.State().SearchResults
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Excerpt, "Ishmael")

	// A search with no hits replaces the previous results wholesale.
	r.Search("kraken")
	assert.Empty(t, r.State().SearchResults)

	// Detach: commands stop reaching the engine, local state still moves.
	r.DetachChannel()
	r.SelectTheme("default")
	assert.Equal(t, "dark", e.ActiveTheme())
	assert.Equal(t, "default", r.State().ActiveTheme)
}
