package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliohq/folio/internal/sandbox"
)

// sampleSections is the built-in document behind /demo/search. Short
// public-domain excerpts, enough to produce hits across sections.
var sampleSections = []sandbox.Section{
	{
		Href: "chapter-1.xhtml",
		Content: `<html><body>
<h1>Chapter 1</h1>
<p>My father had a small estate in Nottinghamshire: I was the third of five
sons. He sent me to Emanuel College in Cambridge at fourteen years old.</p>
</body></html>`,
	},
	{
		Href: "chapter-2.xhtml",
		Content: `<html><body>
<h1>Chapter 2</h1>
<p>When I left Mr. Bates, I went down to my father: where, by the assistance
of him and my uncle John, I got forty pounds, and a promise of thirty pounds
a year to maintain me at Leyden.</p>
</body></html>`,
	},
}

// setupDemo wires an embedded engine to its own reader and exposes a
// search round trip over HTTP. The engine runs injected scripts
// synchronously, so the results are folded into the store before Search
// returns.
func (s *Server) setupDemo() error {
	r := s.newReader()

	engine, err := sandbox.New(sandbox.Config{
		Timeout:       s.config.Sandbox.Timeout,
		EnableConsole: s.config.Sandbox.EnableConsole,
	}, sampleSections, r.HandleMessage)
	if err != nil {
		return err
	}
	r.AttachChannel(engine)
	if s.presets != nil {
		r.RegisterThemes(s.presets)
	}

	s.router.GET("/demo/search", func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
			return
		}
		r.Search(q)
		c.JSON(http.StatusOK, gin.H{"results": r.State().SearchResults})
	})
	return nil
}
