package sandbox

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
)

const excerptRadius = 40 // runes kept on each side of a hit

// section is one spine item: XHTML content plus its extracted plain text.
// Text is only searchable while loaded, matching the engine's load → find →
// unload discipline.
type section struct {
	href   string
	text   string
	loaded bool
}

func newSection(s Section) (*section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.Content))
	if err != nil {
		return nil, err
	}
	return &section{
		href: s.Href,
		text: normalizeSpace(doc.Text()),
	}, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// find returns every case-insensitive occurrence of query with a surrounding
// excerpt. Unloaded sections yield nothing.
//
// Matching runs over rune-by-rune lowered copies: lowering a whole string
// can change its byte length (U+023A is two bytes, its lowercase three), so
// byte offsets into a lowered string must never index the original.
func (s *section) find(query string) []map[string]any {
	results := []map[string]any{}
	if !s.loaded || query == "" {
		return results
	}

	runes := []rune(s.text)
	lowText := lowerRunes(runes)
	lowNeedle := lowerRunes([]rune(query))

	for at := 0; at+len(lowNeedle) <= len(lowText); {
		if !runesHavePrefix(lowText[at:], lowNeedle) {
			at++
			continue
		}

		from := at - excerptRadius
		if from < 0 {
			from = 0
		}
		to := at + len(lowNeedle) + excerptRadius
		if to > len(runes) {
			to = len(runes)
		}

		results = append(results, map[string]any{
			"cfi":     fmt.Sprintf("epubcfi(%s!/4/2/1:%d)", s.href, at),
			"excerpt": string(runes[from:to]),
		})
		at += len(lowNeedle)
	}
	return results
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesHavePrefix(rs, prefix []rune) bool {
	for i, r := range prefix {
		if rs[i] != r {
			return false
		}
	}
	return true
}

// setupBook exposes book.spine.spineItems with the load/find/unload
// surface the search script drives. Runs at construction; the item
// callbacks run only from Inject under e.mu.
func (e *Engine) setupBook() error {
	vm := e.vm

	items := make([]any, len(e.sections))
	for i, sec := range e.sections {
		sec := sec
		item := vm.NewObject()
		if err := item.Set("href", sec.href); err != nil {
			return err
		}
		if err := item.Set("load", func(call goja.FunctionCall) goja.Value {
			sec.loaded = true
			return goja.Undefined()
		}); err != nil {
			return err
		}
		if err := item.Set("unload", func(call goja.FunctionCall) goja.Value {
			sec.loaded = false
			return goja.Undefined()
		}); err != nil {
			return err
		}
		if err := item.Set("find", func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue([]map[string]any{})
			}
			return vm.ToValue(sec.find(call.Arguments[0].String()))
		}); err != nil {
			return err
		}
		items[i] = item
	}

	spine := vm.NewObject()
	if err := spine.Set("spineItems", vm.NewArray(items...)); err != nil {
		return err
	}

	book := vm.NewObject()
	if err := book.Set("spine", spine); err != nil {
		return err
	}
	// The search script passes book.load.bind(book) to item.load; the
	// stand-in resolves content at construction, so load is a no-op hook.
	if err := book.Set("load", func(call goja.FunctionCall) goja.Value {
		return goja.Undefined()
	}); err != nil {
		return err
	}

	return vm.Set("book", book)
}
