package reader

import (
	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/foliohq/folio/internal/state"
)

// Message is the single structured message shape the engine posts back.
// Only "onSearch" is consumed; anything else is ignored.
type Message struct {
	Type    string               `json:"type"`
	Token   string               `json:"token,omitempty"`
	Results []state.SearchResult `json:"results,omitempty"`
}

const msgSearch = "onSearch"

// HandleMessage is the inbound entry point for the engine's asynchronous
// results. It is invoked by the transport whenever the engine posts a
// message; delivery order relative to the commands that triggered them is
// not guaranteed.
func (r *Reader) HandleMessage(data []byte) {
	var msg Message
	if err := sonic.Unmarshal(data, &msg); err != nil {
		r.log.Debug("unparseable engine message ignored", zap.Error(err))
		r.countMessage("invalid", "ignored")
		return
	}
	r.dispatchMessage(msg)
}

func (r *Reader) dispatchMessage(msg Message) {
	switch msg.Type {
	case msgSearch:
		r.onSearch(msg)
	default:
		r.log.Debug("unrecognized engine message ignored", zap.String("type", msg.Type))
		r.countMessage(msg.Type, "ignored")
	}
}

// onSearch replaces the search results wholesale. A message carrying a
// correlation token from a superseded Search call is dropped; token-less
// messages are accepted last-write-wins, matching engines that do not echo
// the token.
func (r *Reader) onSearch(msg Message) {
	if msg.Token != "" {
		r.searchMu.Lock()
		current := r.searchToken
		r.searchMu.Unlock()

		if msg.Token != string(current) {
			r.log.Debug("stale search result dropped",
				zap.String("token", msg.Token),
				zap.String("current", string(current)))
			if r.metrics != nil {
				r.metrics.StaleSearches.Inc()
			}
			r.countMessage(msgSearch, "stale")
			return
		}
	}

	results := msg.Results
	if results == nil {
		results = []state.SearchResult{}
	}
	r.store.Dispatch(state.SetSearchResults{Results: results})
	r.countMessage(msgSearch, "applied")
}

func (r *Reader) countMessage(msgType, disposition string) {
	if r.metrics != nil {
		r.metrics.MessagesTotal.WithLabelValues(msgType, disposition).Inc()
	}
}
