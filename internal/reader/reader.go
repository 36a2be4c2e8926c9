// Package reader is the public facade of the host/engine bridge.
//
// A Reader owns one state store and one bridge handle per mounted reader
// instance. UI collaborators call its operations; they never see the store
// or the handle. Mutators dispatch actions into the store, intent triggers
// additionally encode a command for the sandboxed rendering engine, and
// HandleMessage folds the engine's asynchronous results back in.
package reader

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foliohq/folio/internal/bridge"
	"github.com/foliohq/folio/internal/logging"
	"github.com/foliohq/folio/internal/monitoring"
	"github.com/foliohq/folio/internal/shared/id"
	"github.com/foliohq/folio/internal/state"
)

// Options configures a Reader. Zero values are usable: a random BookKey is
// generated, logging is discarded, metrics are disabled.
type Options struct {
	BookKey string
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
}

// Reader bridges host-side reader state and the sandboxed rendering engine.
type Reader struct {
	id      id.ReaderID
	store   *state.Store
	handle  *bridge.Handle
	log     *logging.Logger
	metrics *monitoring.Metrics

	searchMu    sync.Mutex
	searchToken id.SearchToken
}

// New creates a reader with mount-time defaults.
func New(opts Options) *Reader {
	if opts.BookKey == "" {
		opts.BookKey = uuid.New().String()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	rid := id.NewReaderID()
	log := &logging.Logger{Logger: opts.Logger.With(zap.String("reader_id", string(rid)))}

	return &Reader{
		id:      rid,
		store:   state.NewStore(opts.BookKey),
		handle:  bridge.NewHandle(log, opts.Metrics),
		log:     log,
		metrics: opts.Metrics,
	}
}

// ID returns the reader instance identifier.
func (r *Reader) ID() id.ReaderID { return r.id }

// AttachChannel registers the engine's command channel. Called when the
// sandbox becomes available, and again if it is remounted.
func (r *Reader) AttachChannel(ch bridge.Channel) {
	r.handle.Attach(ch)
}

// DetachChannel drops the engine reference. Command-sending operations
// degrade to no-ops until the next attach.
func (r *Reader) DetachChannel() {
	r.handle.Detach()
}

// EngineAttached reports whether a command channel is registered.
func (r *Reader) EngineAttached() bool {
	return r.handle.Attached()
}

// State returns a snapshot of the current reader state.
func (r *Reader) State() state.ReaderState {
	return r.store.Snapshot()
}

// GetLocations returns the full pagination map.
func (r *Reader) GetLocations() []string {
	return r.store.Snapshot().Locations
}

// GetCurrentLocation returns the engine-reported reading position, nil
// before the engine first reports pagination.
func (r *Reader) GetCurrentLocation() state.Location {
	return r.store.Snapshot().CurrentLocation
}

// Host-side mutators. These record engine-reported facts (position,
// pagination, progress) and UI flags; no command crosses the boundary.

func (r *Reader) SetAtStart(atStart bool) { r.store.Dispatch(state.SetAtStart{AtStart: atStart}) }
func (r *Reader) SetAtEnd(atEnd bool)     { r.store.Dispatch(state.SetAtEnd{AtEnd: atEnd}) }
func (r *Reader) SetBookKey(key string)   { r.store.Dispatch(state.SetBookKey{Key: key}) }

func (r *Reader) SetTotalLocations(total int) {
	r.store.Dispatch(state.SetTotalLocations{Total: total})
}

func (r *Reader) SetProgress(progress float64) {
	r.store.Dispatch(state.SetProgress{Progress: progress})
}

func (r *Reader) SetLocations(locs []string) { r.store.Dispatch(state.SetLocations{Locations: locs}) }
func (r *Reader) SetLoading(loading bool)    { r.store.Dispatch(state.SetLoading{Loading: loading}) }

// SetCurrentLocation records the position reported by the engine's
// location-change path.
func (r *Reader) SetCurrentLocation(loc state.Location) {
	r.store.Dispatch(state.SetCurrentLocation{Location: loc})
}
