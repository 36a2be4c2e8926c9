// Package bridge owns the host's reference to the sandboxed rendering
// engine's command channel.
//
// The channel is one-directional and fire-and-forget: the host never learns
// whether a command executed. While no channel is attached every send
// degrades to a silent no-op; nothing is queued for later delivery.
package bridge

import (
	"sync"

	"go.uber.org/zap"

	"github.com/foliohq/folio/internal/command"
	"github.com/foliohq/folio/internal/logging"
	"github.com/foliohq/folio/internal/monitoring"
)

// Channel is the platform-supplied injectable-script channel into the
// engine's execution context.
type Channel interface {
	Inject(script string) error
}

// Phase is the handle's explicit lifecycle tag.
type Phase int

const (
	Detached Phase = iota
	Attached
)

func (p Phase) String() string {
	if p == Attached {
		return "attached"
	}
	return "detached"
}

// Handle holds the live channel reference. It is written at attach/detach
// time and read by every send.
type Handle struct {
	mu      sync.RWMutex
	phase   Phase
	channel Channel

	log     *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandle creates a detached handle. log and metrics may be nil.
func NewHandle(log *logging.Logger, metrics *monitoring.Metrics) *Handle {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handle{log: log, metrics: metrics}
}

// Attach registers the engine channel. Re-attaching after an engine remount
// replaces the previous channel.
func (h *Handle) Attach(ch Channel) {
	h.mu.Lock()
	h.phase = Attached
	h.channel = ch
	h.mu.Unlock()
	h.log.Debug("engine channel attached")
}

// Detach drops the channel reference. Subsequent sends are no-ops.
func (h *Handle) Detach() {
	h.mu.Lock()
	h.phase = Detached
	h.channel = nil
	h.mu.Unlock()
	h.log.Debug("engine channel detached")
}

// Phase returns the current lifecycle tag.
func (h *Handle) Phase() Phase {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.phase
}

// Attached reports whether a channel is registered.
func (h *Handle) Attached() bool {
	return h.Phase() == Attached
}

// Send injects one command. Detached handles drop the command silently;
// injection failures are logged and counted but never surfaced, since the
// boundary offers no synchronous failure signal anyway.
func (h *Handle) Send(cmd command.Command) {
	h.mu.RLock()
	phase, ch := h.phase, h.channel
	h.mu.RUnlock()

	if phase != Attached {
		h.log.Debug("command dropped, engine detached", zap.String("command", cmd.Name))
		if h.metrics != nil {
			h.metrics.CommandsDropped.WithLabelValues(cmd.Name).Inc()
		}
		return
	}

	if err := ch.Inject(cmd.Script); err != nil {
		h.log.Warn("command injection failed",
			zap.String("command", cmd.Name),
			zap.Error(err))
		if h.metrics != nil {
			h.metrics.InjectFailures.WithLabelValues(cmd.Name).Inc()
		}
		return
	}
	if h.metrics != nil {
		h.metrics.CommandsSent.WithLabelValues(cmd.Name).Inc()
	}
}
