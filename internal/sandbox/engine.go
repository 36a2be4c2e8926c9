// Package sandbox is an in-process stand-in for the sandboxed rendering
// engine: a goja VM exposing the engine's command vocabulary (themes,
// display/prev/next, annotations, book.spine search) and a postMessage
// global that forwards the engine's asynchronous results to the host.
//
// The demo host and the integration-style tests use it to close the command
// loop without a real webview. It implements bridge.Channel.
package sandbox

import (
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// Engine wraps a goja VM with the rendering-engine command surface.
type Engine struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	config Config

	// post receives every message the engine emits, as the raw JSON the
	// script passed to postMessage. Nil drops messages.
	post func([]byte)

	console   []LogEntry
	consoleMu sync.Mutex

	// Engine-side rendering state, mutated only by injected commands.
	sections    []*section
	current     int
	themes      map[string]any
	activeTheme string
	fontFamily  string
	fontSize    string
	annotations map[string]Annotation
}

// New creates an engine over the given document sections. post is invoked
// for every message a script emits via postMessage; it may be nil.
func New(cfg Config, sections []Section, post func([]byte)) (*Engine, error) {
	e := &Engine{
		vm:          goja.New(),
		config:      cfg,
		post:        post,
		themes:      map[string]any{},
		annotations: map[string]Annotation{},
	}

	for _, s := range sections {
		sec, err := newSection(s)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", s.Href, err)
		}
		e.sections = append(e.sections, sec)
	}

	if err := e.setupGlobals(); err != nil {
		return nil, err
	}
	return e, nil
}

// Inject runs one injected script. It implements bridge.Channel. Scripts run
// serially under the engine's own lock, mirroring the engine's cooperative
// single-threaded event loop.
func (e *Engine) Inject(script string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.vm == nil {
		return fmt.Errorf("engine closed")
	}

	timer := time.AfterFunc(e.config.Timeout, func() {
		e.vm.Interrupt("execution timeout exceeded")
	})

	_, err := e.vm.RunString(script)

	// Stop the timer before clearing, so a late interrupt cannot poison
	// the next injection.
	timer.Stop()
	e.vm.ClearInterrupt()

	if err != nil {
		return fmt.Errorf("inject: %w", err)
	}
	return nil
}

// Console returns the captured console output.
func (e *Engine) Console() []LogEntry {
	e.consoleMu.Lock()
	defer e.consoleMu.Unlock()
	return append([]LogEntry{}, e.console...)
}

// Annotations returns the engine-side marks keyed by position range.
func (e *Engine) Annotations() map[string]Annotation {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]Annotation, len(e.annotations))
	for k, v := range e.annotations {
		out[k] = v
	}
	return out
}

// ActiveTheme returns the engine-side active theme name.
func (e *Engine) ActiveTheme() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeTheme
}

// ThemeNames returns the names in the engine-side theme registry.
func (e *Engine) ThemeNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.themes))
	for name := range e.themes {
		names = append(names, name)
	}
	return names
}

// FontFamily returns the engine-side font family.
func (e *Engine) FontFamily() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fontFamily
}

// FontSize returns the engine-side font size.
func (e *Engine) FontSize() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fontSize
}

// CurrentSection returns the href of the displayed section, empty when the
// document has no sections.
func (e *Engine) CurrentSection() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.sections) == 0 {
		return ""
	}
	return e.sections[e.current].href
}

// Close releases the VM. Further injections fail.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm = nil
	return nil
}

// setupGlobals wires the command vocabulary into the VM. Host-dangerous
// globals stay absent; injected scripts only see the engine surface.
func (e *Engine) setupGlobals() error {
	vm := e.vm

	// Commands reference engine globals through window.*.
	if err := vm.Set("window", vm.GlobalObject()); err != nil {
		return err
	}

	if e.config.EnableConsole {
		console := vm.NewObject()
		for _, level := range []string{"log", "warn", "error", "info"} {
			if err := console.Set(level, e.makeConsoleFunc(level)); err != nil {
				return err
			}
		}
		if err := vm.Set("console", console); err != nil {
			return err
		}
	}

	if err := vm.Set("postMessage", func(call goja.FunctionCall) goja.Value {
		if e.post != nil && len(call.Arguments) > 0 {
			e.post([]byte(call.Arguments[0].String()))
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := e.setupRendition(); err != nil {
		return err
	}
	return e.setupBook()
}

func (e *Engine) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var msg string
		for i, arg := range call.Arguments {
			if i > 0 {
				msg += " "
			}
			msg += arg.String()
		}
		e.consoleMu.Lock()
		e.console = append(e.console, LogEntry{Level: level, Message: msg, Time: time.Now()})
		e.consoleMu.Unlock()
		return goja.Undefined()
	}
}
