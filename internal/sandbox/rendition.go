package sandbox

import (
	"github.com/dop251/goja"
)

// The binding functions below run only from Inject, which already holds
// e.mu; they touch engine state directly and must not re-lock.

func (e *Engine) setupRendition() error {
	vm := e.vm

	themes := vm.NewObject()
	if err := themes.Set("register", func(call goja.FunctionCall) goja.Value {
		switch len(call.Arguments) {
		case 1:
			// Whole-table registration.
			if table, ok := call.Arguments[0].Export().(map[string]any); ok {
				e.themes = table
			}
		case 2:
			name := call.Arguments[0].String()
			e.themes[name] = call.Arguments[1].Export()
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := themes.Set("select", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			e.activeTheme = call.Arguments[0].String()
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := themes.Set("font", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			e.fontFamily = call.Arguments[0].String()
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := themes.Set("fontSize", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			e.fontSize = call.Arguments[0].String()
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := themes.Set("update", func(call goja.FunctionCall) goja.Value {
		// Re-application without state change; nothing to record here.
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := vm.Set("themes", themes); err != nil {
		return err
	}

	if err := vm.Set("display", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Undefined()
		}
		target := call.Arguments[0].String()
		for i, sec := range e.sections {
			if sec.href == target {
				e.current = i
				break
			}
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := vm.Set("prev", func(call goja.FunctionCall) goja.Value {
		if e.current > 0 {
			e.current--
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}
	if err := vm.Set("next", func(call goja.FunctionCall) goja.Value {
		if e.current < len(e.sections)-1 {
			e.current++
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}

	return e.setupAnnotations()
}

func (e *Engine) setupAnnotations() error {
	vm := e.vm
	annotations := vm.NewObject()

	// add(type, range, data, callback, className, styles). The callback is
	// invoked once the mark is applied, with the annotation data.
	if err := annotations.Set("add", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		ann := Annotation{
			Type:     call.Arguments[0].String(),
			CFIRange: call.Arguments[1].String(),
		}
		if len(call.Arguments) > 2 {
			if data, ok := call.Arguments[2].Export().(map[string]any); ok {
				ann.Data = data
			}
		}
		if len(call.Arguments) > 4 {
			if cn := call.Arguments[4]; !goja.IsUndefined(cn) && !goja.IsNull(cn) {
				ann.ClassName = cn.String()
			}
		}
		if len(call.Arguments) > 5 {
			if styles, ok := call.Arguments[5].Export().(map[string]any); ok {
				ann.Styles = make(map[string]string, len(styles))
				for k, v := range styles {
					if s, ok := v.(string); ok {
						ann.Styles[k] = s
					}
				}
			}
		}
		e.annotations[ann.CFIRange] = ann

		if len(call.Arguments) > 3 {
			if cb, ok := goja.AssertFunction(call.Arguments[3]); ok {
				cb(goja.Undefined(), vm.ToValue(ann.Data)) //nolint:errcheck // engine callbacks are fire-and-forget
			}
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}

	// remove(range, type)
	if err := annotations.Set("remove", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Undefined()
		}
		delete(e.annotations, call.Arguments[0].String())
		return goja.Undefined()
	}); err != nil {
		return err
	}

	return vm.Set("annotations", annotations)
}
