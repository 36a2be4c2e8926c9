// Package command assembles the textual commands the host injects into the
// sandboxed rendering engine.
//
// Every data argument is serialized through a single encoding function
// (encodeJSON) rather than interpolated, so document text, theme names, and
// search queries cannot break out of the intended command syntax. The one
// exception is an annotation callback, which is caller-supplied code by
// definition and is spliced in verbatim.
package command

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Command is one encoded script ready for injection. Name identifies the
// intent for logging and metrics; Script is the executable text.
type Command struct {
	Name   string
	Script string
}

// Arg is a single command argument: either a value serialized as JSON or a
// verbatim code fragment.
type Arg struct {
	value any
	code  string
	raw   bool
}

// JSON wraps a value to be serialized through the shared encoder.
func JSON(v any) Arg { return Arg{value: v} }

// Raw wraps a code fragment that is spliced into the command as-is. Only the
// annotation callback uses this.
func Raw(code string) Arg { return Arg{code: code, raw: true} }

// encodeJSON is the single serialization point for all data arguments.
// ConfigStd sorts map keys, keeping encoded commands deterministic.
func encodeJSON(v any) (string, error) {
	out, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode argument: %w", err)
	}
	return string(out), nil
}

// call renders target.method(a1, a2, ...).
func call(target, method string, args ...Arg) (string, error) {
	rendered := make([]string, len(args))
	for i, a := range args {
		if a.raw {
			rendered[i] = a.code
			continue
		}
		enc, err := encodeJSON(a.value)
		if err != nil {
			return "", err
		}
		rendered[i] = enc
	}

	var b strings.Builder
	if target != "" {
		b.WriteString(target)
		b.WriteByte('.')
	}
	b.WriteString(method)
	b.WriteByte('(')
	b.WriteString(strings.Join(rendered, ", "))
	b.WriteString(");")
	return b.String(), nil
}

// assign renders a global assignment, e.g. window.THEMES = {...};
func assign(global string, v any) (string, error) {
	enc, err := encodeJSON(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("window.%s = %s;", global, enc), nil
}
