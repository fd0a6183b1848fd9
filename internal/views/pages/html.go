package pages

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so components can render without
// checking every fragment.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// printf formats with every string argument HTML-escaped.
func (h *htmlWriter) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}
