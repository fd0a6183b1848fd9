package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"parfumerie/internal/views/theme"
)

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// Page renders a full HTML document around content. head is optional and is
// written at the end of the document head.
func Page(title string, th theme.StudioTheme, head, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>%s</title>"+
				"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">"+
				"<script src=\"%s\"></script>",
			templ.EscapeString(title), htmxScript,
		); err != nil {
			return err
		}
		if head != nil {
			if err := head.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "</head><body class=\"%s\"><div class=\"%s\">",
			templ.EscapeString(th.BodyClass), templ.EscapeString(th.ShellClass)); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div></body></html>")
		return err
	})
}
