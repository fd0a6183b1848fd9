package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"parfumerie/internal/workflow"
)

// EditorID is the element the htmx actions swap.
const EditorID = "composition-editor"

// DraftPath is the base path of the composition editor of a customer.
func DraftPath(customerID uint) string {
	return fmt.Sprintf("/studio/customers/%d/compositions/new", customerID)
}

// CustomerPath is the customer page the editor returns to.
func CustomerPath(customerID uint) string {
	return fmt.Sprintf("/studio/customers/%d", customerID)
}

// RedirectHead sends the browser back to the customer page once a draft was
// stored.
func RedirectHead(d *workflow.Draft) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if d.State != workflow.StateSubmitted {
			return nil
		}
		h := &htmlWriter{w: w}
		h.printf("<meta http-equiv=\"refresh\" content=\"%s;url=%s\">",
			strconv.FormatFloat(workflow.RedirectDelay.Seconds(), 'f', -1, 64),
			CustomerPath(d.CustomerID),
		)
		return h.err
	})
}

// CompositionEditor renders the draft in its current state. htmx requests
// receive this fragment only.
func CompositionEditor(d *workflow.Draft) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		base := DraftPath(d.CustomerID)

		h.printf("<section id=\"%s\" class=\"studio-panel\" data-state=\"%s\">", EditorID, string(d.State))
		if d.Customer.FullName != "" {
			h.printf("<h1>New composition for %s</h1>", d.Customer.FullName)
		}

		switch d.State {
		case workflow.StateLoading:
			h.raw("<p class=\"studio-muted\">Loading&hellip;</p>")
		case workflow.StateSubmitted:
			h.printf("<p class=\"studio-accent\" role=\"status\">Composition #%d saved.</p>", d.CreatedID)
			h.printf("<div hx-get=\"%s\" hx-trigger=\"load delay:%dms\" hx-target=\"body\" hx-push-url=\"true\"></div>",
				CustomerPath(d.CustomerID), workflow.RedirectDelay.Milliseconds())
		case workflow.StateError:
			h.printf("<p class=\"studio-warning\" role=\"alert\">%s</p>", d.Message)
			if d.Loaded {
				h.printf("<form method=\"post\" action=\"%s/dismiss\" hx-post=\"%s/dismiss\" hx-target=\"#%s\" hx-swap=\"outerHTML\">"+
					"<button type=\"submit\">Back to editing</button></form>", base, base, EditorID)
			}
		}

		if d.Loaded && d.State != workflow.StateSubmitted {
			renderLines(h, d, base)
			if d.State == workflow.StateEditing {
				renderForms(h, d, base)
			}
		}

		h.raw("</section>")
		return h.err
	})
}

func renderLines(h *htmlWriter, d *workflow.Draft, base string) {
	h.raw("<table><thead><tr><th>Fragrance</th><th>Amount</th><th></th></tr></thead><tbody>")
	for i, line := range d.Lines {
		h.printf("<tr><td>%s</td><td>%s</td><td>", line.FragranceName, FormatVolume(line.Amount))
		if d.State == workflow.StateEditing {
			h.printf("<form method=\"post\" action=\"%s/lines/%d/delete\" hx-post=\"%s/lines/%d/delete\" hx-target=\"#%s\" hx-swap=\"outerHTML\">"+
				"<button type=\"submit\">Remove</button></form>", base, i, base, i, EditorID)
		}
		h.raw("</td></tr>")
	}
	h.printf("</tbody><tfoot><tr><th>Total</th><th data-total=\"%s\">%s</th><th>%s</th></tr></tfoot></table>",
		strconv.FormatFloat(d.Total(), 'f', -1, 64), FormatVolume(d.Total()), VolumeStatus(d.Total()))
}

func renderForms(h *htmlWriter, d *workflow.Draft, base string) {
	if d.Message != "" {
		h.printf("<p class=\"studio-warning\" role=\"alert\">%s</p>", d.Message)
	}

	h.printf("<form method=\"post\" action=\"%s/lines\" hx-post=\"%s/lines\" hx-target=\"#%s\" hx-swap=\"outerHTML\">", base, base, EditorID)
	h.raw("<select name=\"fragrance_id\" required><option value=\"\">Choose a fragrance</option>")
	for _, option := range d.Options {
		h.printf("<option value=\"%d\">%s</option>", option.ID, option.Label())
	}
	h.raw("</select><input type=\"number\" name=\"amount\" min=\"0.1\" step=\"0.1\" required>" +
		"<button type=\"submit\">Add</button></form>")

	h.printf("<form method=\"post\" action=\"%s/submit\" hx-post=\"%s/submit\" hx-target=\"#%s\" hx-swap=\"outerHTML\">", base, base, EditorID)
	h.printf("<input type=\"text\" name=\"name\" value=\"%s\" placeholder=\"Name\">", d.Name)
	h.printf("<button type=\"submit\" data-ready=\"%t\">Save composition</button></form>", d.Ready())
}
