package pages

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"parfumerie/models"
)

// DetailLine is one fragrance of a stored composition as the customer page
// shows it.
type DetailLine struct {
	FragranceName string
	FragranceCode int
	Amount        float64
}

type CompositionCard struct {
	ID          uint
	Name        string
	TotalAmount float64
	CreatedAt   time.Time
	Lines       []DetailLine
}

// Volume sums the stored detail lines.
func (c CompositionCard) Volume() float64 {
	var sum float64
	for _, line := range c.Lines {
		sum += line.Amount
	}
	return sum
}

// CustomerPage lists the customer's contact data and compositions.
func CustomerPage(customer models.Customer, cards []CompositionCard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.printf("<section class=\"studio-panel\" id=\"customer\"><header><h1>%s</h1>", customer.FullName())
		h.printf("<span class=\"studio-badge\">%s</span></header>", customer.Initials())
		h.printf("<dl><dt>Email</dt><dd>%s</dd><dt>Phone</dt><dd>%s</dd><dt>Address</dt><dd>%s, %s %s</dd></dl>",
			DefaultDash(customer.Email),
			DefaultDash(customer.Phone),
			DefaultDash(customer.Street),
			customer.PostalCode,
			DefaultDash(customer.City),
		)
		h.printf("<a class=\"studio-accent\" href=\"/studio/customers/%d/compositions/new\">New composition</a></section>", customer.ID)

		h.raw("<section class=\"studio-panel\" id=\"compositions\"><h2>Compositions</h2>")
		if len(cards) == 0 {
			h.raw("<p class=\"studio-muted\">No compositions yet.</p>")
		}
		for _, card := range cards {
			h.printf("<article data-composition-id=\"%d\"><h3>%s</h3>", card.ID, DefaultDash(card.Name))
			h.printf("<p class=\"studio-muted\">%s &middot; %s</p>", FormatVolume(card.Volume()), card.CreatedAt.Format("02 Jan 2006"))
			if !models.ValidTotal(card.Volume()) {
				h.raw("<p class=\"studio-warning\">Volume does not match a bottle size.</p>")
			}
			h.raw("<ul>")
			for _, line := range card.Lines {
				h.printf("<li>%s (%d): %s</li>", line.FragranceName, line.FragranceCode, FormatVolume(line.Amount))
			}
			h.raw("</ul></article>")
		}
		h.raw("</section>")
		return h.err
	})
}
