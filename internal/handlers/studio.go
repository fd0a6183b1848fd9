package handlers

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	applog "parfumerie/internal/log"
	"parfumerie/internal/repository"
	"parfumerie/internal/views/layout"
	"parfumerie/internal/views/pages"
	"parfumerie/internal/views/theme"
	"parfumerie/internal/workflow"
)

func init() {
	gob.Register(workflow.Draft{})
}

// Studio serves the HTML pages used at the counter. Drafts live in the
// session until they are submitted.
type Studio struct {
	sessions     *scs.SessionManager
	customers    CustomerStore
	compositions CompositionStore
	catalog      workflow.Catalog
	submitter    workflow.Submitter
	theme        theme.StudioTheme
}

type StudioConfig struct {
	Sessions     *scs.SessionManager
	Customers    CustomerStore
	Fragrances   FragranceStore
	Compositions CompositionStore
	Theme        string
}

func NewStudio(cfg StudioConfig) *Studio {
	return &Studio{
		sessions:     cfg.Sessions,
		customers:    cfg.Customers,
		compositions: cfg.Compositions,
		catalog:      StoreCatalog{Customers: cfg.Customers, Catalog: cfg.Fragrances},
		submitter:    StoreSubmitter{Compositions: cfg.Compositions},
		theme:        theme.Resolve(cfg.Theme),
	}
}

func (s *Studio) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/customers/{id}", s.customerPage)
	r.Route("/customers/{id}/compositions/new", func(r chi.Router) {
		r.Get("/", s.newComposition)
		r.Post("/lines", s.addLine)
		r.Post("/lines/{index}/delete", s.removeLine)
		r.Post("/submit", s.submit)
		r.Post("/dismiss", s.dismiss)
	})
	return r
}

func draftKey(customerID uint) string {
	return fmt.Sprintf("draft:%d", customerID)
}

func (s *Studio) customerPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	customer, err := s.customers.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load customer page", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	compositions, err := s.compositions.ListByCustomer(r.Context(), id)
	if err != nil {
		applog.Error(r.Context(), "failed to list compositions", "customer_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cards := make([]pages.CompositionCard, 0, len(compositions))
	for _, composition := range compositions {
		details, err := s.compositions.Details(r.Context(), composition.ID)
		if err != nil {
			applog.Error(r.Context(), "failed to load composition details", "id", composition.ID, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		card := pages.CompositionCard{
			ID:          composition.ID,
			Name:        composition.Name,
			TotalAmount: composition.TotalAmount,
			CreatedAt:   composition.CreatedAt,
		}
		for _, d := range details {
			card.Lines = append(card.Lines, pages.DetailLine{
				FragranceName: d.FragranceName,
				FragranceCode: d.FragranceCode,
				Amount:        d.Amount,
			})
		}
		cards = append(cards, card)
	}

	s.render(w, r, customer.FullName(), nil, pages.CustomerPage(customer, cards))
}

// newComposition resumes the customer's draft or starts a new one.
func (s *Studio) newComposition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	draft, found := s.loadDraft(r, id)
	if !found || draft.State == workflow.StateSubmitted || !draft.Loaded {
		draft = workflow.NewDraft(id)
		if err := draft.Load(r.Context(), s.catalog); err != nil {
			applog.Warn(r.Context(), "composition draft could not be loaded", "customer_id", id, "error", err)
		} else if existing, err := s.compositions.ListByCustomer(r.Context(), id); err == nil {
			draft.Name = pages.SuggestCompositionName(existing)
		}
		s.saveDraft(r, draft)
	}

	s.renderDraft(w, r, draft)
}

func (s *Studio) addLine(w http.ResponseWriter, r *http.Request) {
	s.withDraft(w, r, func(draft *workflow.Draft) {
		fragranceID, _ := strconv.ParseUint(strings.TrimSpace(r.PostFormValue("fragrance_id")), 10, 64)
		amount, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("amount")), 64)
		if err != nil {
			amount = 0
		}

		option, ok := draft.Option(uint(fragranceID))
		if !ok {
			draft.Message = workflow.ErrUnknownFragrance.Error()
			return
		}
		if err := draft.AddLine(option, amount); err != nil {
			draft.Message = err.Error()
		}
	})
}

func (s *Studio) removeLine(w http.ResponseWriter, r *http.Request) {
	s.withDraft(w, r, func(draft *workflow.Draft) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			index = -1
		}
		if err := draft.RemoveLine(index); err != nil {
			draft.Message = err.Error()
		}
	})
}

func (s *Studio) submit(w http.ResponseWriter, r *http.Request) {
	s.withDraft(w, r, func(draft *workflow.Draft) {
		if name, ok := r.PostForm["name"]; ok && len(name) > 0 {
			draft.Name = strings.TrimSpace(name[0])
		}
		if err := draft.Submit(r.Context(), s.submitter); err != nil {
			applog.Debug(r.Context(), "composition draft not submitted", "customer_id", draft.CustomerID, "error", err)
			return
		}
		applog.Info(r.Context(), "composition submitted from studio", "customer_id", draft.CustomerID, "id", draft.CreatedID)
	})
}

func (s *Studio) dismiss(w http.ResponseWriter, r *http.Request) {
	s.withDraft(w, r, func(draft *workflow.Draft) {
		draft.Dismiss()
	})
}

// withDraft loads the session draft, applies fn and stores the result before
// rendering the editor. Submitted drafts are dropped from the session.
func (s *Studio) withDraft(w http.ResponseWriter, r *http.Request, fn func(*workflow.Draft)) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	draft, found := s.loadDraft(r, id)
	if !found {
		applog.Debug(r.Context(), "no composition draft in session", "customer_id", id)
		http.Redirect(w, r, pages.DraftPath(id), http.StatusSeeOther)
		return
	}

	fn(draft)

	if draft.State == workflow.StateSubmitted {
		s.sessions.Remove(r.Context(), draftKey(id))
		triggerEvent(w, r, CompositionCreatedEvent)
	} else {
		s.saveDraft(r, draft)
	}
	s.renderDraft(w, r, draft)
}

func (s *Studio) loadDraft(r *http.Request, customerID uint) (*workflow.Draft, bool) {
	draft, ok := s.sessions.Get(r.Context(), draftKey(customerID)).(workflow.Draft)
	if !ok {
		return nil, false
	}
	return &draft, true
}

func (s *Studio) saveDraft(r *http.Request, draft *workflow.Draft) {
	s.sessions.Put(r.Context(), draftKey(draft.CustomerID), *draft)
}

func (s *Studio) renderDraft(w http.ResponseWriter, r *http.Request, draft *workflow.Draft) {
	title := "New composition"
	if draft.Customer.FullName != "" {
		title = "New composition for " + draft.Customer.FullName
	}
	s.render(w, r, title, pages.RedirectHead(draft), pages.CompositionEditor(draft))
}

// render writes the fragment for htmx requests and a full document otherwise.
func (s *Studio) render(w http.ResponseWriter, r *http.Request, title string, head, content templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	component := content
	if !isHTMX(r) {
		component = layout.Page(title, s.theme, head, content)
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render studio page", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// StoreCatalog feeds drafts straight from the repositories.
type StoreCatalog struct {
	Customers CustomerStore
	Catalog   FragranceStore
}

func (c StoreCatalog) Customer(ctx context.Context, id uint) (workflow.CustomerSummary, error) {
	customer, err := c.Customers.Get(ctx, id)
	if err != nil {
		return workflow.CustomerSummary{}, err
	}
	return workflow.CustomerSummary{ID: customer.ID, FullName: customer.FullName()}, nil
}

func (c StoreCatalog) Fragrances(ctx context.Context) ([]workflow.FragranceOption, error) {
	fragrances, err := c.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]workflow.FragranceOption, 0, len(fragrances))
	for _, f := range fragrances {
		options = append(options, workflow.FragranceOption{ID: f.ID, Name: f.Name, Code: f.Code})
	}
	return options, nil
}

// StoreSubmitter creates compositions through the composition repository.
type StoreSubmitter struct {
	Compositions CompositionStore
}

func (s StoreSubmitter) SubmitComposition(ctx context.Context, submission workflow.Submission) (uint, error) {
	input := repository.NewComposition{
		CustomerID:  submission.CustomerID,
		Name:        submission.Name,
		TotalAmount: submission.TotalAmount,
		Details:     make([]repository.NewDetail, 0, len(submission.Lines)),
	}
	for _, line := range submission.Lines {
		input.Details = append(input.Details, repository.NewDetail{FragranceID: line.FragranceID, Amount: line.Amount})
	}
	composition, err := s.Compositions.Create(ctx, input)
	if err != nil {
		return 0, err
	}
	return composition.ID, nil
}
