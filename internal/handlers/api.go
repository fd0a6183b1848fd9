package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	applog "parfumerie/internal/log"
	"parfumerie/internal/repository"
	"parfumerie/models"
)

// CustomerStore is the customer persistence used by the API.
type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id uint) (models.Customer, error)
	Search(ctx context.Context, term string) ([]models.Customer, error)
	Create(ctx context.Context, fields repository.CustomerFields) (models.Customer, error)
	Update(ctx context.Context, id uint, fields repository.CustomerFields) (models.Customer, error)
	Delete(ctx context.Context, id uint) (bool, error)
	WithInvalidCompositions(ctx context.Context) ([]repository.CustomerCompositionCount, error)
}

type FragranceStore interface {
	List(ctx context.Context) ([]models.Fragrance, error)
	Get(ctx context.Context, id uint) (models.Fragrance, error)
	Search(ctx context.Context, term string) ([]models.Fragrance, error)
	Create(ctx context.Context, fields repository.FragranceFields) (models.Fragrance, error)
	Update(ctx context.Context, id uint, fields repository.FragranceFields) (models.Fragrance, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type CompositionStore interface {
	ListAll(ctx context.Context) ([]models.Composition, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Composition, error)
	Get(ctx context.Context, id uint) (models.Composition, error)
	Details(ctx context.Context, compositionID uint) ([]repository.DetailView, error)
	RawDetails(ctx context.Context, compositionID uint) ([]models.CompositionDetail, error)
	Create(ctx context.Context, input repository.NewComposition) (models.Composition, error)
	Update(ctx context.Context, id uint, update repository.CompositionUpdate) (models.Composition, error)
	Delete(ctx context.Context, id uint) (bool, error)
	AddDetail(ctx context.Context, compositionID uint, line repository.NewDetail) (models.CompositionDetail, error)
	UpdateDetail(ctx context.Context, detailID uint, amount float64) (models.CompositionDetail, error)
	DeleteDetail(ctx context.Context, detailID uint) (bool, error)
}

// API serves the JSON endpoints mounted under /api.
type API struct {
	customers    CustomerStore
	fragrances   FragranceStore
	compositions CompositionStore
}

func NewAPI(customers CustomerStore, fragrances FragranceStore, compositions CompositionStore) *API {
	return &API{
		customers:    customers,
		fragrances:   fragrances,
		compositions: compositions,
	}
}

// NewAPIFromSet wires the API to the gorm repositories.
func NewAPIFromSet(set repository.Set) *API {
	return NewAPI(set.Customers, set.Fragrances, set.Compositions)
}

// Routes returns the /api sub-router. Static segments such as
// /compositions/customer/{customerId} take precedence over /{id}.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", a.Welcome)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", a.listCustomers)
		r.Post("/", a.createCustomer)
		r.Get("/invalid-compositions", a.customersWithInvalidCompositions)
		r.Get("/search/{term}", a.searchCustomers)
		r.Get("/{id}", a.showCustomer)
		r.Put("/{id}", a.updateCustomer)
		r.Delete("/{id}", a.deleteCustomer)
	})

	r.Route("/fragrances", func(r chi.Router) {
		r.Get("/", a.listFragrances)
		r.Post("/", a.createFragrance)
		r.Get("/search/{term}", a.searchFragrances)
		r.Get("/{id}", a.showFragrance)
		r.Put("/{id}", a.updateFragrance)
		r.Delete("/{id}", a.deleteFragrance)
	})

	r.Route("/compositions", func(r chi.Router) {
		r.Get("/", a.listCompositions)
		r.Post("/", a.createComposition)
		r.Get("/customer/{customerId}", a.listCustomerCompositions)
		r.Put("/details/{detailId}", a.updateCompositionDetail)
		r.Delete("/details/{detailId}", a.deleteCompositionDetail)
		r.Get("/{id}", a.showComposition)
		r.Put("/{id}", a.updateComposition)
		r.Delete("/{id}", a.deleteComposition)
		r.Get("/{id}/details", a.listCompositionDetails)
		r.Post("/{id}/details", a.addCompositionDetail)
	})

	return r
}

// Welcome answers GET /api so clients can check they reached the service.
func (a *API) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to the parfumerie API"})
}

type messageResponse struct {
	Message string `json:"message"`
}

// pathID parses a positive numeric path parameter.
func pathID(r *http.Request, key string) (uint, bool) {
	raw := chi.URLParam(r, key)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		applog.Debug(r.Context(), "invalid path identifier", "param", key, "value", raw)
		return 0, false
	}
	return uint(value), true
}

func pathTerm(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if term, err := url.PathUnescape(raw); err == nil {
		return term
	}
	return raw
}
