package handlers

import (
	"errors"
	"net/http"
	"time"

	applog "parfumerie/internal/log"
	"parfumerie/internal/repository"
	"parfumerie/models"
)

type customerResponse struct {
	ID         uint      `json:"customer_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type invalidCustomerResponse struct {
	customerResponse
	InvalidCompositionCount int64 `json:"invalid_composition_count"`
}

func projectCustomer(c models.Customer) customerResponse {
	return customerResponse{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		FullName:   c.FullName(),
		Email:      c.Email,
		Phone:      c.Phone,
		Street:     c.Street,
		PostalCode: c.PostalCode,
		City:       c.City,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func projectCustomers(customers []models.Customer) []customerResponse {
	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, projectCustomer(c))
	}
	return out
}

func (a *API) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := a.customers.List(r.Context())
	if err != nil {
		storeFailure(w, r, err, "failed to list customers")
		return
	}
	writeJSON(w, http.StatusOK, projectCustomers(customers))
}

func (a *API) customersWithInvalidCompositions(w http.ResponseWriter, r *http.Request) {
	rows, err := a.customers.WithInvalidCompositions(r.Context())
	if err != nil {
		storeFailure(w, r, err, "failed to list customers with invalid compositions")
		return
	}
	out := make([]invalidCustomerResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, invalidCustomerResponse{
			customerResponse:        projectCustomer(row.Customer),
			InvalidCompositionCount: row.InvalidCompositionCount,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) searchCustomers(w http.ResponseWriter, r *http.Request) {
	term := pathTerm(r, "term")
	customers, err := a.customers.Search(r.Context(), term)
	if err != nil {
		storeFailure(w, r, err, "failed to search customers", "term", term)
		return
	}
	writeJSON(w, http.StatusOK, projectCustomers(customers))
}

func (a *API) showCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "customer not found")
		return
	}
	customer, err := a.customers.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFoundJSON(w, r, "customer not found", "id", id)
			return
		}
		storeFailure(w, r, err, "failed to load customer", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, projectCustomer(customer))
}

func (a *API) createCustomer(w http.ResponseWriter, r *http.Request) {
	var payload customerRequest
	if !decodeRequest(w, r, &payload) {
		return
	}
	customer, err := a.customers.Create(r.Context(), payload.fields())
	if err != nil {
		storeFailure(w, r, err, "failed to create customer")
		return
	}
	applog.Info(r.Context(), "customer created", "id", customer.ID)
	writeJSON(w, http.StatusCreated, projectCustomer(customer))
}

func (a *API) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "customer not found")
		return
	}
	var payload customerRequest
	if !decodeRequest(w, r, &payload) {
		return
	}
	customer, err := a.customers.Update(r.Context(), id, payload.fields())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFoundJSON(w, r, "customer not found", "id", id)
			return
		}
		storeFailure(w, r, err, "failed to update customer", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, projectCustomer(customer))
}

func (a *API) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "customer not found")
		return
	}
	deleted, err := a.customers.Delete(r.Context(), id)
	if err != nil {
		storeFailure(w, r, err, "failed to delete customer", "id", id)
		return
	}
	if !deleted {
		notFoundJSON(w, r, "customer not found", "id", id)
		return
	}
	applog.Info(r.Context(), "customer deleted", "id", id)
	writeJSON(w, http.StatusOK, messageResponse{Message: "customer deleted"})
}
