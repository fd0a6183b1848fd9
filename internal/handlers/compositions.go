package handlers

import (
	"errors"
	"net/http"

	applog "parfumerie/internal/log"
	"parfumerie/internal/repository"
	"parfumerie/models"
)

// compositionResponse is a composition with its details joined to the
// fragrance catalog.
type compositionResponse struct {
	models.Composition
	Details []repository.DetailView `json:"details"`
}

type createdCompositionResponse struct {
	models.Composition
	Details []models.CompositionDetail `json:"details"`
}

func (a *API) listCompositions(w http.ResponseWriter, r *http.Request) {
	compositions, err := a.compositions.ListAll(r.Context())
	if err != nil {
		storeFailure(w, r, err, "failed to list compositions")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(compositions))
}

func (a *API) listCustomerCompositions(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r, "customerId")
	if !ok {
		notFoundJSON(w, r, "customer not found")
		return
	}
	compositions, err := a.compositions.ListByCustomer(r.Context(), customerID)
	if err != nil {
		storeFailure(w, r, err, "failed to list customer compositions", "customer_id", customerID)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(compositions))
}

func (a *API) showComposition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "composition not found")
		return
	}
	composition, err := a.compositions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFoundJSON(w, r, "composition not found", "id", id)
			return
		}
		storeFailure(w, r, err, "failed to load composition", "id", id)
		return
	}
	details, err := a.compositions.Details(r.Context(), id)
	if err != nil {
		storeFailure(w, r, err, "failed to load composition details", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, compositionResponse{Composition: composition, Details: nonNil(details)})
}

func (a *API) listCompositionDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "composition not found")
		return
	}
	details, err := a.compositions.RawDetails(r.Context(), id)
	if err != nil {
		storeFailure(w, r, err, "failed to list composition details", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(details))
}

func (a *API) createComposition(w http.ResponseWriter, r *http.Request) {
	var payload compositionCreateRequest
	if !decodeRequest(w, r, &payload) {
		return
	}
	composition, err := a.compositions.Create(r.Context(), payload.input())
	if err != nil {
		if errors.Is(err, repository.ErrInvalidTotal) {
			applog.Debug(r.Context(), "composition rejected", "customer_id", payload.CustomerID, "total", payload.TotalAmount)
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		storeFailure(w, r, err, "failed to create composition", "customer_id", payload.CustomerID)
		return
	}
	applog.Info(r.Context(), "composition created",
		"id", composition.ID,
		"customer_id", composition.CustomerID,
		"details", len(composition.Details),
	)
	writeJSON(w, http.StatusCreated, createdCompositionResponse{
		Composition: composition,
		Details:     nonNil(composition.Details),
	})
}

func (a *API) updateComposition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "composition not found")
		return
	}
	var payload compositionUpdateRequest
	if !decodeRequest(w, r, &payload) {
		return
	}
	composition, err := a.compositions.Update(r.Context(), id, repository.CompositionUpdate{
		Name:        payload.Name,
		TotalAmount: payload.TotalAmount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFoundJSON(w, r, "composition not found", "id", id)
			return
		}
		storeFailure(w, r, err, "failed to update composition", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, composition)
}

func (a *API) deleteComposition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "composition not found")
		return
	}
	deleted, err := a.compositions.Delete(r.Context(), id)
	if err != nil {
		storeFailure(w, r, err, "failed to delete composition", "id", id)
		return
	}
	if !deleted {
		notFoundJSON(w, r, "composition not found", "id", id)
		return
	}
	applog.Info(r.Context(), "composition deleted", "id", id)
	writeJSON(w, http.StatusOK, messageResponse{Message: "composition deleted"})
}

func (a *API) addCompositionDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "composition not found")
		return
	}
	var payload compositionLineRequest
	if !decodeRequest(w, r, &payload) {
		return
	}
	detail, err := a.compositions.AddDetail(r.Context(), id, repository.NewDetail{
		FragranceID: payload.FragranceID,
		Amount:      payload.Amount,
	})
	if err != nil {
		storeFailure(w, r, err, "failed to add composition detail", "id", id, "fragrance_id", payload.FragranceID)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

func (a *API) updateCompositionDetail(w http.ResponseWriter, r *http.Request) {
	detailID, ok := pathID(r, "detailId")
	if !ok {
		notFoundJSON(w, r, "composition detail not found")
		return
	}
	var payload detailAmountRequest
	if !decodeRequest(w, r, &payload) {
		return
	}
	detail, err := a.compositions.UpdateDetail(r.Context(), detailID, payload.Amount)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFoundJSON(w, r, "composition detail not found", "detail_id", detailID)
			return
		}
		storeFailure(w, r, err, "failed to update composition detail", "detail_id", detailID)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (a *API) deleteCompositionDetail(w http.ResponseWriter, r *http.Request) {
	detailID, ok := pathID(r, "detailId")
	if !ok {
		notFoundJSON(w, r, "composition detail not found")
		return
	}
	deleted, err := a.compositions.DeleteDetail(r.Context(), detailID)
	if err != nil {
		storeFailure(w, r, err, "failed to delete composition detail", "detail_id", detailID)
		return
	}
	if !deleted {
		notFoundJSON(w, r, "composition detail not found", "detail_id", detailID)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "composition detail deleted"})
}
