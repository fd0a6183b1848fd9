package handlers

import (
	"errors"
	"net/http"

	applog "parfumerie/internal/log"
	"parfumerie/internal/repository"
)

func (a *API) listFragrances(w http.ResponseWriter, r *http.Request) {
	fragrances, err := a.fragrances.List(r.Context())
	if err != nil {
		storeFailure(w, r, err, "failed to list fragrances")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(fragrances))
}

func (a *API) searchFragrances(w http.ResponseWriter, r *http.Request) {
	term := pathTerm(r, "term")
	fragrances, err := a.fragrances.Search(r.Context(), term)
	if err != nil {
		storeFailure(w, r, err, "failed to search fragrances", "term", term)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(fragrances))
}

func (a *API) showFragrance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "fragrance not found")
		return
	}
	fragrance, err := a.fragrances.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFoundJSON(w, r, "fragrance not found", "id", id)
			return
		}
		storeFailure(w, r, err, "failed to load fragrance", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, fragrance)
}

func (a *API) createFragrance(w http.ResponseWriter, r *http.Request) {
	var payload fragranceRequest
	if !decodeRequest(w, r, &payload) {
		return
	}
	fragrance, err := a.fragrances.Create(r.Context(), payload.fields())
	if err != nil {
		storeFailure(w, r, err, "failed to create fragrance")
		return
	}
	applog.Info(r.Context(), "fragrance created", "id", fragrance.ID, "code", fragrance.Code)
	writeJSON(w, http.StatusCreated, fragrance)
}

func (a *API) updateFragrance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "fragrance not found")
		return
	}
	var payload fragranceRequest
	if !decodeRequest(w, r, &payload) {
		return
	}
	fragrance, err := a.fragrances.Update(r.Context(), id, payload.fields())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFoundJSON(w, r, "fragrance not found", "id", id)
			return
		}
		storeFailure(w, r, err, "failed to update fragrance", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, fragrance)
}

func (a *API) deleteFragrance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		notFoundJSON(w, r, "fragrance not found")
		return
	}
	deleted, err := a.fragrances.Delete(r.Context(), id)
	if err != nil {
		storeFailure(w, r, err, "failed to delete fragrance", "id", id)
		return
	}
	if !deleted {
		notFoundJSON(w, r, "fragrance not found", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "fragrance deleted"})
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
