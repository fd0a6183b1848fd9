package handlers

import "net/http"

// CompositionCreatedEvent is raised through HX-Trigger once a studio draft was
// stored, so other panels on the page can refresh.
const CompositionCreatedEvent = "composition-created"

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true"
}

func triggerEvent(w http.ResponseWriter, r *http.Request, event string) {
	if isHTMX(r) {
		w.Header().Set("HX-Trigger", event)
	}
}
