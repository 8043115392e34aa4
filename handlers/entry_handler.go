package handlers

import (
	"net/http"

	"pubg-tournament-tracker/services"
)

// EntryHandler exposes the admin-side manual result channels.
type EntryHandler struct {
	entryService services.EntryService
}

func NewEntryHandler(entryService services.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

func (h *EntryHandler) SubmitMatchResults(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ManualMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	records, err := h.entryService.SubmitMatchResults(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"records": records}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntryHandler) SubmitDailyTotal(w http.ResponseWriter, r *http.Request) {
	var input services.DailyTotalInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.entryService.SubmitDailyTotal(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"record": record}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
