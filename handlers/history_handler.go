package handlers

import (
	"net/http"

	"pubg-tournament-tracker/services"
)

type HistoryHandler struct {
	historyService services.HistoryService
}

func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.historyService.ListHistory(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"history": entries}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HistoryHandler) GetHistoryByID(w http.ResponseWriter, r *http.Request) {
	historyID, err := getIDFromURL(r, "historyID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.historyService.GetHistoryByID(r.Context(), historyID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"entry": entry}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
