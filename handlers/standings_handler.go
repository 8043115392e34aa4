package handlers

import (
	"fmt"
	"net/http"

	"pubg-tournament-tracker/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	refresher        *services.StandingsRefresher
}

func NewStandingsHandler(standingsService services.StandingsService, refresher *services.StandingsRefresher) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
		refresher:        refresher,
	}
}

func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.GetStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"standings": standings}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetMVP(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	mvp, err := h.standingsService.GetMVP(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"mvp": mvp}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetTopDamage(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	top, err := h.standingsService.GetTopDamage(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"top_damage": top}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportCSV streams the current standings as a CSV download.
func (h *StandingsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	fileName, data, err := h.standingsService.ExportCSV(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetDashboard serves the periodically refreshed snapshot. It falls back to a
// live computation when the cache has not caught up with a new tournament.
func (h *StandingsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if snap, ok := h.refresher.Snapshot(tournamentID); ok {
		response := jsonResponse{"dashboard": snap}
		if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	standings, err := h.standingsService.GetStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	mvp, err := h.standingsService.GetMVP(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"dashboard": jsonResponse{
		"tournament_id": tournamentID,
		"standings":     standings,
		"mvp":           mvp,
	}}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
