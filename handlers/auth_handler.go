package handlers

import (
	"net/http"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Redeem exchanges an entry code for a bearer token.
func (h *AuthHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code string `json:"code"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	token, claims, err := h.authService.Redeem(r.Context(), input.Code)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"token":   token,
		"role":    claims.Role,
		"team_id": claims.TeamID,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MintCode issues a new entry code. The plaintext is returned exactly once;
// only its hash is stored.
func (h *AuthHandler) MintCode(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Role   models.AccessRole `json:"role"`
		TeamID *int              `json:"team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	code, entry, err := h.authService.MintCode(r.Context(), input.Role, input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"code":        code,
		"access_code": entry,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
