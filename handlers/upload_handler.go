package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pubg-tournament-tracker/middleware"
	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/services"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// SubmitScreenshots accepts a multipart batch of result screenshots under the
// "screenshots" field, with "day" and "match_number" form values. Player
// tokens are locked to their own team; admins pass any team in the URL.
func (h *UploadHandler) SubmitScreenshots(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	if claims.Role == models.RolePlayer && (claims.TeamID == nil || *claims.TeamID != teamID) {
		forbiddenResponse(w, r, "players may only upload results for their own team")
		return
	}

	// 4 screenshots at ~10MB each fit comfortably.
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	day, err := formInt(r, "day")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchNumber, err := formInt(r, "match_number")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["screenshots"]) == 0 {
		badRequestResponse(w, r, errors.New("at least one file is required under the screenshots field"))
		return
	}

	fileHeaders := r.MultipartForm.File["screenshots"]
	uploads := make([]services.ScreenshotUpload, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err))
			return
		}
		defer file.Close()

		uploads = append(uploads, services.ScreenshotUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		})
	}

	result, err := h.uploadService.SubmitScreenshots(r.Context(), teamID, day, matchNumber, uploads)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	response := jsonResponse{"result": result}
	if err := writeJSON(w, status, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func formInt(r *http.Request, field string) (int, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, fmt.Errorf("form field %s is required", field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s form field: %q", field, raw)
	}
	return v, nil
}
