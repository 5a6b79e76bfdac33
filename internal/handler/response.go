package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"contact-manager/internal/model"
	"contact-manager/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError is the single trust boundary for errors: typed APIErrors map to
// their status and message, everything else becomes an opaque 500 and the
// underlying error goes to the log only.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.HTTPStatus, model.ErrorResponse{
			Message: apiErr.Message,
			Errors:  apiErr.Fields,
		})
		return
	}

	slog.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: "server error"})
}
