package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/seokkiyoon07-sys/omrsheet/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[REST] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// The engine's own message is surfaced verbatim when it provided one;
// anything unclassified gets a generic localized message instead of
// internals.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case service.ErrValidation:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": apiErr.Message, "kind": apiErr.Kind.String()})
		case service.ErrTimeout:
			writeJSON(w, http.StatusGatewayTimeout, map[string]string{"error": apiErr.Message, "kind": apiErr.Kind.String()})
		case service.ErrRequestFailed, service.ErrEmptyResponse, service.ErrNetwork:
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": apiErr.Message, "kind": apiErr.Kind.String()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": apiErr.Message, "kind": apiErr.Kind.String()})
		}
		return
	}

	log.Printf("[REST] unexpected error: %v", err)
	writeError(w, http.StatusInternalServerError, "요청을 처리하지 못했습니다. 잠시 후 다시 시도해주세요.")
}
