package handler

import (
	"encoding/json"
	"net/http"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
	"github.com/seokkiyoon07-sys/omrsheet/internal/service"
)

// LayoutHandler handles layout save/load/export.
type LayoutHandler struct {
	layoutSvc *service.LayoutService
}

func NewLayoutHandler(layoutSvc *service.LayoutService) *LayoutHandler {
	return &LayoutHandler{layoutSvc: layoutSvc}
}

// SaveLayoutRequest is the request body for a layout save.
type SaveLayoutRequest struct {
	SessionID string        `json:"session_id"`
	FileName  string        `json:"file_name,omitempty"`
	Page      int           `json:"page,omitempty"`
	Layout    *model.Layout `json:"layout"`
}

// Save handles POST /api/layout
func (h *LayoutHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	if err := h.layoutSvc.Save(r.Context(), req.SessionID, req.Page, req.Layout, req.FileName); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Load handles GET /api/layout?session_id=&page=
func (h *LayoutHandler) Load(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	page := queryInt(r, "page", 1)

	layout, err := h.layoutSvc.Load(r.Context(), sessionID, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"layout": layout})
}

// Export handles GET /api/layout/export?session_id=&page=&file_name=
// and streams the layout as a downloadable JSON file.
func (h *LayoutHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	page := queryInt(r, "page", 1)
	fileName := r.URL.Query().Get("file_name")

	layout, err := h.layoutSvc.Load(r.Context(), sessionID, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	name, data, ok := h.layoutSvc.ExportFile(layout, fileName)
	if !ok {
		// Nothing to download for an empty layout.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
