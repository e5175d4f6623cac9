package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/seokkiyoon07-sys/omrsheet/internal/repository"
	"github.com/seokkiyoon07-sys/omrsheet/internal/service"
)

// TemplateHandler serves the starter layout templates and proxies
// diagnostic files from the engine.
type TemplateHandler struct {
	templates repository.TemplateRepo
	engine    service.Engine
}

func NewTemplateHandler(templates repository.TemplateRepo, engine service.Engine) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		engine:    engine,
	}
}

// List handles GET /api/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.templates.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// Get handles GET /api/templates/{filename}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	layout, err := h.templates.GetByName(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if layout == nil {
		writeError(w, http.StatusNotFound, "템플릿을 찾을 수 없습니다.")
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

// File handles GET /api/files/{path}
func (h *TemplateHandler) File(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]

	data, contentType, err := h.engine.FetchFile(r.Context(), path)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
