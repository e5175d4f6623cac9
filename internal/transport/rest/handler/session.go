package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/seokkiyoon07-sys/omrsheet/internal/service"
)

// SessionHandler handles upload, preview and page navigation.
type SessionHandler struct {
	sessionSvc *service.SessionService
	engine     service.Engine
}

func NewSessionHandler(sessionSvc *service.SessionService, engine service.Engine) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
		engine:     engine,
	}
}

const maxUploadBytes = 64 << 20

// Upload handles POST /api/upload
func (h *SessionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "업로드 파일을 읽지 못했습니다.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "업로드할 파일이 없습니다.")
		return
	}
	defer file.Close()

	templatePath := r.FormValue("template_path")
	userID := r.FormValue("user_id")

	session, layout, err := h.sessionSvc.HandleFileUpload(r.Context(), header.Filename, file, templatePath, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":    session.SessionID,
		"filename":      session.FileName,
		"num_pages":     session.TotalPages,
		"layout":        layout,
		"template_name": session.TemplateName,
	})
}

// Preview handles GET /api/preview?session_id=&page=
func (h *SessionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "세션 정보가 없습니다.")
		return
	}
	page := queryInt(r, "page", 1)

	data, contentType, err := h.engine.Preview(r.Context(), sessionID, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if contentType == "" {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Get handles GET /api/session?session_id=
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	session, err := h.sessionSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !session.Active() {
		writeError(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// NavigateRequest is the request body for page navigation.
type NavigateRequest struct {
	SessionID string `json:"session_id"`
	Page      int    `json:"page"`
}

// Navigate handles POST /api/session/navigate
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	session, layout, ok, err := h.sessionSvc.NavigateToPage(r.Context(), req.SessionID, req.Page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]interface{}{"ok": ok}
	if session != nil {
		resp["session"] = session
	}
	if ok {
		resp["layout"] = layout
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetRequest is the request body for a session reset.
type ResetRequest struct {
	SessionID string `json:"session_id"`
}

// Reset handles POST /api/session/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	session, err := h.sessionSvc.Reset(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && n > 0 {
		return n
	}
	return defaultVal
}
