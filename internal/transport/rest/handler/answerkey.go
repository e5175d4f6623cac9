package handler

import (
	"encoding/json"
	"net/http"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
	"github.com/seokkiyoon07-sys/omrsheet/internal/service"
)

// AnswerKeyHandler handles answer-key lookup, search and registration.
type AnswerKeyHandler struct {
	answerKeySvc *service.AnswerKeyService
}

func NewAnswerKeyHandler(answerKeySvc *service.AnswerKeyService) *AnswerKeyHandler {
	return &AnswerKeyHandler{answerKeySvc: answerKeySvc}
}

// FetchRequest looks up an answer key by exam metadata.
type FetchRequest struct {
	Metadata map[string]string `json:"metadata"`
}

// Fetch handles POST /api/exams/answer-keys/fetch
func (h *AnswerKeyHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	key, err := h.answerKeySvc.Fetch(r.Context(), req.Metadata)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if key == nil {
		writeError(w, http.StatusNotFound, "등록된 정답을 찾을 수 없습니다.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": key.Questions})
}

// ListRequest searches answer keys.
type ListRequest struct {
	SubjectCode string `json:"subjectCode,omitempty"`
	SearchQuery string `json:"searchQuery,omitempty"`
}

// List handles POST /api/exams/answer-keys/list
func (h *AnswerKeyHandler) List(w http.ResponseWriter, r *http.Request) {
	var req ListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	keys, err := h.answerKeySvc.List(r.Context(), req.SubjectCode, req.SearchQuery)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": keys})
}

// Create handles POST /api/exams/answer-keys
func (h *AnswerKeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var key model.AnswerKey
	if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	if err := h.answerKeySvc.Create(r.Context(), &key); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, key)
}
