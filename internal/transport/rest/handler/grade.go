package handler

import (
	"encoding/json"
	"net/http"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
	"github.com/seokkiyoon07-sys/omrsheet/internal/service"
)

// GradeHandler handles grading submission and the name-correction
// follow-up.
type GradeHandler struct {
	gradeSvc *service.GradeService
}

func NewGradeHandler(gradeSvc *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// GradeRequestBody is the grading submission from the editor page. The
// answer key arrives as raw JSON text and is validated before anything
// reaches the engine.
type GradeRequestBody struct {
	SessionID  string          `json:"session_id"`
	FileName   string          `json:"file_name"`
	AnswerName string          `json:"answer_name"`
	Threshold  *float64        `json:"T,omitempty"`
	Tie        *float64        `json:"tie,omitempty"`
	AnswerKey  json.RawMessage `json:"answer_key"`
	Page       int             `json:"page,omitempty"`
	Layout     *model.Layout   `json:"layout"`
}

// Grade handles POST /api/grade
func (h *GradeHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	resp, err := h.gradeSvc.StartGrading(r.Context(), service.GradeInput{
		SessionID:     req.SessionID,
		FileName:      req.FileName,
		AnswerName:    req.AnswerName,
		Threshold:     req.Threshold,
		Tie:           req.Tie,
		AnswerKeyText: answerKeyText(req.AnswerKey),
		Page:          req.Page,
		Layout:        req.Layout,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// answerKeyText unwraps a JSON-string-encoded answer key; anything else
// is passed through as raw text for validation downstream.
func answerKeyText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

// CorrectNamesRequest is the name-correction follow-up body.
type CorrectNamesRequest struct {
	SessionID   string                 `json:"session_id"`
	Corrections []model.NameCorrection `json:"corrections"`
}

// CorrectNames handles POST /api/grade/correct-names
func (h *GradeHandler) CorrectNames(w http.ResponseWriter, r *http.Request) {
	var req CorrectNamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	updated, err := h.gradeSvc.SubmitNameCorrections(r.Context(), req.SessionID, req.Corrections)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated_count": updated})
}

// History handles GET /api/grade/history?session_id=
func (h *GradeHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "세션 정보가 없습니다.")
		return
	}

	records, err := h.gradeSvc.History(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}
