package handler

import (
	"encoding/json"
	"net/http"

	"github.com/seokkiyoon07-sys/omrsheet/internal/editor"
	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

// EditorHandler applies block-editing operations to a layout snapshot.
// The browser holds the live layout; each edit round-trips it so the
// state machine and all its renumbering rules live server-side in one
// place.
type EditorHandler struct{}

func NewEditorHandler() *EditorHandler {
	return &EditorHandler{}
}

// EditRequest is one editing operation against a layout snapshot.
type EditRequest struct {
	Layout   *model.Layout      `json:"layout"`
	Selected *int               `json:"selected,omitempty"`
	Action   string             `json:"action"`
	Index    int                `json:"index,omitempty"`
	To       int                `json:"to,omitempty"`
	Patch    *editor.BlockPatch `json:"patch,omitempty"`
}

// EditResponse carries the resulting layout, selection and whether the
// operation applied or was skipped.
type EditResponse struct {
	Layout   *model.Layout `json:"layout"`
	Selected int           `json:"selected"`
	Result   string        `json:"result"`
}

// Apply handles POST /api/editor/apply
func (h *EditorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "요청 형식이 올바르지 않습니다.")
		return
	}

	ed := editor.New(req.Layout)
	if req.Selected != nil {
		ed.SetSelected(*req.Selected)
	}

	var result editor.Result
	switch req.Action {
	case "add":
		result = ed.AddBlock()
	case "update":
		if req.Patch == nil {
			writeError(w, http.StatusBadRequest, "수정할 내용이 없습니다.")
			return
		}
		result = ed.UpdateBlock(req.Index, *req.Patch)
	case "remove":
		result = ed.RemoveBlock(req.Index)
	case "duplicate":
		result = ed.DuplicateBlock(req.Index)
	case "move":
		result = ed.MoveBlock(req.Index, req.To)
	case "select":
		ed.SetSelected(req.Index)
		result = editor.Applied
	default:
		writeError(w, http.StatusBadRequest, "지원하지 않는 동작입니다: "+req.Action)
		return
	}

	writeJSON(w, http.StatusOK, EditResponse{
		Layout:   ed.Layout(),
		Selected: ed.Selected(),
		Result:   result.String(),
	})
}
