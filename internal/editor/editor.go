// Package editor implements the block-list editing state machine for one
// page layout: block CRUD, drag reordering, selection bookkeeping and the
// position-derived renumbering that runs after every structural edit.
package editor

import (
	"strconv"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

// Result tags the outcome of an edit. Out-of-range indices and invalid
// gestures skip rather than error: mid-gesture the UI routinely holds
// transient indices that no longer exist.
type Result int

const (
	Skipped Result = iota
	Applied
)

func (r Result) String() string {
	if r == Applied {
		return "applied"
	}
	return "skipped"
}

// NoSelection marks the selection cursor as cleared.
const NoSelection = -1

// defaultQuad is the starting geometry for a freshly added block.
var defaultQuad = []model.Point{{100, 100}, {500, 100}, {500, 400}, {100, 400}}

// Editor owns a layout's block list while it is being edited. It is the
// single writer; callers get copies out, never live references in.
type Editor struct {
	layout     *model.Layout
	selected   int
	dragSource int
	dropTarget int
}

// New builds an editor over a snapshot of the given layout.
func New(layout *model.Layout) *Editor {
	if layout == nil {
		layout = model.DefaultLayout()
	}
	return &Editor{
		layout:     layout.Clone(),
		selected:   NoSelection,
		dragSource: NoSelection,
		dropTarget: NoSelection,
	}
}

// Layout returns a deep copy of the current layout.
func (e *Editor) Layout() *model.Layout {
	return e.layout.Clone()
}

// Blocks returns a deep copy of the current block list.
func (e *Editor) Blocks() []model.Block {
	return e.Layout().Blocks
}

// Selected returns the selection cursor, NoSelection if cleared.
func (e *Editor) Selected() int {
	return e.selected
}

// SetSelected moves the selection cursor; out-of-range clears it.
func (e *Editor) SetSelected(index int) {
	if index < 0 || index >= len(e.layout.Blocks) {
		e.selected = NoSelection
		return
	}
	e.selected = index
}

func (e *Editor) inRange(index int) bool {
	return index >= 0 && index < len(e.layout.Blocks)
}

// BlockPatch is a partial block update. Nil fields are left untouched.
type BlockPatch struct {
	Type           *model.BlockType `json:"type,omitempty"`
	Label          *string          `json:"label,omitempty"`
	Quad           []model.Point    `json:"quad,omitempty"`
	Rows           *int             `json:"rows,omitempty"`
	Cols           *int             `json:"cols,omitempty"`
	Choices        []string         `json:"choices,omitempty"`
	QuestionPrefix *string          `json:"questionPrefix,omitempty"`
	QuestionStart  *int             `json:"questionStart,omitempty"`
	QuestionCount  *int             `json:"questionCount,omitempty"`
}

// UpdateBlock merges a patch into the block at index. A type change resets
// rows/cols to the type's canonical preset, discarding customized counts,
// and drops the old choice set so the new type derives its own. The whole
// list is renumbered afterwards.
func (e *Editor) UpdateBlock(index int, patch BlockPatch) Result {
	if !e.inRange(index) {
		return Skipped
	}

	b := e.layout.Blocks[index]

	if patch.Type != nil && *patch.Type != b.Type {
		b.Type = *patch.Type
		if preset, ok := model.BlockPresets[b.Type]; ok {
			b.Rows = preset.Rows
			b.Cols = preset.Cols
		}
		b.Name = string(b.Type) + strconv.Itoa(index+1)
		b.Choices = nil
	}
	if patch.Label != nil {
		b.Label = *patch.Label
	}
	if patch.Quad != nil {
		b.Quad = make([]model.Point, len(patch.Quad))
		copy(b.Quad, patch.Quad)
	}
	if patch.Rows != nil {
		b.Rows = *patch.Rows
	}
	if patch.Cols != nil {
		b.Cols = *patch.Cols
	}
	if patch.Choices != nil {
		b.Choices = make([]string, len(patch.Choices))
		copy(b.Choices, patch.Choices)
	}
	if patch.QuestionPrefix != nil {
		b.QuestionPrefix = *patch.QuestionPrefix
	}
	if patch.QuestionStart != nil {
		b.QuestionStart = *patch.QuestionStart
	}
	if patch.QuestionCount != nil {
		b.QuestionCount = *patch.QuestionCount
	}

	e.layout.Blocks[index] = model.Normalize(b)
	model.Renumber(e.layout.Blocks)
	return Applied
}

// RemoveBlock deletes the block at index and renumbers the survivors.
// Selection follows the list: the removed block clears it, anything after
// shifts down by one.
func (e *Editor) RemoveBlock(index int) Result {
	if !e.inRange(index) {
		return Skipped
	}

	e.layout.Blocks = append(e.layout.Blocks[:index], e.layout.Blocks[index+1:]...)
	model.Renumber(e.layout.Blocks)

	switch {
	case e.selected == index:
		e.selected = NoSelection
	case e.selected > index:
		e.selected--
	}
	return Applied
}

// DuplicateBlock clones the block at index and inserts the clone right
// after it. The clone's quad and choices never alias the original's.
// Selection moves to the clone.
func (e *Editor) DuplicateBlock(index int) Result {
	if !e.inRange(index) {
		return Skipped
	}

	clone := e.layout.Blocks[index].Clone()
	clone.Name += " (copy)"
	clone = model.Normalize(clone)

	blocks := e.layout.Blocks
	blocks = append(blocks[:index+1], append([]model.Block{clone}, blocks[index+1:]...)...)
	e.layout.Blocks = blocks
	model.Renumber(e.layout.Blocks)

	e.selected = index + 1
	return Applied
}

// AddBlock appends a fresh 5x5 grid block. The new block is named for its
// position by construction, so no renumber pass is needed. Selection moves
// to it.
func (e *Editor) AddBlock() Result {
	quad := make([]model.Point, len(defaultQuad))
	copy(quad, defaultQuad)

	b := model.Normalize(model.Block{
		Type: model.BlockTypeGrid,
		Name: "grid" + strconv.Itoa(len(e.layout.Blocks)+1),
		Quad: quad,
		Rows: 5,
		Cols: 5,
	})
	e.layout.Blocks = append(e.layout.Blocks, b)
	e.selected = len(e.layout.Blocks) - 1
	return Applied
}

// MoveBlock removes the block at from and reinserts it at to, keeping
// every other block's relative order (a splice, not a swap). The selection
// cursor tracks the same block across the move.
func (e *Editor) MoveBlock(from, to int) Result {
	if from == to || from < 0 || to < 0 {
		return Skipped
	}
	if !e.inRange(from) || !e.inRange(to) {
		return Skipped
	}

	blocks := e.layout.Blocks
	moved := blocks[from]
	blocks = append(blocks[:from], blocks[from+1:]...)
	blocks = append(blocks[:to], append([]model.Block{moved}, blocks[to:]...)...)
	e.layout.Blocks = blocks
	model.Renumber(e.layout.Blocks)

	switch {
	case e.selected == from:
		e.selected = to
	case from < to && e.selected > from && e.selected <= to:
		e.selected--
	case to < from && e.selected >= to && e.selected < from:
		e.selected++
	}
	return Applied
}

// BeginDrag starts a drag gesture from the given row.
func (e *Editor) BeginDrag(index int) Result {
	if !e.inRange(index) {
		return Skipped
	}
	e.dragSource = index
	e.dropTarget = index
	return Applied
}

// DragOver tracks the live drop target as the pointer moves over rows.
func (e *Editor) DragOver(index int) Result {
	if e.dragSource == NoSelection || !e.inRange(index) {
		return Skipped
	}
	e.dropTarget = index
	return Applied
}

// Drop commits the drag as a move and clears the gesture state.
func (e *Editor) Drop() Result {
	src, dst := e.dragSource, e.dropTarget
	e.dragSource = NoSelection
	e.dropTarget = NoSelection
	if src == NoSelection || dst == NoSelection {
		return Skipped
	}
	return e.MoveBlock(src, dst)
}

// CancelDrag abandons the gesture without mutating the list.
func (e *Editor) CancelDrag() {
	e.dragSource = NoSelection
	e.dropTarget = NoSelection
}

// DragState exposes the in-flight gesture, NoSelection when idle.
func (e *Editor) DragState() (source, target int) {
	return e.dragSource, e.dropTarget
}
