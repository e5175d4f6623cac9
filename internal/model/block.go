package model

import "strconv"

// BlockType identifies what a capture region reads off the sheet
type BlockType string

const (
	BlockTypeGrid   BlockType = "grid"   // Answer bubbles, one row per question
	BlockTypeQ      BlockType = "q"      // Alias for grid used by older templates
	BlockTypeDigits BlockType = "digits" // Generic digit columns
	BlockTypeID     BlockType = "id"     // Student ID digit strip
	BlockTypePhone  BlockType = "phone"  // Phone number digit strip
	BlockTypeName   BlockType = "name"   // Hangul name grid
	BlockTypeCode   BlockType = "code"   // Exam/paper code columns
)

// Point is an [x, y] coordinate in image pixel space.
// Serialized as a 2-element array to match the layout file format.
type Point [2]float64

// Block is one answer-capture region on a scanned page.
// Quad corners are ordered top-left, top-right, bottom-right, bottom-left;
// the renderer and the grading engine both rely on that order.
type Block struct {
	Type           BlockType `json:"type" bson:"type"`
	Name           string    `json:"name" bson:"name"`
	Label          string    `json:"label,omitempty" bson:"label,omitempty"`
	Quad           []Point   `json:"quad" bson:"quad"`
	Rows           int       `json:"rows" bson:"rows"`
	Cols           int       `json:"cols" bson:"cols"`
	Choices        []string  `json:"choices,omitempty" bson:"choices,omitempty"`
	QuestionPrefix string    `json:"questionPrefix,omitempty" bson:"questionPrefix,omitempty"`
	QuestionStart  int       `json:"questionStart,omitempty" bson:"questionStart,omitempty"`
	QuestionCount  int       `json:"questionCount,omitempty" bson:"questionCount,omitempty"`
}

// BlockPreset is the canonical rows/cols for a block type. Changing a
// block's type in the editor resets its counts to the preset.
type BlockPreset struct {
	Rows int
	Cols int
}

// BlockPresets maps each known type to its canonical geometry.
var BlockPresets = map[BlockType]BlockPreset{
	BlockTypeGrid:   {Rows: 10, Cols: 5},
	BlockTypeDigits: {Rows: 10, Cols: 3},
	BlockTypeID:     {Rows: 10, Cols: 8},
	BlockTypePhone:  {Rows: 10, Cols: 9},
	BlockTypeName:   {Rows: 21, Cols: 12},
	BlockTypeCode:   {Rows: 3, Cols: 1},
}

// maxGridChoices caps multiple-choice label derivation. Exams never carry
// more than 12 answer choices per question.
const maxGridChoices = 12

// nameChoices are the syllable-position labels for Hangul name grids:
// initial, medial, final.
var nameChoices = []string{"초", "중", "종"}

// AutoChoices derives the choice-label set for a block. A non-empty
// existing Choices list always wins, even when its length disagrees with
// Rows/Cols. Pure; never fails.
func AutoChoices(b Block) []string {
	if len(b.Choices) > 0 {
		return b.Choices
	}

	switch b.Type {
	case BlockTypeGrid, BlockTypeQ:
		n := b.Cols
		if n < 1 {
			n = 1
		}
		if n > maxGridChoices {
			n = maxGridChoices
		}
		choices := make([]string, n)
		for i := range choices {
			choices[i] = strconv.Itoa(i + 1)
		}
		return choices

	case BlockTypeDigits, BlockTypeID, BlockTypePhone, BlockTypeCode:
		choices := make([]string, 10)
		for i := range choices {
			choices[i] = strconv.Itoa(i)
		}
		return choices

	case BlockTypeName:
		choices := make([]string, len(nameChoices))
		copy(choices, nameChoices)
		return choices
	}

	// Unknown type: keep whatever was there (possibly nothing).
	return b.Choices
}

// Normalize fills in every optional Block field so downstream code can
// rely on the invariants: non-empty choices for known types, question
// numbering >= 1, a prefix, and a label. Idempotent; malformed input is
// absorbed into defaults rather than rejected.
func Normalize(b Block) Block {
	b.Choices = AutoChoices(b)

	if b.QuestionStart < 1 {
		b.QuestionStart = 1
	}

	if b.QuestionCount < 1 {
		if b.Type == BlockTypeGrid || b.Type == BlockTypeQ {
			b.QuestionCount = b.Rows
		} else {
			b.QuestionCount = 1
		}
		if b.QuestionCount < 1 {
			b.QuestionCount = 1
		}
	}

	if b.QuestionPrefix == "" {
		b.QuestionPrefix = "Q"
	}

	if b.Label == "" {
		b.Label = b.Name
	}

	return b
}

// NormalizeBlocks normalizes every block, preserving order.
func NormalizeBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = Normalize(b)
	}
	return out
}

// QuestionIDs expands a normalized block into its question identifiers,
// e.g. prefix "Q", start 11, count 3 -> Q11, Q12, Q13.
func (b Block) QuestionIDs() []string {
	ids := make([]string, 0, b.QuestionCount)
	for i := 0; i < b.QuestionCount; i++ {
		ids = append(ids, b.QuestionPrefix+strconv.Itoa(b.QuestionStart+i))
	}
	return ids
}

// Clone deep-copies the block so the copy's quad and choices never alias
// the original.
func (b Block) Clone() Block {
	c := b
	c.Quad = make([]Point, len(b.Quad))
	copy(c.Quad, b.Quad)
	if b.Choices != nil {
		c.Choices = make([]string, len(b.Choices))
		copy(c.Choices, b.Choices)
	}
	return c
}
