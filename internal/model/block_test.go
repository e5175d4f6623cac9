package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoChoicesGrid(t *testing.T) {
	choices := AutoChoices(Block{Type: BlockTypeGrid, Cols: 5})
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, choices)
}

func TestAutoChoicesGridClampedToPool(t *testing.T) {
	choices := AutoChoices(Block{Type: BlockTypeGrid, Cols: 20})
	require.Len(t, choices, 12)
	assert.Equal(t, "1", choices[0])
	assert.Equal(t, "12", choices[11])
}

func TestAutoChoicesDigitTypes(t *testing.T) {
	want := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for _, typ := range []BlockType{BlockTypeDigits, BlockTypeID, BlockTypePhone, BlockTypeCode} {
		assert.Equal(t, want, AutoChoices(Block{Type: typ}), "type %s", typ)
	}
}

func TestAutoChoicesNameIgnoresGeometry(t *testing.T) {
	want := []string{"초", "중", "종"}
	assert.Equal(t, want, AutoChoices(Block{Type: BlockTypeName}))
	assert.Equal(t, want, AutoChoices(Block{Type: BlockTypeName, Rows: 3, Cols: 99}))
}

func TestAutoChoicesExistingListWins(t *testing.T) {
	existing := []string{"가", "나"}
	choices := AutoChoices(Block{Type: BlockTypeGrid, Cols: 5, Choices: existing})
	assert.Equal(t, existing, choices, "existing choices must win even when the count mismatches cols")
}

func TestAutoChoicesUnknownTypePassthrough(t *testing.T) {
	assert.Empty(t, AutoChoices(Block{Type: "mystery"}))
	assert.Equal(t, []string{"x"}, AutoChoices(Block{Type: "mystery", Choices: []string{"x"}}))
}

func TestNormalizeDefaults(t *testing.T) {
	b := Normalize(Block{Type: BlockTypeGrid, Name: "grid1", Rows: 7, Cols: 4})

	assert.Equal(t, []string{"1", "2", "3", "4"}, b.Choices)
	assert.Equal(t, 1, b.QuestionStart)
	assert.Equal(t, 7, b.QuestionCount, "grid question count defaults to rows")
	assert.Equal(t, "Q", b.QuestionPrefix)
	assert.Equal(t, "grid1", b.Label)
}

func TestNormalizeNonGridQuestionCount(t *testing.T) {
	b := Normalize(Block{Type: BlockTypeID, Rows: 10, Cols: 8})
	assert.Equal(t, 1, b.QuestionCount)
}

func TestNormalizeClampsToOne(t *testing.T) {
	b := Normalize(Block{Type: BlockTypeGrid, Rows: 0, Cols: 5, QuestionStart: -3})
	assert.Equal(t, 1, b.QuestionStart)
	assert.Equal(t, 1, b.QuestionCount)
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []Block{
		{},
		{Type: BlockTypeGrid, Rows: 5, Cols: 5},
		{Type: BlockTypeName, Name: "name1", Rows: 21, Cols: 12},
		{Type: "mystery", Choices: []string{"a", "b"}},
		{Type: BlockTypeID, QuestionStart: 3, QuestionCount: 2, QuestionPrefix: "번"},
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeKeepsCustomFields(t *testing.T) {
	b := Normalize(Block{
		Type:           BlockTypeGrid,
		Name:           "grid3",
		Label:          "수학 1~10",
		Rows:           10,
		Cols:           5,
		QuestionPrefix: "문",
		QuestionStart:  11,
		QuestionCount:  10,
	})
	assert.Equal(t, "수학 1~10", b.Label)
	assert.Equal(t, "문", b.QuestionPrefix)
	assert.Equal(t, 11, b.QuestionStart)
	assert.Equal(t, 10, b.QuestionCount)
}

func TestQuestionIDs(t *testing.T) {
	b := Normalize(Block{Type: BlockTypeGrid, Rows: 3, Cols: 5, QuestionStart: 11})
	assert.Equal(t, []string{"Q11", "Q12", "Q13"}, b.QuestionIDs())
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := Block{
		Type:    BlockTypeGrid,
		Quad:    []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Choices: []string{"1", "2"},
	}
	clone := orig.Clone()
	clone.Quad[0] = Point{99, 99}
	clone.Choices[0] = "changed"

	assert.Equal(t, Point{0, 0}, orig.Quad[0])
	assert.Equal(t, "1", orig.Choices[0])
}
