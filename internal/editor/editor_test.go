package editor

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

func testLayout(types ...model.BlockType) *model.Layout {
	layout := model.DefaultLayout()
	for i, typ := range types {
		preset := model.BlockPresets[typ]
		layout.Blocks = append(layout.Blocks, model.Normalize(model.Block{
			Type: typ,
			Name: string(typ) + strconv.Itoa(i+1),
			Quad: []model.Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}},
			Rows: preset.Rows,
			Cols: preset.Cols,
		}))
	}
	model.Renumber(layout.Blocks)
	return layout
}

func assertRenumbered(t *testing.T, blocks []model.Block) {
	t.Helper()
	for i, b := range blocks {
		assert.Equal(t, string(b.Type)+strconv.Itoa(i+1), b.Name, "block %d", i)
	}
}

func TestAddThenRemove(t *testing.T) {
	ed := New(nil)

	require.Equal(t, Applied, ed.AddBlock())
	blocks := ed.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "grid1", blocks[0].Name)
	assert.Equal(t, 5, blocks[0].Rows)
	assert.Equal(t, 5, blocks[0].Cols)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, blocks[0].Choices)
	assert.Equal(t, 0, ed.Selected())

	require.Equal(t, Applied, ed.AddBlock())
	blocks = ed.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "grid2", blocks[1].Name)
	assert.Equal(t, 1, ed.Selected())

	require.Equal(t, Applied, ed.RemoveBlock(0))
	blocks = ed.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "grid1", blocks[0].Name, "survivor is renamed for its new position")
}

func TestTypeChangeResetsGeometry(t *testing.T) {
	ed := New(testLayout(model.BlockTypeGrid, model.BlockTypeGrid, model.BlockTypeGrid))
	rows, cols := 7, 9
	require.Equal(t, Applied, ed.UpdateBlock(2, BlockPatch{Rows: &rows, Cols: &cols}))

	newType := model.BlockTypeID
	require.Equal(t, Applied, ed.UpdateBlock(2, BlockPatch{Type: &newType}))

	b := ed.Blocks()[2]
	assert.Equal(t, model.BlockTypeID, b.Type)
	assert.Equal(t, 10, b.Rows, "preset overrides customized rows")
	assert.Equal(t, 8, b.Cols, "preset overrides customized cols")
	assert.Equal(t, "id3", b.Name)
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, b.Choices,
		"type change derives the new type's choice set")
	assertRenumbered(t, ed.Blocks())
}

func TestUpdateBlockPatchFields(t *testing.T) {
	ed := New(testLayout(model.BlockTypeGrid))
	label := "과학 탐구"
	start := 21
	require.Equal(t, Applied, ed.UpdateBlock(0, BlockPatch{Label: &label, QuestionStart: &start}))

	b := ed.Blocks()[0]
	assert.Equal(t, "과학 탐구", b.Label)
	assert.Equal(t, 21, b.QuestionStart)
}

func TestRemoveBlockSelectionBookkeeping(t *testing.T) {
	cases := []struct {
		name         string
		selected     int
		remove       int
		wantSelected int
	}{
		{"removed selected clears", 1, 1, NoSelection},
		{"selection after removed shifts down", 2, 0, 1},
		{"selection before removed unchanged", 0, 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ed := New(testLayout(model.BlockTypeGrid, model.BlockTypeID, model.BlockTypeName))
			ed.SetSelected(tc.selected)
			require.Equal(t, Applied, ed.RemoveBlock(tc.remove))
			assert.Equal(t, tc.wantSelected, ed.Selected())
			assertRenumbered(t, ed.Blocks())
		})
	}
}

func TestDuplicateIsolation(t *testing.T) {
	ed := New(testLayout(model.BlockTypeGrid, model.BlockTypeID))
	require.Equal(t, Applied, ed.DuplicateBlock(0))

	blocks := ed.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, 1, ed.Selected(), "selection moves to the clone")
	assert.Equal(t, blocks[0].Type, blocks[1].Type)
	assertRenumbered(t, blocks)

	// Mutating the clone must not touch the original.
	quad := []model.Point{{999, 999}, {1, 0}, {1, 1}, {0, 1}}
	choices := []string{"z"}
	require.Equal(t, Applied, ed.UpdateBlock(1, BlockPatch{Quad: quad, Choices: choices}))

	blocks = ed.Blocks()
	assert.Equal(t, model.Point{0, 0}, blocks[0].Quad[0])
	assert.NotEqual(t, []string{"z"}, blocks[0].Choices)
}

func TestMovePreservesMembership(t *testing.T) {
	types := []model.BlockType{model.BlockTypeGrid, model.BlockTypeID, model.BlockTypeName, model.BlockTypeCode}
	for from := 0; from < len(types); from++ {
		for to := 0; to < len(types); to++ {
			ed := New(testLayout(types...))
			before := ed.Blocks()

			result := ed.MoveBlock(from, to)
			after := ed.Blocks()

			if from == to {
				assert.Equal(t, Skipped, result)
				assert.Equal(t, before, after)
				continue
			}
			require.Equal(t, Applied, result, "move %d->%d", from, to)
			require.Len(t, after, len(before))

			// Same multiset of block types, only order changed.
			beforeTypes := map[model.BlockType]int{}
			afterTypes := map[model.BlockType]int{}
			for i := range before {
				beforeTypes[before[i].Type]++
				afterTypes[after[i].Type]++
			}
			assert.Equal(t, beforeTypes, afterTypes)
			assert.Equal(t, before[from].Type, after[to].Type, "moved block lands at target")
			assertRenumbered(t, after)
		}
	}
}

func TestMoveSelectionTracksBlock(t *testing.T) {
	cases := []struct {
		name         string
		selected     int
		from, to     int
		wantSelected int
	}{
		{"selection is the moved block", 1, 1, 3, 3},
		{"selection inside forward window shifts down", 2, 0, 3, 1},
		{"selection inside backward window shifts up", 1, 3, 0, 2},
		{"selection outside window unchanged", 3, 0, 1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ed := New(testLayout(model.BlockTypeGrid, model.BlockTypeID, model.BlockTypeName, model.BlockTypeCode))
			ed.SetSelected(tc.selected)
			selectedType := ed.Blocks()[tc.selected].Type

			require.Equal(t, Applied, ed.MoveBlock(tc.from, tc.to))
			assert.Equal(t, tc.wantSelected, ed.Selected())
			assert.Equal(t, selectedType, ed.Blocks()[ed.Selected()].Type, "cursor still points at the same block")
		})
	}
}

func TestOutOfRangeNoOps(t *testing.T) {
	ed := New(testLayout(model.BlockTypeGrid, model.BlockTypeID))
	before := ed.Blocks()

	label := "x"
	assert.Equal(t, Skipped, ed.UpdateBlock(-1, BlockPatch{Label: &label}))
	assert.Equal(t, Skipped, ed.UpdateBlock(99, BlockPatch{Label: &label}))
	assert.Equal(t, Skipped, ed.RemoveBlock(99))
	assert.Equal(t, Skipped, ed.RemoveBlock(-1))
	assert.Equal(t, Skipped, ed.DuplicateBlock(2))
	assert.Equal(t, Skipped, ed.MoveBlock(-1, 1))
	assert.Equal(t, Skipped, ed.MoveBlock(0, -1))
	assert.Equal(t, Skipped, ed.MoveBlock(0, 99))

	assert.Equal(t, before, ed.Blocks(), "skipped operations leave the layout untouched")
}

func TestDragReorderGesture(t *testing.T) {
	ed := New(testLayout(model.BlockTypeGrid, model.BlockTypeID, model.BlockTypeName))

	require.Equal(t, Applied, ed.BeginDrag(0))
	require.Equal(t, Applied, ed.DragOver(1))
	require.Equal(t, Applied, ed.DragOver(2))
	require.Equal(t, Applied, ed.Drop())

	blocks := ed.Blocks()
	assert.Equal(t, model.BlockTypeID, blocks[0].Type)
	assert.Equal(t, model.BlockTypeName, blocks[1].Type)
	assert.Equal(t, model.BlockTypeGrid, blocks[2].Type)
	assertRenumbered(t, blocks)

	src, dst := ed.DragState()
	assert.Equal(t, NoSelection, src)
	assert.Equal(t, NoSelection, dst)
}

func TestDragCancelMutatesNothing(t *testing.T) {
	ed := New(testLayout(model.BlockTypeGrid, model.BlockTypeID))
	before := ed.Blocks()

	require.Equal(t, Applied, ed.BeginDrag(0))
	require.Equal(t, Applied, ed.DragOver(1))
	ed.CancelDrag()

	assert.Equal(t, before, ed.Blocks())
	assert.Equal(t, Skipped, ed.Drop(), "drop after cancel is inert")
}

func TestDropWithoutMovement(t *testing.T) {
	ed := New(testLayout(model.BlockTypeGrid, model.BlockTypeID))
	before := ed.Blocks()

	require.Equal(t, Applied, ed.BeginDrag(1))
	assert.Equal(t, Skipped, ed.Drop(), "dropping on the source row moves nothing")
	assert.Equal(t, before, ed.Blocks())
}

func TestEditorSnapshotsDoNotAliasInput(t *testing.T) {
	layout := testLayout(model.BlockTypeGrid)
	ed := New(layout)

	layout.Blocks[0].Quad[0] = model.Point{555, 555}
	assert.Equal(t, model.Point{0, 0}, ed.Blocks()[0].Quad[0], "editor works on its own copy")

	out := ed.Blocks()
	out[0].Quad[0] = model.Point{777, 777}
	assert.Equal(t, model.Point{0, 0}, ed.Blocks()[0].Quad[0], "returned copies are detached")
}
