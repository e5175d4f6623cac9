package model

import (
	"encoding/json"
	"strconv"
)

// DefaultDPI is the assumed scan resolution when a layout does not carry one.
const DefaultDPI = 300

// Canvas is the pixel size of the rendered page. Passed through to the
// grading engine untouched.
type Canvas struct {
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// Layout is the full set of blocks for one page of one document plus the
// scan parameters the engine needs. Block order is significant: it drives
// display order and position-derived naming.
type Layout struct {
	DPI             int      `json:"dpi" bson:"dpi"`
	Blocks          []Block  `json:"blocks" bson:"blocks"`
	Canvas          *Canvas  `json:"canvas,omitempty" bson:"canvas,omitempty"`
	CellRadiusRatio float64  `json:"cell_radius_ratio,omitempty" bson:"cell_radius_ratio,omitempty"`
}

// DefaultLayout returns an empty page layout at the default resolution.
func DefaultLayout() *Layout {
	return &Layout{DPI: DefaultDPI, Blocks: []Block{}}
}

// Renumber rewrites every block's name to "{type}{1-based position}".
// Runs after every structural edit; display names are position-derived,
// not persisted identity, so user renames do not survive this pass.
func Renumber(blocks []Block) {
	for i := range blocks {
		blocks[i].Name = string(blocks[i].Type) + strconv.Itoa(i+1)
	}
}

// Clone deep-copies the layout. Every cross-component hand-off passes a
// layout by copy, never by shared reference.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	c := &Layout{
		DPI:             l.DPI,
		Blocks:          make([]Block, len(l.Blocks)),
		CellRadiusRatio: l.CellRadiusRatio,
	}
	for i, b := range l.Blocks {
		c.Blocks[i] = b.Clone()
	}
	if l.Canvas != nil {
		canvas := *l.Canvas
		c.Canvas = &canvas
	}
	return c
}

// MarshalFile renders the layout in the downloadable file format.
func (l *Layout) MarshalFile() ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// ParseLayout decodes a layout from its JSON file format.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if l.DPI == 0 {
		l.DPI = DefaultDPI
	}
	return &l, nil
}
