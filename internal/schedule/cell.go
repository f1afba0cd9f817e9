package schedule

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMarker is the label of the cell that opens a session row.
const DefaultMarker = "جلسه"

// CellKind tags what a cell means in the page layout.
type CellKind int

const (
	CellValue CellKind = iota
	CellMarker
	CellHeader
)

func (k CellKind) String() string {
	switch k {
	case CellMarker:
		return "marker"
	case CellHeader:
		return "header"
	default:
		return "value"
	}
}

// Cell is one flattened table cell or class header.
type Cell struct {
	Kind CellKind `json:"kind"`
	Text string   `json:"text"`
}

// HeaderCell returns a class header cell.
func HeaderCell(text string) Cell {
	return Cell{Kind: CellHeader, Text: NormalizeText(text)}
}

// Classify returns a marker cell when text equals marker after normalization,
// and a value cell otherwise. An empty marker means DefaultMarker.
func Classify(text, marker string) Cell {
	if marker == "" {
		marker = DefaultMarker
	}
	normalized := NormalizeText(text)
	if normalized == NormalizeText(marker) {
		return Cell{Kind: CellMarker, Text: normalized}
	}
	return Cell{Kind: CellValue, Text: normalized}
}

// NormalizeText trims surrounding whitespace and applies Unicode NFC, so the same
// word typed with composed or decomposed characters compares equal.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Block is the class name and the cells that follow its header.
type Block struct {
	ClassName string `json:"class_name"`
	Cells     []Cell `json:"cells"`
}

// SplitBlocks groups a flat cell sequence into one block per header cell.
// Cells before the first header belong to no class and are dropped.
func SplitBlocks(cells []Cell) []Block {
	var blocks []Block
	for _, c := range cells {
		if c.Kind == CellHeader {
			blocks = append(blocks, Block{ClassName: c.Text})
			continue
		}
		if len(blocks) == 0 {
			continue
		}
		last := &blocks[len(blocks)-1]
		last.Cells = append(last.Cells, c)
	}
	return blocks
}
