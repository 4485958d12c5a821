package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLine   = errors.New("unknown line kind")
	ErrUnknownStatus = errors.New("unknown outcome status")
)

type LineKind uint8

const (
	NoLine LineKind = iota
	ColumnLine
	RowLine
	DiagonalLine     // top-left to bottom-right
	AntiDiagonalLine // bottom-left to top-right
)

var lineKindNames = map[LineKind]string{
	NoLine:           "",
	ColumnLine:       "column",
	RowLine:          "row",
	DiagonalLine:     "diagonal",
	AntiDiagonalLine: "anti-diagonal",
}

func (that LineKind) String() string {
	if name, ok := lineKindNames[that]; ok {
		return name
	}

	return fmt.Sprintf("line(%d)", uint8(that))
}

func (that LineKind) MarshalText() ([]byte, error) {
	name, ok := lineKindNames[that]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLine, uint8(that))
	}

	return []byte(name), nil
}

func (that *LineKind) UnmarshalText(text []byte) error {
	for kind, name := range lineKindNames {
		if name == string(text) {
			*that = kind
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownLine, text)
}

// Line identifies a row, a column or a diagonal of the board. Index is only
// meaningful for rows and columns.
type Line struct {
	Kind  LineKind `json:"kind"`
	Index int      `json:"index"`
}

// winLines is the fixed order in which complete lines are looked up.
var winLines = [...]Line{
	{Kind: ColumnLine, Index: 0},
	{Kind: ColumnLine, Index: 1},
	{Kind: ColumnLine, Index: 2},
	{Kind: RowLine, Index: 0},
	{Kind: RowLine, Index: 1},
	{Kind: RowLine, Index: 2},
	{Kind: DiagonalLine},
	{Kind: AntiDiagonalLine},
}

// Cells - returns the three cells of the line, so a renderer can strike them through.
func (that Line) Cells() [Size]Cell {
	var cells [Size]Cell
	for i := range cells {
		switch that.Kind {
		case ColumnLine:
			cells[i] = Cell{Row: i, Col: that.Index}
		case RowLine:
			cells[i] = Cell{Row: that.Index, Col: i}
		case DiagonalLine:
			cells[i] = Cell{Row: i, Col: i}
		case AntiDiagonalLine:
			cells[i] = Cell{Row: Size - 1 - i, Col: i}
		case NoLine:
			return [Size]Cell{}
		}
	}

	return cells
}

// Contains reports whether the cell lies on the line.
func (that Line) Contains(cell Cell) bool {
	if that.Kind == NoLine {
		return false
	}

	for _, c := range that.Cells() {
		if c == cell {
			return true
		}
	}

	return false
}

func (that Line) String() string {
	switch that.Kind {
	case ColumnLine, RowLine:
		return fmt.Sprintf("%s %d", that.Kind, that.Index)
	default:
		return that.Kind.String()
	}
}

type Status uint8

const (
	StatusInProgress Status = iota
	StatusWin
	StatusDraw
)

var statusNames = map[Status]string{
	StatusInProgress: "in_progress",
	StatusWin:        "win",
	StatusDraw:       "draw",
}

func (that Status) String() string {
	if name, ok := statusNames[that]; ok {
		return name
	}

	return fmt.Sprintf("status(%d)", uint8(that))
}

func (that Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[that]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(that))
	}

	return []byte(name), nil
}

func (that *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*that = status
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownStatus, text)
}

// Outcome is the result of a board: in progress, a win with its line, or a draw.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner"`
	Line   *Line  `json:"line,omitempty"`
}

func (that Outcome) IsOver() bool {
	return that.Status != StatusInProgress
}

func (that Outcome) String() string {
	switch that.Status {
	case StatusWin:
		if that.Line != nil {
			return fmt.Sprintf("%s wins by %s", that.Winner, that.Line)
		}
		return that.Winner.String() + " wins"
	default:
		return that.Status.String()
	}
}
