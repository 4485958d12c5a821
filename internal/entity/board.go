package entity

import (
	"errors"
	"fmt"
)

// Size is the length of a board side.
const Size = 3

const cellCount = Size * Size

var (
	ErrCellOutOfRange = errors.New("cell is out of range")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidMark    = errors.New("invalid mark")
)

// Cell addresses a board square by row and column, both in [0, Size).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

func (that Cell) index() int {
	return that.Row*Size + that.Col
}

// Board is a 3x3 grid stored row-major. It is a plain value: assigning or
// cloning it yields an independent board.
type Board struct {
	cells  [cellCount]Mark
	marked int
}

func NewBoard() Board {
	return Board{}
}

// IsEmpty - reports whether the cell holds no mark.
func (that *Board) IsEmpty(row, col int) (bool, error) {
	cell := Cell{Row: row, Col: col}
	if !cell.InBounds() {
		return false, fmt.Errorf("%w: %s", ErrCellOutOfRange, cell)
	}

	return that.cells[cell.index()] == Empty, nil
}

// Place - puts mark on an empty cell. The board is left untouched on error.
func (that *Board) Place(row, col int, mark Mark) error {
	if !mark.IsSide() {
		return fmt.Errorf("%w: %s", ErrInvalidMark, mark)
	}

	empty, err := that.IsEmpty(row, col)
	if err != nil {
		return err
	}

	if !empty {
		return fmt.Errorf("%w: %s", ErrCellOccupied, Cell{Row: row, Col: col})
	}

	that.cells[Cell{Row: row, Col: col}.index()] = mark
	that.marked++

	return nil
}

// At returns Empty for cells outside the board.
func (that *Board) At(row, col int) Mark {
	cell := Cell{Row: row, Col: col}
	if !cell.InBounds() {
		return Empty
	}

	return that.cells[cell.index()]
}

// EmptyCells - lists the empty cells in row-major order.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, cellCount-that.marked)
	for i, mark := range that.cells {
		if mark == Empty {
			cells = append(cells, Cell{Row: i / Size, Col: i % Size})
		}
	}

	return cells
}

func (that *Board) MarkedCount() int {
	return that.marked
}

func (that *Board) IsFull() bool {
	return that.marked == cellCount
}

func (that *Board) Clone() Board {
	return *that
}

func (that *Board) Rows() [Size][Size]Mark {
	var rows [Size][Size]Mark
	for i, mark := range that.cells {
		rows[i/Size][i%Size] = mark
	}

	return rows
}

// TerminalState - returns the side owning a complete line and that line.
// Columns are checked first, then rows, then the two diagonals; Empty means
// no line is complete.
func (that *Board) TerminalState() (Mark, Line) {
	for _, line := range winLines {
		cells := line.Cells()
		a := that.cells[cells[0].index()]
		b := that.cells[cells[1].index()]
		c := that.cells[cells[2].index()]

		if a != Empty && a == b && b == c {
			return a, line
		}
	}

	return Empty, Line{}
}

// Outcome - derives the game result from the board.
func (that *Board) Outcome() Outcome {
	if winner, line := that.TerminalState(); winner != Empty {
		return Outcome{Status: StatusWin, Winner: winner, Line: &line}
	}

	if that.IsFull() {
		return Outcome{Status: StatusDraw}
	}

	return Outcome{Status: StatusInProgress}
}

// Key - packs the position into a base-3 number.
func (that *Board) Key() uint32 {
	var key uint32
	for _, mark := range that.cells {
		key = key*3 + uint32(mark)
	}

	return key
}

// BoardFromRows - builds a board from a grid of marks, e.g. a decoded state.
func BoardFromRows(rows [Size][Size]Mark) (Board, error) {
	board := NewBoard()
	for row := range rows {
		for col, mark := range rows[row] {
			if mark == Empty {
				continue
			}

			if err := board.Place(row, col, mark); err != nil {
				return Board{}, err
			}
		}
	}

	return board, nil
}
