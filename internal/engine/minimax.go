package engine

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	winScore  = 1
	drawScore = 0
	lossScore = -1
)

// searcher holds the state of one search call. Values are cached per
// position: within a single search the side to move follows from the
// number of marks, so the board alone identifies a node.
type searcher struct {
	self  entity.Mark
	nodes int
	table map[uint32]int
}

func newSearcher(self entity.Mark) *searcher {
	return &searcher{
		self:  self,
		table: make(map[uint32]int),
	}
}

// minimax returns the value of board with toMove to play, and the move
// reaching it. Ties go to the first move in row-major order.
func (that *searcher) minimax(board entity.Board, toMove entity.Mark) (int, entity.Cell) {
	that.nodes++

	switch winner, _ := board.TerminalState(); winner {
	case that.self:
		return winScore, entity.Cell{}
	case that.self.Other():
		return lossScore, entity.Cell{}
	}

	if board.IsFull() {
		return drawScore, entity.Cell{}
	}

	maximizing := toMove == that.self

	best := winScore + 1
	if maximizing {
		best = lossScore - 1
	}

	var bestMove entity.Cell
	for _, cell := range board.EmptyCells() {
		child := board.Clone()
		if err := child.Place(cell.Row, cell.Col, toMove); err != nil {
			panic(fmt.Errorf("search placed a mark on %s: %w", cell, err))
		}

		value := that.value(child, toMove.Other())
		if (maximizing && value > best) || (!maximizing && value < best) {
			best = value
			bestMove = cell
		}
	}

	return best, bestMove
}

func (that *searcher) value(board entity.Board, toMove entity.Mark) int {
	key := board.Key()
	if value, ok := that.table[key]; ok {
		return value
	}

	value, _ := that.minimax(board, toMove)
	that.table[key] = value

	return value
}
