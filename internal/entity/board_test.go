package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	X = Player
	O = Opponent
	E = Empty
)

func mustBoard(t *testing.T, rows [Size][Size]Mark) Board {
	t.Helper()

	board, err := BoardFromRows(rows)
	require.NoError(t, err)

	return board
}

func TestNewBoard(t *testing.T) {
	// When: a new board is created
	board := NewBoard()

	// Then: it is empty and lists every cell in row-major order
	assert.Equal(t, 0, board.MarkedCount())
	assert.False(t, board.IsFull())
	assert.Equal(t, []Cell{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}, board.EmptyCells())
	assert.Equal(t, Outcome{Status: StatusInProgress}, board.Outcome())
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places a mark on an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: Player marks the center
		err := board.Place(1, 1, Player)

		// Then: the cell holds the mark and the count grows
		require.NoError(t, err)
		assert.Equal(t, Player, board.At(1, 1))
		assert.Equal(t, 1, board.MarkedCount())

		empty, err := board.IsEmpty(1, 1)
		require.NoError(t, err)
		assert.False(t, empty)
		assert.NotContains(t, board.EmptyCells(), Cell{Row: 1, Col: 1})
	})

	t.Run("Rejects an occupied cell without changing the board", func(t *testing.T) {
		// Given: a board with the corner taken
		board := NewBoard()
		require.NoError(t, board.Place(0, 0, Player))
		before := board.Clone()

		// When: Opponent tries the same cell
		err := board.Place(0, 0, Opponent)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, ErrCellOccupied)
		assert.Equal(t, before, board)
		assert.Equal(t, 1, board.MarkedCount())
	})

	t.Run("Rejects cells outside the board", func(t *testing.T) {
		board := NewBoard()

		for _, cell := range []Cell{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}} {
			err := board.Place(cell.Row, cell.Col, Player)
			require.ErrorIs(t, err, ErrCellOutOfRange, "cell %s", cell)

			_, err = board.IsEmpty(cell.Row, cell.Col)
			require.ErrorIs(t, err, ErrCellOutOfRange, "cell %s", cell)
		}

		assert.Equal(t, 0, board.MarkedCount())
	})

	t.Run("Rejects the empty mark", func(t *testing.T) {
		board := NewBoard()

		err := board.Place(0, 0, Empty)

		require.ErrorIs(t, err, ErrInvalidMark)
		assert.Equal(t, 0, board.MarkedCount())
	})
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board and its clone
	board := NewBoard()
	require.NoError(t, board.Place(0, 0, Player))
	clone := board.Clone()

	// When: the clone is changed
	require.NoError(t, clone.Place(2, 2, Opponent))

	// Then: the original is untouched
	assert.Equal(t, Empty, board.At(2, 2))
	assert.Equal(t, 1, board.MarkedCount())
	assert.Equal(t, 2, clone.MarkedCount())
}

func TestBoard_TerminalState(t *testing.T) {
	tests := []struct {
		name       string
		rows       [Size][Size]Mark
		wantWinner Mark
		wantLine   Line
	}{
		{
			name:       "No winner on an empty board",
			rows:       [Size][Size]Mark{},
			wantWinner: Empty,
		},
		{
			name: "No winner on a partial board",
			rows: [Size][Size]Mark{
				{X, O, E},
				{E, X, E},
				{E, E, O},
			},
			wantWinner: Empty,
		},
		{
			name: "Player wins by the top row",
			rows: [Size][Size]Mark{
				{X, X, X},
				{O, O, E},
				{E, E, E},
			},
			wantWinner: Player,
			wantLine:   Line{Kind: RowLine, Index: 0},
		},
		{
			name: "Opponent wins by the middle column",
			rows: [Size][Size]Mark{
				{X, O, E},
				{X, O, E},
				{E, O, X},
			},
			wantWinner: Opponent,
			wantLine:   Line{Kind: ColumnLine, Index: 1},
		},
		{
			name: "Player wins by the diagonal",
			rows: [Size][Size]Mark{
				{X, O, E},
				{E, X, O},
				{E, E, X},
			},
			wantWinner: Player,
			wantLine:   Line{Kind: DiagonalLine},
		},
		{
			name: "Opponent wins by the anti-diagonal",
			rows: [Size][Size]Mark{
				{X, X, O},
				{E, O, E},
				{O, X, E},
			},
			wantWinner: Opponent,
			wantLine:   Line{Kind: AntiDiagonalLine},
		},
		{
			name: "Columns are reported before rows",
			rows: [Size][Size]Mark{
				{X, X, X},
				{X, O, O},
				{X, O, O},
			},
			wantWinner: Player,
			wantLine:   Line{Kind: ColumnLine, Index: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.rows)

			winner, line := board.TerminalState()

			assert.Equal(t, tt.wantWinner, winner)
			assert.Equal(t, tt.wantLine, line)
		})
	}
}

func TestBoard_Outcome(t *testing.T) {
	t.Run("A full board without a line is a draw", func(t *testing.T) {
		// Given: a full board with no three in a row
		board := mustBoard(t, [Size][Size]Mark{
			{X, O, X},
			{X, O, O},
			{O, X, X},
		})

		// When: computing the outcome
		outcome := board.Outcome()

		// Then: it is a draw, never in progress
		require.True(t, board.IsFull())
		assert.Equal(t, Outcome{Status: StatusDraw}, outcome)
		assert.True(t, outcome.IsOver())
	})

	t.Run("A win on the last cell is a win, not a draw", func(t *testing.T) {
		board := mustBoard(t, [Size][Size]Mark{
			{X, O, X},
			{O, X, O},
			{O, X, X},
		})

		outcome := board.Outcome()

		require.True(t, board.IsFull())
		assert.Equal(t, StatusWin, outcome.Status)
		assert.Equal(t, Player, outcome.Winner)
		require.NotNil(t, outcome.Line)
		assert.Equal(t, Line{Kind: DiagonalLine}, *outcome.Line)
	})
}

func TestLine_Cells(t *testing.T) {
	assert.Equal(t, [Size]Cell{{0, 2}, {1, 2}, {2, 2}}, Line{Kind: ColumnLine, Index: 2}.Cells())
	assert.Equal(t, [Size]Cell{{1, 0}, {1, 1}, {1, 2}}, Line{Kind: RowLine, Index: 1}.Cells())
	assert.Equal(t, [Size]Cell{{0, 0}, {1, 1}, {2, 2}}, Line{Kind: DiagonalLine}.Cells())
	assert.Equal(t, [Size]Cell{{2, 0}, {1, 1}, {0, 2}}, Line{Kind: AntiDiagonalLine}.Cells())

	assert.True(t, Line{Kind: AntiDiagonalLine}.Contains(Cell{Row: 2, Col: 0}))
	assert.False(t, Line{Kind: AntiDiagonalLine}.Contains(Cell{Row: 0, Col: 0}))
	assert.False(t, Line{}.Contains(Cell{Row: 0, Col: 0}))
}

func TestBoard_Key(t *testing.T) {
	a := mustBoard(t, [Size][Size]Mark{{X, E, E}, {E, O, E}, {E, E, E}})
	b := mustBoard(t, [Size][Size]Mark{{O, E, E}, {E, X, E}, {E, E, E}})

	assert.NotEqual(t, a.Key(), b.Key())
	clone := a.Clone()
	assert.Equal(t, a.Key(), clone.Key())
}

func TestMatchState_JSON(t *testing.T) {
	// Given: a finished match state
	line := Line{Kind: RowLine, Index: 0}
	state := MatchState{
		ID:           "abc",
		Mode:         HumanVsHuman,
		ComputerSide: Opponent,
		Level:        1,
		Moves:        []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}},
		Board:        [Size][Size]Mark{{X, X, X}, {O, O, E}, {E, E, E}},
		SideToMove:   Player,
		State:        StateOver,
		Outcome:      Outcome{Status: StatusWin, Winner: Player, Line: &line},
	}

	// When: it is encoded
	data, err := json.Marshal(state)
	require.NoError(t, err)

	// Then: enums use their text form and decoding gives the same state back
	assert.Contains(t, string(data), `"mode":"pvp"`)
	assert.Contains(t, string(data), `"side_to_move":"player"`)
	assert.Contains(t, string(data), `"state":"over"`)
	assert.Contains(t, string(data), `"line":{"kind":"row","index":0}`)
	assert.Contains(t, string(data), `"board":[["player","player","player"],["opponent","opponent",""],["","",""]]`)

	var decoded MatchState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, state, decoded)
}

func TestParse(t *testing.T) {
	mark, err := ParseMark("opponent")
	require.NoError(t, err)
	assert.Equal(t, Opponent, mark)

	_, err = ParseMark("nobody")
	require.ErrorIs(t, err, ErrUnknownMark)

	mode, err := ParseMode("pvp")
	require.NoError(t, err)
	assert.Equal(t, HumanVsHuman, mode)
	assert.Equal(t, HumanVsComputer, mode.Toggle())

	_, err = ParseMode("online")
	require.ErrorIs(t, err, ErrUnknownMode)

	assert.Equal(t, Opponent, Player.Other())
	assert.Equal(t, Empty, Empty.Other())
}
