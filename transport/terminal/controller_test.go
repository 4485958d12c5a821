package terminal

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/engine"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

func newController(options ...tictactoe.Option) *Controller {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	match := tictactoe.NewMatch(engine.New(engine.WithSeed(1)), options...)

	return NewController(logger, match)
}

// playAt moves the cursor from the center to cell and selects it.
func playAt(controller *Controller, cell entity.Cell) {
	cursor := controller.Cursor()
	controller.MoveCursor(cell.Row-cursor.Row, cell.Col-cursor.Col)
	controller.Select()
}

func TestController_MoveCursor(t *testing.T) {
	// Given: a controller with the cursor in the center
	controller := newController()
	require.Equal(t, entity.Cell{Row: 1, Col: 1}, controller.Cursor())

	// When: the cursor is pushed past the top left corner
	controller.MoveCursor(-1, 0)
	controller.MoveCursor(-1, 0)
	controller.MoveCursor(0, -1)
	controller.MoveCursor(0, -1)

	// Then: it stops on the edge
	assert.Equal(t, entity.Cell{Row: 0, Col: 0}, controller.Cursor())

	controller.MoveCursor(2, 2)
	assert.Equal(t, entity.Cell{Row: 2, Col: 2}, controller.Cursor())
}

func TestController_Select(t *testing.T) {
	t.Run("Computer replies after the human move", func(t *testing.T) {
		// Given: a human vs computer match
		controller := newController()

		// When: the human takes the center
		controller.Select()

		// Then: the computer answers in the first corner
		match := controller.Match()
		board := match.Board()
		assert.Equal(t, entity.Player, board.At(1, 1))
		assert.Equal(t, entity.Opponent, board.At(0, 0))
		assert.Equal(t, entity.Player, match.SideToMove())
		assert.Empty(t, controller.Message())
	})

	t.Run("Occupied cell shows a message and changes nothing", func(t *testing.T) {
		controller := newController()
		controller.Select()
		before := controller.Match().Moves()

		controller.Select()

		assert.Equal(t, "Cell is occupied", controller.Message())
		assert.Equal(t, before, controller.Match().Moves())
	})

	t.Run("No computer reply in pvp mode", func(t *testing.T) {
		controller := newController(tictactoe.WithMode(entity.HumanVsHuman))

		controller.Select()

		assert.Len(t, controller.Match().Moves(), 1)
		assert.Equal(t, entity.Opponent, controller.Match().SideToMove())
	})

	t.Run("Finished match asks for a reset", func(t *testing.T) {
		// Given: Player wins the top row in pvp
		controller := newController(tictactoe.WithMode(entity.HumanVsHuman))
		for _, cell := range []entity.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2}} {
			playAt(controller, cell)
		}
		require.Equal(t, entity.StateOver, controller.Match().State())

		// When: another cell is selected
		playAt(controller, entity.Cell{Row: 2, Col: 2})

		// Then: nothing is placed
		assert.Contains(t, controller.Message(), "press r")
		assert.Len(t, controller.Match().Moves(), 5)
		assert.Contains(t, controller.Status(), "X wins!")
	})
}

func TestController_Start(t *testing.T) {
	// Given: the computer plays Player
	controller := newController(tictactoe.WithComputerSide(entity.Player))

	// When: the match starts
	controller.Start()

	// Then: the computer has opened
	assert.Equal(t, []entity.Cell{{Row: 0, Col: 0}}, controller.Match().Moves())
	assert.Contains(t, controller.Status(), "O to move")
}

func TestController_Reset(t *testing.T) {
	// Given: a match with moves and the cursor in a corner
	controller := newController()
	controller.Select()
	controller.MoveCursor(1, 1)

	// When: it is reset
	controller.Reset()

	// Then: the board is empty and the cursor is back in the center
	assert.Empty(t, controller.Match().Moves())
	assert.Equal(t, entity.Cell{Row: 1, Col: 1}, controller.Cursor())
	assert.Equal(t, entity.Player, controller.Match().SideToMove())
}

func TestController_ToggleMode(t *testing.T) {
	// Given: a pvp match after Player's move
	controller := newController(tictactoe.WithMode(entity.HumanVsHuman))
	controller.Select()

	// When: the mode is toggled
	controller.ToggleMode()

	// Then: the computer takes its turn on the same board
	assert.Equal(t, entity.HumanVsComputer, controller.Match().Mode())
	assert.Len(t, controller.Match().Moves(), 2)
	assert.Contains(t, controller.Status(), "human vs computer")

	// When: it is toggled back
	controller.ToggleMode()

	// Then: no move is played
	assert.Equal(t, entity.HumanVsHuman, controller.Match().Mode())
	assert.Len(t, controller.Match().Moves(), 2)
}

func TestController_Status(t *testing.T) {
	controller := newController()

	status := controller.Status()

	assert.Contains(t, status, "Mode: human vs computer")
	assert.Contains(t, status, "X to move")
	assert.Contains(t, status, "q quit")
}
