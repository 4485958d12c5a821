package terminal

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

// Controller holds the cursor and drives the match from key presses. It runs
// on the UI goroutine only.
type Controller struct {
	logger *slog.Logger
	match  *tictactoe.Match

	cursor  entity.Cell
	message string
}

func NewController(logger *slog.Logger, match *tictactoe.Match) *Controller {
	return &Controller{
		logger: logger.With("component", "terminal"),
		match:  match,
		cursor: entity.Cell{Row: entity.Size / 2, Col: entity.Size / 2},
	}
}

// Start - lets the computer open when it plays Player.
func (that *Controller) Start() {
	that.playComputer()
}

// MoveCursor - moves the cursor, stopping at the edges of the board.
func (that *Controller) MoveCursor(dRow, dCol int) {
	next := entity.Cell{Row: that.cursor.Row + dRow, Col: that.cursor.Col + dCol}
	if next.InBounds() {
		that.cursor = next
	}
}

// Select - places the side to move's mark under the cursor, then plays the
// computer's reply when it is due.
func (that *Controller) Select() {
	log := that.logger.With("method", "Select")

	if that.match.State() == entity.StateOver {
		that.message = "Match is over, press r to play again"
		return
	}

	if that.match.IsComputerTurn() {
		that.playComputer()
		return
	}

	if _, err := that.match.ApplyMove(that.cursor.Row, that.cursor.Col); err != nil {
		log.Debug("move rejected", "cell", that.cursor.String(), "error", err)
		that.message = moveErrorMessage(err)

		return
	}

	that.message = ""
	that.playComputer()
}

func (that *Controller) Reset() {
	that.match.Reset()
	that.cursor = entity.Cell{Row: entity.Size / 2, Col: entity.Size / 2}
	that.message = ""

	that.playComputer()
}

// ToggleMode - switches between pvp and ai keeping the board. The computer
// moves at once when the switch hands it the turn.
func (that *Controller) ToggleMode() {
	mode := that.match.ToggleMode()
	that.message = "Mode: " + modeName(mode)

	that.playComputer()
}

func (that *Controller) playComputer() {
	if !that.match.IsComputerTurn() {
		return
	}

	move, err := that.match.RequestComputerMove()
	if err != nil {
		that.logger.Error("computer move failed", "error", err)
		that.message = "Computer could not move"

		return
	}

	that.logger.Debug("computer moved", "cell", move.String())
}

func (that *Controller) Cursor() entity.Cell {
	return that.cursor
}

func (that *Controller) Match() *tictactoe.Match {
	return that.match
}

func (that *Controller) Message() string {
	return that.message
}

// Status - the text of the status panel.
func (that *Controller) Status() string {
	var text strings.Builder

	fmt.Fprintf(&text, "Mode: %s\n\n", modeName(that.match.Mode()))

	outcome := that.match.Outcome()
	switch outcome.Status {
	case entity.StatusWin:
		fmt.Fprintf(&text, "%s wins!\n", that.sideName(outcome.Winner))
	case entity.StatusDraw:
		text.WriteString("Draw!\n")
	default:
		fmt.Fprintf(&text, "%s to move\n", that.sideName(that.match.SideToMove()))
	}

	if that.message != "" {
		fmt.Fprintf(&text, "\n%s\n", that.message)
	}

	text.WriteString("\nhjkl/arrows move  enter place\nr reset  m mode  q quit")

	return text.String()
}

func (that *Controller) sideName(side entity.Mark) string {
	name := side.Symbol()
	if that.match.Mode() == entity.HumanVsComputer && side == that.match.ComputerSide() {
		return name + " (computer)"
	}

	return name
}

func modeName(mode entity.Mode) string {
	if mode == entity.HumanVsHuman {
		return "human vs human"
	}

	return "human vs computer"
}

func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrCellOccupied):
		return "Cell is occupied"
	case errors.Is(err, entity.ErrCellOutOfRange):
		return "Out of bounds"
	default:
		return "Invalid move"
	}
}
