package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/engine"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type decisionEngine interface {
	ChooseMove(board entity.Board, level engine.Level, engineSide entity.Mark) (entity.Cell, error)
}

type Option func(*Match)

func WithMode(mode entity.Mode) Option {
	return func(m *Match) {
		m.mode = mode
	}
}

// WithComputerSide - sets the side the engine plays in human vs computer mode.
func WithComputerSide(side entity.Mark) Option {
	return func(m *Match) {
		m.computerSide = side
	}
}

func WithLevel(level engine.Level) Option {
	return func(m *Match) {
		m.level = level
	}
}

// Match is the turn-taking state machine of one game. It is not safe for
// concurrent use; callers deliver moves one at a time.
type Match struct {
	engine decisionEngine

	board        entity.Board
	sideToMove   entity.Mark
	mode         entity.Mode
	computerSide entity.Mark
	level        engine.Level
	moves        []entity.Cell
}

// NewMatch - creates a match on an empty board with Player to move. By default
// the computer plays Opponent at the optimal level.
func NewMatch(decider decisionEngine, options ...Option) *Match {
	match := &Match{
		engine:       decider,
		mode:         entity.HumanVsComputer,
		computerSide: entity.Opponent,
		level:        engine.LevelOptimal,
	}

	for _, option := range options {
		option(match)
	}

	match.Reset()

	return match
}

// ApplyMove - places the mark of the side to move on (row, col).
func (that *Match) ApplyMove(row, col int) (entity.Outcome, error) {
	if that.State() == entity.StateOver {
		return that.Outcome(), fmt.Errorf("%w: match is over", apperror.ErrIllegalMove)
	}

	if err := that.board.Place(row, col, that.sideToMove); err != nil {
		return that.Outcome(), fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	that.moves = append(that.moves, entity.Cell{Row: row, Col: col})

	outcome := that.board.Outcome()
	if !outcome.IsOver() {
		that.sideToMove = that.sideToMove.Other()
	}

	return outcome, nil
}

// RequestComputerMove - asks the engine for a move and applies it. Valid only
// in human vs computer mode while the computer's side is to move.
func (that *Match) RequestComputerMove() (entity.Cell, error) {
	if err := that.checkComputerTurn(); err != nil {
		return entity.Cell{}, err
	}

	move, err := that.engine.ChooseMove(that.board.Clone(), that.level, that.computerSide)
	if err != nil {
		return entity.Cell{}, fmt.Errorf("engine failed to choose a move: %w", err)
	}

	if _, err = that.ApplyMove(move.Row, move.Col); err != nil {
		return entity.Cell{}, fmt.Errorf("engine move %s rejected: %w", move, err)
	}

	return move, nil
}

func (that *Match) checkComputerTurn() error {
	switch {
	case that.mode != entity.HumanVsComputer:
		return fmt.Errorf("%w: mode is %s", apperror.ErrInvalidTurn, that.mode)
	case that.State() == entity.StateOver:
		return fmt.Errorf("%w: match is over", apperror.ErrInvalidTurn)
	case that.sideToMove != that.computerSide:
		return fmt.Errorf("%w: %s to move", apperror.ErrInvalidTurn, that.sideToMove)
	default:
		return nil
	}
}

// IsComputerTurn reports whether the presentation layer should request a computer move.
func (that *Match) IsComputerTurn() bool {
	return that.checkComputerTurn() == nil
}

// SetMode does not touch the board; the new mode applies from the next computer-turn check.
func (that *Match) SetMode(mode entity.Mode) {
	that.mode = mode
}

func (that *Match) ToggleMode() entity.Mode {
	that.mode = that.mode.Toggle()
	return that.mode
}

// Reset - discards the board and starts again with Player to move.
func (that *Match) Reset() {
	that.board = entity.NewBoard()
	that.sideToMove = entity.Player
	that.moves = nil
}

func (that *Match) Board() entity.Board {
	return that.board.Clone()
}

func (that *Match) Outcome() entity.Outcome {
	return that.board.Outcome()
}

func (that *Match) State() entity.State {
	if that.board.Outcome().IsOver() {
		return entity.StateOver
	}

	return entity.StateAwaitingMove
}

func (that *Match) SideToMove() entity.Mark {
	return that.sideToMove
}

func (that *Match) Mode() entity.Mode {
	return that.mode
}

func (that *Match) ComputerSide() entity.Mark {
	return that.computerSide
}

func (that *Match) Level() engine.Level {
	return that.level
}

func (that *Match) Moves() []entity.Cell {
	return slices.Clone(that.moves)
}

func (that *Match) LastMove() (entity.Cell, bool) {
	if len(that.moves) == 0 {
		return entity.Cell{}, false
	}

	return that.moves[len(that.moves)-1], true
}

// Snapshot - returns the serialisable state of the match under the given id.
func (that *Match) Snapshot(id string) *entity.MatchState {
	moves := make([]entity.Cell, len(that.moves))
	copy(moves, that.moves)

	return &entity.MatchState{
		ID:           id,
		Mode:         that.mode,
		ComputerSide: that.computerSide,
		Level:        int(that.level),
		Moves:        moves,
		Board:        that.board.Rows(),
		SideToMove:   that.sideToMove,
		State:        that.State(),
		Outcome:      that.Outcome(),
	}
}

// Restore - rebuilds a match by replaying the recorded moves, so a
// tampered or inconsistent state is rejected.
func Restore(state *entity.MatchState, decider decisionEngine) (*Match, error) {
	if !state.ComputerSide.IsSide() {
		return nil, fmt.Errorf("%w: computer side is %s", apperror.ErrPreconditionViolation, state.ComputerSide)
	}

	if state.Level < 0 {
		return nil, fmt.Errorf("%w: level %d", apperror.ErrPreconditionViolation, state.Level)
	}

	match := NewMatch(decider,
		WithMode(state.Mode),
		WithComputerSide(state.ComputerSide),
		WithLevel(engine.Level(state.Level)),
	)

	for i, move := range state.Moves {
		if _, err := match.ApplyMove(move.Row, move.Col); err != nil {
			return nil, fmt.Errorf("failed to replay move %d %s: %w", i, move, err)
		}
	}

	return match, nil
}
