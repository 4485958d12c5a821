// Package engine picks the computer's moves: uniformly at random or by a full-depth minimax search.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Level selects how the engine plays. Every level above LevelRandom is optimal.
type Level int

const (
	LevelRandom  Level = 0
	LevelOptimal Level = 1
)

func (that Level) IsRandom() bool {
	return that == LevelRandom
}

// Result is the outcome of a search. Value is seen from the engine's side:
// +1 forced win, 0 draw, -1 forced loss.
type Result struct {
	Move  entity.Cell
	Value int
	Nodes int
}

type Option func(*Engine)

// WithRand - sets the generator used by the random level.
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) {
		e.rnd = rnd
	}
}

// WithSeed - seeds the generator used by the random level.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rnd = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

type Engine struct {
	logger *slog.Logger

	// guards rnd, which is not safe for concurrent use
	mu  sync.Mutex
	rnd *rand.Rand
}

func New(options ...Option) *Engine {
	engine := &Engine{}
	for _, option := range options {
		option(engine)
	}

	if engine.rnd == nil {
		engine.rnd = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	if engine.logger == nil {
		engine.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engine.logger = engine.logger.With("component", "engine")

	return engine
}

// ChooseMove - returns the move engineSide should play on board.
func (that *Engine) ChooseMove(board entity.Board, level Level, engineSide entity.Mark) (entity.Cell, error) {
	log := that.logger.With("method", "ChooseMove", "side", engineSide.String(), "level", int(level))

	if level < LevelRandom {
		return entity.Cell{}, fmt.Errorf("%w: level %d", apperror.ErrPreconditionViolation, int(level))
	}

	if err := checkSearchable(&board, engineSide); err != nil {
		return entity.Cell{}, err
	}

	if level.IsRandom() {
		move := that.randomCell(board.EmptyCells())
		log.Debug("engine has chosen a random move", "move", move.String())

		return move, nil
	}

	result, err := that.Search(board, engineSide)
	if err != nil {
		return entity.Cell{}, fmt.Errorf("search failed: %w", err)
	}

	log.Debug("engine has chosen a move", "move", result.Move.String(), "eval", result.Value, "nodes", result.Nodes)

	return result.Move, nil
}

// Search - runs minimax from board with engineSide to move. The caller's board is never modified.
func (that *Engine) Search(board entity.Board, engineSide entity.Mark) (Result, error) {
	if err := checkSearchable(&board, engineSide); err != nil {
		return Result{}, err
	}

	s := newSearcher(engineSide)
	value, move := s.minimax(board, engineSide)

	return Result{Move: move, Value: value, Nodes: s.nodes}, nil
}

func (that *Engine) randomCell(cells []entity.Cell) entity.Cell {
	that.mu.Lock()
	defer that.mu.Unlock()

	return cells[that.rnd.Intn(len(cells))]
}

func checkSearchable(board *entity.Board, side entity.Mark) error {
	if !side.IsSide() {
		return fmt.Errorf("%w: engine side is %s", apperror.ErrPreconditionViolation, side)
	}

	if board.IsFull() {
		return fmt.Errorf("%w: board is full", apperror.ErrPreconditionViolation)
	}

	if winner, line := board.TerminalState(); winner != entity.Empty {
		return fmt.Errorf("%w: %s already won by %s", apperror.ErrPreconditionViolation, winner, line)
	}

	return nil
}
