package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/engine"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.MatchState) error
	GetByID(ctx context.Context, id string) (*entity.MatchState, error)
	DeleteByID(ctx context.Context, id string) error
}

// lockStripes bounds the lock table; ids sharing a stripe are serialised together.
const lockStripes = 64

type decisionEngine interface {
	ChooseMove(board entity.Board, level engine.Level, engineSide entity.Mark) (entity.Cell, error)
}

// MatchDefaults are applied to every match the manager creates.
type MatchDefaults struct {
	ComputerSide entity.Mark
	Level        engine.Level
}

// MatchManager keeps matches in a repository and plays the computer's
// replies. Calls for the same match id are serialised.
type MatchManager struct {
	logger    *slog.Logger
	matchRepo matchRepo
	engine    decisionEngine
	defaults  MatchDefaults

	locks [lockStripes]sync.Mutex
}

func NewMatchManager(logger *slog.Logger, matchRepo matchRepo, decider decisionEngine, defaults MatchDefaults) *MatchManager {
	return &MatchManager{
		logger:    logger.With("component", "match_manager"),
		matchRepo: matchRepo,
		engine:    decider,
		defaults:  defaults,
	}
}

// CreateMatch - starts a match under a new id. The computer opens right away
// when it plays Player.
func (that *MatchManager) CreateMatch(ctx context.Context, mode entity.Mode) (*entity.MatchState, error) {
	log := that.logger.With("method", "CreateMatch")

	id := uuid.NewString()

	unlock := that.lock(id)
	defer unlock()

	match := tictactoe.NewMatch(that.engine,
		tictactoe.WithMode(mode),
		tictactoe.WithComputerSide(that.defaults.ComputerSide),
		tictactoe.WithLevel(that.defaults.Level),
	)

	if err := that.playComputerIfDue(match, id); err != nil {
		return nil, err
	}

	state := match.Snapshot(id)
	if err := that.matchRepo.CreateOrUpdate(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Info("match created", "match_id", id, "mode", mode.String())

	return state, nil
}

func (that *MatchManager) GetMatch(ctx context.Context, id string) (*entity.MatchState, error) {
	state, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return state, nil
}

func (that *MatchManager) DeleteMatch(ctx context.Context, id string) error {
	log := that.logger.With("method", "DeleteMatch")

	unlock := that.lock(id)
	defer unlock()

	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	log.Info("match deleted", "match_id", id)

	return nil
}

// MakeMove - applies a human move and, when the computer is to move next,
// its reply in the same call.
func (that *MatchManager) MakeMove(ctx context.Context, id string, row, col int) (*entity.MatchState, error) {
	return that.update(ctx, id, func(match *tictactoe.Match) error {
		if match.IsComputerTurn() {
			return fmt.Errorf("%w: waiting for the computer", apperror.ErrInvalidTurn)
		}

		if _, err := match.ApplyMove(row, col); err != nil {
			return fmt.Errorf("failed to make move: %w", err)
		}

		return that.playComputerIfDue(match, id)
	})
}

func (that *MatchManager) ComputerMove(ctx context.Context, id string) (*entity.MatchState, error) {
	return that.update(ctx, id, func(match *tictactoe.Match) error {
		if _, err := match.RequestComputerMove(); err != nil {
			return fmt.Errorf("failed to make computer move: %w", err)
		}

		return nil
	})
}

// SetMode - changes the mode without touching the board. Switching to
// human vs computer on the computer's turn plays its move.
func (that *MatchManager) SetMode(ctx context.Context, id string, mode entity.Mode) (*entity.MatchState, error) {
	return that.update(ctx, id, func(match *tictactoe.Match) error {
		match.SetMode(mode)

		return that.playComputerIfDue(match, id)
	})
}

func (that *MatchManager) Reset(ctx context.Context, id string) (*entity.MatchState, error) {
	return that.update(ctx, id, func(match *tictactoe.Match) error {
		match.Reset()

		return that.playComputerIfDue(match, id)
	})
}

// update loads the match, applies fn and stores the result. Nothing is
// stored when fn fails.
func (that *MatchManager) update(ctx context.Context, id string, fn func(match *tictactoe.Match) error) (*entity.MatchState, error) {
	unlock := that.lock(id)
	defer unlock()

	state, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	match, err := tictactoe.Restore(state, that.engine)
	if err != nil {
		return nil, fmt.Errorf("failed to restore match %s: %w", id, err)
	}

	if err = fn(match); err != nil {
		return nil, err
	}

	updated := match.Snapshot(id)
	if err = that.matchRepo.CreateOrUpdate(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return updated, nil
}

func (that *MatchManager) playComputerIfDue(match *tictactoe.Match, id string) error {
	if !match.IsComputerTurn() {
		return nil
	}

	move, err := match.RequestComputerMove()
	if err != nil {
		return fmt.Errorf("failed to make computer move: %w", err)
	}

	that.logger.Debug("computer moved", "match_id", id, "cell", move.String(), "state", match.State().String())

	return nil
}

func (that *MatchManager) lock(id string) func() {
	mu := &that.locks[stripe(id)]
	mu.Lock()

	return mu.Unlock
}

func stripe(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	return h.Sum32() % lockStripes
}
