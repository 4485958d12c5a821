package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// memoryMatch keeps matches in process memory. Stored values are copies, so
// callers never share state with the store.
type memoryMatch struct {
	mu      sync.Mutex
	matches map[string]entity.MatchState
}

func NewMemoryMatchRepository() MatchRepository {
	return &memoryMatch{
		matches: make(map[string]entity.MatchState),
	}
}

func (that *memoryMatch) CreateOrUpdate(_ context.Context, match *entity.MatchState) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.matches[match.ID] = copyMatch(match)

	return nil
}

func (that *memoryMatch) GetByID(_ context.Context, id string) (*entity.MatchState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	match, ok := that.matches[id]
	if !ok {
		return nil, apperror.ErrMatchNotFound
	}

	cp := copyMatch(&match)

	return &cp, nil
}

func (that *memoryMatch) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.matches[id]; !ok {
		return apperror.ErrMatchNotFound
	}

	delete(that.matches, id)

	return nil
}

func copyMatch(match *entity.MatchState) entity.MatchState {
	cp := *match
	cp.Moves = slices.Clone(match.Moves)

	if match.Outcome.Line != nil {
		line := *match.Outcome.Line
		cp.Outcome.Line = &line
	}

	return cp
}
