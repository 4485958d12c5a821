package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

func finishedMatch(id string) *entity.MatchState {
	line := entity.Line{Kind: entity.RowLine, Index: 0}

	return &entity.MatchState{
		ID:           id,
		Mode:         entity.HumanVsComputer,
		ComputerSide: entity.Opponent,
		Level:        1,
		Moves: []entity.Cell{
			{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2},
		},
		Board: [entity.Size][entity.Size]entity.Mark{
			{entity.Player, entity.Player, entity.Player},
			{entity.Opponent, entity.Opponent, entity.Empty},
			{entity.Empty, entity.Empty, entity.Empty},
		},
		SideToMove: entity.Player,
		State:      entity.StateOver,
		Outcome:    entity.Outcome{Status: entity.StatusWin, Winner: entity.Player, Line: &line},
	}
}

// testMatchRepository runs the behaviour every MatchRepository must share.
func testMatchRepository(t *testing.T, ctx context.Context, newRepo func() MatchRepository) {
	t.Helper()

	t.Run("CreateOrUpdate_Success", func(t *testing.T) {
		repo := newRepo()

		// Given: a finished match
		match := finishedMatch("m-create")

		// When: CreateOrUpdate is called
		err := repo.CreateOrUpdate(ctx, match)

		// Then: no error should be returned, and the match can be read back
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, match, stored)
	})

	t.Run("CreateOrUpdate_Overwrites", func(t *testing.T) {
		repo := newRepo()

		// Given: a stored match
		match := &entity.MatchState{ID: "m-update", ComputerSide: entity.Opponent, Moves: []entity.Cell{}}
		require.NoError(t, repo.CreateOrUpdate(ctx, match))

		// When: it is saved again with a move
		match.Moves = append(match.Moves, entity.Cell{Row: 1, Col: 1})
		match.SideToMove = entity.Opponent
		require.NoError(t, repo.CreateOrUpdate(ctx, match))

		// Then: the latest version is returned
		stored, err := repo.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, []entity.Cell{{Row: 1, Col: 1}}, stored.Moves)
		assert.Equal(t, entity.Opponent, stored.SideToMove)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		repo := newRepo()

		// When: GetByID is called with a non-existent id
		stored, err := repo.GetByID(ctx, "9999999")

		// Then: an ErrMatchNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
		assert.Nil(t, stored)
	})

	t.Run("DeleteByID_Success", func(t *testing.T) {
		repo := newRepo()

		// Given: a stored match
		match := finishedMatch("m-delete")
		require.NoError(t, repo.CreateOrUpdate(ctx, match))

		// When: DeleteByID is called
		err := repo.DeleteByID(ctx, match.ID)

		// Then: no error should be returned and the match is gone
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, match.ID)
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		repo := newRepo()

		// When: DeleteByID is called with a non-existent id
		err := repo.DeleteByID(ctx, "9999999")

		// Then: an ErrMatchNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})
}
