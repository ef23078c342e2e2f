package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	board, err := ParseBoard(s)
	require.NoError(t, err)
	return board
}

func TestActor(t *testing.T) {
	require.Equal(t, Player2, Player1.Opposite(), "Player1 should be followed by Player2")
	require.Equal(t, Player1, Player2.Opposite(), "Player2 should be followed by Player1")
	require.False(t, Actor(0).Valid(), "Zero is not an actor")
	require.Equal(t, "player2", Player2.String())
}

func TestOutcome(t *testing.T) {
	require.Equal(t, 0.0, Ongoing.Value())
	require.Equal(t, 1.0, Win.Value())
	require.Equal(t, -1.0, Loss.Value())
	require.NotZero(t, Draw.Value(), "Draw should be distinguishable from an ongoing game")
	require.Less(t, Draw.Value(), Win.Value())
	require.Equal(t, Loss, Win.Flip())
	require.Equal(t, Draw, Draw.Flip())
	require.False(t, Ongoing.Resolved())
}

func TestParseBoard(t *testing.T) {
	t.Run("parsing rows with separators", func(t *testing.T) {
		board := mustParse(t, "ox-|---|--x")

		require.Equal(t, Board{1, -1, 0, 0, 0, 0, 0, 0, -1}, board)
		require.Equal(t, 3, board.Size())
		require.Equal(t, "ox-\n---\n--x", board.String())
	})

	t.Run("rejecting unknown characters", func(t *testing.T) {
		_, err := ParseBoard("oz-------")
		require.Error(t, err)
	})

	t.Run("rejecting non-square boards", func(t *testing.T) {
		_, err := ParseBoard("o-x-")
		require.NoError(t, err, "2x2 is a valid square")
		_, err = ParseBoard("o-x--")
		require.Error(t, err)
	})
}

func TestTicTacToeRules(t *testing.T) {
	g := NewTicTacToe(3)

	t.Run("initial board", func(t *testing.T) {
		board := g.InitialState()
		require.Len(t, board, 9)
		require.Equal(t, 10, g.ActionSize())
		require.Equal(t, Action(9), g.PassAction())
		require.Len(t, LegalActions[Board](g, board, Player1), 9, "Every cell should be legal")
		require.Equal(t, Ongoing, g.Outcome(board, Player1))
	})

	t.Run("applying a move", func(t *testing.T) {
		board := g.InitialState()

		next, actor, err := g.NextState(board, Player1, 4)

		require.NoError(t, err)
		require.Equal(t, Player2, actor, "Actor should alternate")
		require.Equal(t, int8(1), next[4])
		require.Equal(t, int8(0), board[4], "Original board should not change")
	})

	t.Run("rejecting occupied and out of range cells", func(t *testing.T) {
		board := mustParse(t, "o--|---|---")

		_, _, err := g.NextState(board, Player2, 0)
		require.True(t, errors.Is(err, ErrInvalidAction), "Occupied cell should be rejected")

		_, _, err = g.NextState(board, Player2, 12)
		require.True(t, errors.Is(err, ErrInvalidAction), "Out of range action should be rejected")

		_, _, err = g.NextState(board, Actor(0), 1)
		require.True(t, errors.Is(err, ErrPreconditionViolated))
	})

	t.Run("passing leaves the board unchanged", func(t *testing.T) {
		board := mustParse(t, "oxo|oxx|xox")

		next, actor, err := g.NextState(board, Player1, g.PassAction())

		require.NoError(t, err)
		require.Equal(t, board, next)
		require.Equal(t, Player2, actor)
	})

	t.Run("rejecting a pass while cells are open", func(t *testing.T) {
		board := g.InitialState()
		require.False(t, IsValid[Board](g, board, Player1, g.PassAction()))

		_, _, err := g.NextState(board, Player1, g.PassAction())
		require.True(t, errors.Is(err, ErrInvalidAction), "Pass should be illegal on an open board")

		_, _, err = g.NextState(mustParse(t, "ox-|-o-|x--"), Player2, g.PassAction())
		require.True(t, errors.Is(err, ErrInvalidAction), "Pass should be illegal while any cell is empty")
	})

	t.Run("detecting wins in rows, columns and diagonals", func(t *testing.T) {
		for _, s := range []string{"ooo|xx-|---", "ox-|ox-|o-x", "ox-|xo-|--o", "x-o|xo-|o--"} {
			board := mustParse(t, s)
			require.Equal(t, Win, g.Outcome(board, Player1), s)
			require.Equal(t, Loss, g.Outcome(board, Player2), s)
		}
	})

	t.Run("detecting a draw", func(t *testing.T) {
		board := mustParse(t, "oxo|oxx|xox")

		require.Equal(t, Draw, g.Outcome(board, Player1))
		require.Equal(t, Draw, g.Outcome(board, Player2))
		require.Equal(t, []bool{false, false, false, false, false, false, false, false, false, true},
			g.ValidMoves(board, Player1), "Only the pass action should be legal")
	})

	t.Run("canonical form flips the pieces for Player2", func(t *testing.T) {
		board := mustParse(t, "ox-|---|---")

		require.Equal(t, board, g.CanonicalForm(board, Player1))
		require.Equal(t, mustParse(t, "xo-|---|---"), g.CanonicalForm(board, Player2))
	})

	t.Run("key is stable and distinguishes boards", func(t *testing.T) {
		a := mustParse(t, "ox-|---|---")
		b := mustParse(t, "xo-|---|---")

		require.Equal(t, "ox-------", g.Key(a))
		require.NotEqual(t, g.Key(a), g.Key(b))
	})
}

func TestTerminalConsistency(t *testing.T) {
	g := NewTicTacToe(3)
	ended := []string{"ooo|xx-|---", "xxx|oo-|o--", "oxo|oxx|xox"}

	for _, s := range ended {
		board := mustParse(t, s)
		for _, actor := range []Actor{Player1, Player2} {
			require.True(t, g.Outcome(board, actor).Resolved(), s)
			require.Empty(t, LegalActions[Board](g, board, actor), "Ended game %s should have no ordinary moves", s)
			require.True(t, IsValid[Board](g, board, actor, g.PassAction()))

			for action := Action(0); action < g.PassAction(); action++ {
				next, _, err := g.NextState(board, actor, action)
				if err == nil {
					t.Fatalf("action %d on ended board %s produced %v", action, s, next)
				}
				require.True(t, errors.Is(err, ErrInvalidAction))
			}
		}
	}
}

func TestLargerBoard(t *testing.T) {
	g := NewTicTacToe(4)
	board := mustParse(t, "oooo|xxx-|----|----")

	require.Equal(t, 17, g.ActionSize())
	require.Equal(t, Win, g.Outcome(board, Player1))
	require.Equal(t, Ongoing, g.Outcome(mustParse(t, "ooo-|xxx-|----|----"), Player1), "Three in a row is not enough on 4x4")
	require.Panics(t, func() { NewTicTacToe(1) })
}
