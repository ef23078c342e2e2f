package searcher

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"zerosum/game"
)

var ttt = game.NewTicTacToe(3)

func board(t *testing.T, s string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(s)
	require.NoError(t, err)
	return b
}

// walk calls fn on every node of the tree rooted at n.
func walk[S any](n *node[S], fn func(*node[S])) {
	fn(n)
	for _, child := range n.children {
		walk(child, fn)
	}
}

func TestMCTSConvergence(t *testing.T) {
	const trials = 5
	positions := []struct {
		name  string
		board string
		actor game.Actor
	}{
		{name: "winning in one move", board: "oo-|xx-|---", actor: game.Player1},
		{name: "blocking an imminent loss", board: "xx-|-o-|---", actor: game.Player1},
		{name: "winning in one move as Player2", board: "xx-|oo-|o--", actor: game.Player2},
	}

	for _, p := range positions {
		t.Run(p.name, func(t *testing.T) {
			state := board(t, p.board)
			_, optimal, err := Minimax[game.Board](ttt, state, 9, p.actor)
			require.NoError(t, err)

			agree := 0
			for seed := uint64(1); seed <= trials; seed++ {
				m := NewMCTS[game.Board](ttt, WithSimulations(2000), WithSeed(seed))
				action, err := m.Search(state, p.actor)
				require.NoError(t, err)

				// Compare by value: several moves can be equally good
				next, nextActor, err := ttt.NextState(state, p.actor, action)
				require.NoError(t, err)
				_, value, err := Minimax[game.Board](ttt, next, 8, nextActor)
				require.NoError(t, err)
				if value == optimal {
					agree++
				}
			}
			require.GreaterOrEqual(t, agree, trials-1, "MCTS should pick a minimax-optimal action in most trials")
		})
	}
}

func TestMCTSVisitAccounting(t *testing.T) {
	const simulations = 500
	m := NewMCTS[game.Board](ttt, WithSimulations(simulations), WithSeed(42))

	root, err := m.buildTree(board(t, "o--|-x-|---"), game.Player1)
	require.NoError(t, err)

	require.Equal(t, simulations, root.visits, "Root should be visited once per simulation")
	sum := 0
	for _, child := range root.children {
		sum += child.visits
	}
	require.Equal(t, simulations, sum, "Every simulation on a non-terminal root should pass through one child")

	walk(root, func(n *node[game.Board]) {
		require.Equal(t, 0, n.tally[game.Ongoing], "Simulations should always resolve")
		require.Equal(t, n.visits, n.tally[game.Win]+n.tally[game.Loss]+n.tally[game.Draw],
			"Visits should equal the tallied results")
		require.Positive(t, n.visits, "Every node is visited when created")
		if n.parent != nil {
			require.Equal(t, n.parent.actor.Opposite(), n.actor, "Actors should alternate at every edge")
			require.Equal(t, game.Player1, n.perspective)
		}
		if n.terminal() {
			require.Empty(t, n.children, "Terminal nodes should not be expanded")
		}
	})
}

func TestMCTSExpandsEveryRootMove(t *testing.T) {
	m := NewMCTS[game.Board](ttt, WithSimulations(100), WithSeed(3))

	root, err := m.buildTree(ttt.InitialState(), game.Player1)
	require.NoError(t, err)

	require.Len(t, root.children, 9, "Root should expand all legal moves")
	require.Empty(t, root.untried)
}

func TestMCTSDeterministicWithSeed(t *testing.T) {
	state := board(t, "o--|-x-|---")

	first, err := NewMCTS[game.Board](ttt, WithSimulations(300), WithSeed(7)).Search(state, game.Player1)
	require.NoError(t, err)
	second, err := NewMCTS[game.Board](ttt, WithSimulations(300), WithSeed(7)).Search(state, game.Player1)
	require.NoError(t, err)

	require.Equal(t, first, second, "Same seed should give the same search")
}

func TestMCTSMetrics(t *testing.T) {
	const simulations = 200
	m := NewMCTS[game.Board](ttt, WithSimulations(simulations), WithSeed(5), WithExploration(1.0), WithMetrics())

	action, metric, err := m.SearchWithMetric(board(t, "oo-|xx-|---"), game.Player1)

	require.NoError(t, err)
	require.Equal(t, game.Action(2), action)
	require.Equal(t, simulations, metric.Simulations)
	require.Equal(t, 1.0, metric.Exploration)
	require.Equal(t, simulations, metric.Episodes)
	require.Equal(t, simulations, metric.FullPlayouts+metric.TerminalHits,
		"Every simulation either rolls out or stops on a terminal node")
	require.Positive(t, metric.TerminalHits, "Winning child is terminal")
	require.Greater(t, metric.TreeSize, 1)
}

func TestMCTSPreconditions(t *testing.T) {
	t.Run("zero simulations", func(t *testing.T) {
		_, err := Search[game.Board](ttt, ttt.InitialState(), game.Player1, 0)

		require.True(t, errors.Is(err, game.ErrPreconditionViolated), "Zero simulations should be rejected")
	})

	t.Run("terminal root has no child to return", func(t *testing.T) {
		_, err := Search[game.Board](ttt, board(t, "ooo|xx-|---"), game.Player2, 50)

		require.True(t, errors.Is(err, game.ErrPreconditionViolated))
	})

	t.Run("invalid actor", func(t *testing.T) {
		_, err := Search[game.Board](ttt, ttt.InitialState(), game.Actor(0), 10)

		require.True(t, errors.Is(err, game.ErrPreconditionViolated))
	})

	t.Run("options ignore invalid values", func(t *testing.T) {
		m := NewMCTS[game.Board](ttt, WithSimulations(-1), WithExploration(-2))

		require.Equal(t, DefaultSimulations, m.Simulations())
		require.Equal(t, Exploration, m.exploration)
	})
}

func TestMCTSForcedPass(t *testing.T) {
	// Root can only pass, then one move is left before a draw
	model := mockModel{size: 3, afterMoves: []game.Action{1}, drawAfter: 2}

	m := NewMCTS[mockState](model, WithSimulations(1), WithSeed(1))
	root, err := m.buildTree(mockState{}, game.Player1)
	require.NoError(t, err)

	require.Len(t, root.children, 1)
	require.Equal(t, model.PassAction(), root.children[0].action, "Root should expand the pass action")
	require.Equal(t, 1, root.children[0].tally[game.Draw], "Rollout should reach the draw")
}

func TestMCTSModelErrors(t *testing.T) {
	model := mockModel{size: 3, err: game.ErrInvalidAction}

	_, err := NewMCTS[mockState](model, WithSimulations(5)).Search(mockState{legal: []game.Action{0}}, game.Player1)

	require.True(t, errors.Is(err, game.ErrInvalidAction))
}
