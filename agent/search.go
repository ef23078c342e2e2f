package agent

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"zerosum/experiments/metrics"
	"zerosum/game"
	"zerosum/searcher"
)

// DefaultDepth searches tic-tac-toe to the end from any position.
const DefaultDepth = 10

type minimaxAgent[S any] struct {
	model game.Model[S]
	depth int
}

// NewMinimax returns an agent that plays the minimax move found depth plies ahead.
func NewMinimax[S any](model game.Model[S], depth int) Agent[S] {
	return minimaxAgent[S]{model: model, depth: depth}
}

func (a minimaxAgent[S]) ChooseAction(state S) (game.Action, error) {
	if err := checkOngoing(a.model, state); err != nil {
		return game.NoAction, err
	}

	action, value, err := searcher.Minimax(a.model, state, a.depth, game.Player1)
	if err != nil {
		return game.NoAction, err
	}
	if action == game.NoAction {
		pass := a.model.PassAction()
		if !game.IsValid(a.model, state, game.Player1, pass) {
			return game.NoAction, errors.Wrapf(game.ErrPreconditionViolated, "no move found at depth %d", a.depth)
		}
		action = pass
	}

	log.Debug().Int("action", int(action)).Float64("value", value).Int("depth", a.depth).Msg("minimax move")
	return action, nil
}

type mctsAgent[S any] struct {
	model  game.Model[S]
	mcts   *searcher.MCTS[S]
	metric metrics.SearchMetric
}

// NewMCTS returns an agent that plays the move found by a UCT search.
func NewMCTS[S any](model game.Model[S], mcts *searcher.MCTS[S]) Agent[S] {
	return &mctsAgent[S]{model: model, mcts: mcts}
}

func (a *mctsAgent[S]) ChooseAction(state S) (game.Action, error) {
	if err := checkOngoing(a.model, state); err != nil {
		return game.NoAction, err
	}

	action, metric, err := a.mcts.SearchWithMetric(state, game.Player1)
	if err != nil {
		return game.NoAction, err
	}
	a.metric = metric
	return action, nil
}

func (a *mctsAgent[S]) LastMetric() metrics.SearchMetric {
	return a.metric
}
