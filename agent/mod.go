package agent

import (
	"github.com/pkg/errors"

	"zerosum/experiments/metrics"
	"zerosum/game"
)

// Agent picks moves for a game. States are always canonical, so the agent
// plays as game.Player1.
type Agent[S any] interface {
	ChooseAction(state S) (game.Action, error)
}

// Reporter is implemented by agents that collect search metrics.
type Reporter interface {
	LastMetric() metrics.SearchMetric
}

// checkOngoing rejects states in which the game has already ended.
func checkOngoing[S any](model game.Model[S], state S) error {
	if outcome := model.Outcome(state, game.Player1); outcome.Resolved() {
		return errors.Wrapf(game.ErrPreconditionViolated, "game is over (%s)", outcome)
	}
	return nil
}
