package searcher

import (
	"github.com/pkg/errors"

	"zerosum/game"
)

// Minimax searches depth plies ahead of state with actor to move and returns
// the best action with its value: +1 when Player1 wins, -1 when Player2 wins
// and 0 for draws and branches the depth did not resolve. Player1 maximizes,
// Player2 minimizes, and among equal values the lowest action index wins.
//
// NoAction is returned when depth is 0, when state is already won, or when
// actor can only pass.
func Minimax[S any](model game.Model[S], state S, depth int, actor game.Actor) (game.Action, float64, error) {
	if depth < 0 {
		return game.NoAction, 0, errors.Wrapf(game.ErrPreconditionViolated, "depth %d", depth)
	}
	if !actor.Valid() {
		return game.NoAction, 0, errors.Wrapf(game.ErrPreconditionViolated, "actor %d", actor)
	}

	action, value, err := minimax(model, state, depth, actor)
	if err != nil {
		return game.NoAction, 0, errors.WithMessage(err, "minimax")
	}
	return action, value, nil
}

func minimax[S any](model game.Model[S], state S, depth int, actor game.Actor) (game.Action, float64, error) {
	if value := evaluate(model, state); depth == 0 || value != 0 {
		return game.NoAction, value, nil
	}

	valids := model.ValidMoves(state, actor)
	if valids[len(valids)-1] { // Only the pass action is legal
		return game.NoAction, 0, nil
	}

	best := game.NoAction
	bestValue := 0.0
	for i, valid := range valids[:len(valids)-1] {
		if !valid {
			continue
		}
		action := game.Action(i)
		next, _, err := model.NextState(state, actor, action)
		if err != nil {
			return game.NoAction, 0, err
		}
		_, value, err := minimax(model, next, depth-1, actor.Opposite())
		if err != nil {
			return game.NoAction, 0, err
		}

		if best == game.NoAction || improves(actor, value, bestValue) {
			best = action
			bestValue = value
		}
	}
	return best, bestValue, nil
}

// improves reports whether value is strictly better than current for actor.
func improves(actor game.Actor, value, current float64) bool {
	if actor == game.Player1 {
		return value > current
	}
	return value < current
}

// evaluate scores state from Player1's side: only wins count, draws are 0.
func evaluate[S any](model game.Model[S], state S) float64 {
	switch outcome := model.Outcome(state, game.Player1); outcome {
	case game.Win, game.Loss:
		return outcome.Value()
	default:
		return 0
	}
}
