package agent

import (
	"golang.org/x/exp/rand"

	"zerosum/game"
)

type randomAgent[S any] struct {
	model game.Model[S]
	rng   *rand.Rand
}

// NewRandom returns an agent that plays a uniformly random legal move.
func NewRandom[S any](model game.Model[S], seed uint64) Agent[S] {
	return &randomAgent[S]{model: model, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[S]) ChooseAction(state S) (game.Action, error) {
	if err := checkOngoing(a.model, state); err != nil {
		return game.NoAction, err
	}

	moves := game.LegalActions(a.model, state, game.Player1)
	if len(moves) == 0 {
		return a.model.PassAction(), nil
	}
	return moves[a.rng.Intn(len(moves))], nil
}
