package engine

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"zerosum/agent"
	"zerosum/experiments/metrics"
	"zerosum/game"
)

// Tally counts game results from the point of view of agent 1.
type Tally struct {
	OneWon int
	TwoWon int
	Draws  int
}

func (t Tally) Games() int {
	return t.OneWon + t.TwoWon + t.Draws
}

func (t *Tally) add(winner int) {
	switch winner {
	case 1:
		t.OneWon++
	case 2:
		t.TwoWon++
	default:
		t.Draws++
	}
}

// Game is the record of one finished game.
type Game struct {
	metrics.GameMetric
	Moves []metrics.MoveMetric
}

// Arena plays repeated games between two agents.
type Arena[S any] struct {
	model  game.Model[S]
	agents [2]agent.Agent[S]
}

func NewArena[S any](model game.Model[S], one, two agent.Agent[S]) *Arena[S] {
	return &Arena[S]{model: model, agents: [2]agent.Agent[S]{one, two}}
}

// PlayGame plays one game with agent first (1 or 2) moving first.
func (a *Arena[S]) PlayGame(first int) (Game, error) {
	gameMetric, moves, err := NewLocalEngine(a.model, a.agents, first).Run()
	return Game{GameMetric: gameMetric, Moves: moves}, err
}

// PlayGames plays n games: agent 1 starts the first n/2 and agent 2 starts
// the rest.
func (a *Arena[S]) PlayGames(n int) (Tally, []Game, error) {
	var tally Tally
	if n < 0 {
		return tally, nil, errors.Wrapf(game.ErrPreconditionViolated, "%d games", n)
	}
	games := make([]Game, 0, n)
	for i := 0; i < n; i++ {
		first := 1
		if i >= n/2 {
			first = 2
		}

		g, err := a.PlayGame(first)
		if err != nil {
			return tally, games, errors.WithMessagef(err, "game %d", i+1)
		}
		tally.add(g.Winner)
		games = append(games, g)

		log.Info().Msgf("game %d/%d: agent %d started, winner %d after %d moves (%s)",
			i+1, n, first, g.Winner, g.TotalMoves, g.Duration)
	}
	log.Info().Msgf("agent 1 won %d, agent 2 won %d, %d draws", tally.OneWon, tally.TwoWon, tally.Draws)
	return tally, games, nil
}
