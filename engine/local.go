package engine

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"zerosum/agent"
	"zerosum/experiments/metrics"
	"zerosum/game"
)

// LocalEngine plays a single game between two in-process agents. The starting
// agent plays as game.Player1 and moves first.
type LocalEngine[S any] struct {
	model    game.Model[S]
	agents   [2]agent.Agent[S]
	first    int
	maxMoves int
}

// NewLocalEngine pits agents[0] (agent 1) against agents[1] (agent 2).
// first is the number of the starting agent, 1 or 2.
func NewLocalEngine[S any](model game.Model[S], agents [2]agent.Agent[S], first int) *LocalEngine[S] {
	if first != 1 && first != 2 {
		panic("starting agent must be 1 or 2")
	}
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	return &LocalEngine[S]{model: model, agents: agents, first: first, maxMoves: MaxMoves}
}

// agentFor returns the number (1 or 2) of the agent playing actor.
func (e *LocalEngine[S]) agentFor(actor game.Actor) int {
	if actor == game.Player1 {
		return e.first
	}
	return 3 - e.first
}

func (e *LocalEngine[S]) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingAgent: e.first,
		StartTime:     time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("agent %d is starting", e.first)

	state, actor := e.model.InitialState(), game.Player1
	step := 0
	for !e.model.Outcome(state, game.Player1).Resolved() && step < e.maxMoves {
		step++
		current := e.agentFor(actor)
		canonical := e.model.CanonicalForm(state, actor)

		start := time.Now()
		action, err := e.agents[current-1].ChooseAction(canonical)
		if err != nil {
			return gameMetric, moveMetrics, errors.WithMessagef(err, "agent %d at move %d", current, step)
		}
		moveMetric := metrics.MoveMetric{
			Step:     step,
			Actor:    int(actor),
			Agent:    current,
			Action:   int(action),
			Duration: time.Since(start),
		}
		if reporter, ok := e.agents[current-1].(agent.Reporter); ok {
			moveMetric.SearchMetric = reporter.LastMetric()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		if !game.IsValid(e.model, canonical, game.Player1, action) {
			return gameMetric, moveMetrics, errors.Wrapf(game.ErrInvalidAction,
				"agent %d played %d at move %d", current, action, step)
		}
		state, actor, err = e.model.NextState(state, actor, action)
		if err != nil {
			return gameMetric, moveMetrics, errors.WithMessagef(err, "move %d", step)
		}
	}

	outcome := e.model.Outcome(state, game.Player1)
	log.Debug().Str("outcome", outcome.String()).Float64("value", outcome.Value()).Int("moves", step).Msg("game over for player1")
	switch outcome {
	case game.Win:
		gameMetric.Winner = e.agentFor(game.Player1)
	case game.Loss:
		gameMetric.Winner = e.agentFor(game.Player2)
	case game.Ongoing:
		log.Warn().Msgf("game stopped after %d moves without a result", step)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	return gameMetric, moveMetrics, nil
}
