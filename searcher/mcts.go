package searcher

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"zerosum/experiments/metrics"
	"zerosum/game"
)

const DefaultSimulations = 1000

type options struct {
	simulations int
	exploration float64
	seed        uint64
	metrics     metrics.Collector
}

type Option func(o *options)

func WithSimulations(simulations int) Option {
	return func(o *options) {
		if simulations > 0 {
			o.simulations = simulations
		}
	}
}

func WithExploration(c float64) Option {
	return func(o *options) {
		if c >= 0 {
			o.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = metrics.NewCollector()
	}
}

// MCTS is a UCT searcher. It builds a fresh tree on every call to Search and
// owns a random source, so a value must not be used from several goroutines.
type MCTS[S any] struct {
	model       game.Model[S]
	simulations int
	exploration float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

func NewMCTS[S any](model game.Model[S], opts ...Option) *MCTS[S] {
	o := &options{ // Default values
		simulations: DefaultSimulations,
		exploration: Exploration,
		seed:        uint64(time.Now().UnixNano()),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &MCTS[S]{
		model:       model,
		simulations: o.simulations,
		exploration: o.exploration,
		rng:         rand.New(rand.NewSource(o.seed)),
		metrics:     o.metrics,
	}
}

// Search runs a UCT search with the given number of simulations and returns
// the action of the root child with the best empirical value.
func Search[S any](model game.Model[S], state S, actor game.Actor, simulations int) (game.Action, error) {
	m := NewMCTS(model)
	m.simulations = simulations
	return m.Search(state, actor)
}

func (m *MCTS[S]) Simulations() int {
	return m.simulations
}

func (m *MCTS[S]) Search(state S, actor game.Actor) (game.Action, error) {
	action, _, err := m.SearchWithMetric(state, actor)
	return action, err
}

// SearchWithMetric is Search that also returns the metrics collected during
// the search. Metrics are zero unless the engine was built WithMetrics.
func (m *MCTS[S]) SearchWithMetric(state S, actor game.Actor) (game.Action, metrics.SearchMetric, error) {
	root, err := m.buildTree(state, actor)
	if err != nil {
		return game.NoAction, metrics.SearchMetric{}, err
	}
	m.metrics.SetTreeSize(root.size())
	metric := m.metrics.Complete()

	if len(root.children) == 0 {
		return game.NoAction, metric, errors.Wrapf(game.ErrPreconditionViolated,
			"root has no children after %d simulations (outcome %s)", m.simulations, root.outcome)
	}

	best := root.bestChild(Exploitation)
	log.Debug().
		Int("action", int(best.action)).
		Int("visits", best.visits).
		Float64("q", best.q(root.actor)).
		Int("children", len(root.children)).
		Msg("mcts search complete")
	return best.action, metric, nil
}

func (m *MCTS[S]) buildTree(state S, actor game.Actor) (*node[S], error) {
	if !actor.Valid() {
		return nil, errors.Wrapf(game.ErrPreconditionViolated, "actor %d", actor)
	}
	if m.simulations <= 0 {
		return nil, errors.Wrapf(game.ErrPreconditionViolated, "%d simulations", m.simulations)
	}

	root := newNode(m.model, nil, state, actor, game.NoAction)
	m.metrics.Start(m.simulations, m.exploration)
	for i := 0; i < m.simulations; i++ {
		if err := m.simulate(root); err != nil {
			return nil, errors.WithMessagef(err, "simulation %d", i+1)
		}
		m.metrics.AddEpisode()
	}
	return root, nil
}

func (m *MCTS[S]) simulate(root *node[S]) error {
	leaf, err := selectThenExpand(m.model, root, m.exploration)
	if err != nil {
		return err
	}

	var result game.Outcome
	if leaf.terminal() {
		result = leaf.result()
		m.metrics.AddTerminalHit()
	} else {
		result, err = rollout(m.model, leaf.state, leaf.actor, root.actor, m.rng)
		if err != nil {
			return err
		}
		m.metrics.AddFullPlayout()
	}

	backup(leaf, result)
	return nil
}

func selectThenExpand[S any](model game.Model[S], root *node[S], c float64) (*node[S], error) {
	n := root
	for {
		if n.expandable() {
			return n.expand(model)
		}
		if n.terminal() {
			return n, nil
		}
		n = n.bestChild(c)
	}
}

// rollout plays uniformly random legal moves until the game is resolved and
// returns the outcome for perspective.
func rollout[S any](model game.Model[S], state S, actor, perspective game.Actor, rng *rand.Rand) (game.Outcome, error) {
	for !model.Outcome(state, actor).Resolved() {
		action := model.PassAction()
		if moves := game.LegalActions(model, state, actor); len(moves) > 0 {
			action = moves[rng.Intn(len(moves))]
		}

		var err error
		state, actor, err = model.NextState(state, actor, action)
		if err != nil {
			return game.Ongoing, err
		}
	}
	return model.Outcome(state, perspective), nil
}

// backup records result on the leaf and every ancestor up to the root.
func backup[S any](leaf *node[S], result game.Outcome) {
	n := leaf
	for n != nil {
		n = n.backup(result)
	}
}
