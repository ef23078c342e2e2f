package searcher

import (
	"math"

	"zerosum/game"
)

type node[S any] struct {
	parent   *node[S] // Not owned, nil for the root
	children []*node[S]

	state  S
	actor  game.Actor  // Actor to move in state
	action game.Action // Action that led from parent to this node

	// Outcome of state for actor, resolved once at construction
	outcome game.Outcome
	// Actions not expanded yet, empty for terminal nodes
	untried []game.Action

	// Simulation results are outcomes for the root actor (perspective), the
	// same value is recorded on every node along the path
	perspective game.Actor
	tally       [game.NumOutcomes]int
	visits      int
}

func newNode[S any](m game.Model[S], parent *node[S], state S, actor game.Actor, action game.Action) *node[S] {
	perspective := actor
	if parent != nil {
		perspective = parent.perspective
	}

	outcome := m.Outcome(state, actor)
	var untried []game.Action
	if !outcome.Resolved() {
		untried = game.LegalActions(m, state, actor)
		if len(untried) == 0 { // Forced pass
			untried = []game.Action{m.PassAction()}
		}
	}

	return &node[S]{
		parent:      parent,
		state:       state,
		actor:       actor,
		action:      action,
		outcome:     outcome,
		untried:     untried,
		perspective: perspective,
	}
}

func (n *node[S]) terminal() bool {
	return n.outcome.Resolved()
}

func (n *node[S]) expandable() bool {
	return len(n.untried) > 0
}

// expand pops an untried action and adds the resulting child.
func (n *node[S]) expand(m game.Model[S]) (*node[S], error) {
	last := len(n.untried) - 1
	action := n.untried[last]

	state, actor, err := m.NextState(n.state, n.actor, action)
	if err != nil {
		return nil, err
	}
	n.untried = n.untried[:last]
	if actor != n.actor.Opposite() {
		panic("model did not alternate actors")
	}

	child := newNode(m, n, state, actor, action)
	n.children = append(n.children, child)
	return child, nil
}

// result returns the resolved outcome of a terminal node for the perspective actor.
func (n *node[S]) result() game.Outcome {
	if n.actor == n.perspective {
		return n.outcome
	}
	return n.outcome.Flip()
}

func (n *node[S]) backup(result game.Outcome) *node[S] {
	n.visits++
	n.tally[result]++
	return n.parent
}

// wins counts the simulations recorded on this node that actor won.
func (n *node[S]) wins(actor game.Actor) int {
	if actor == n.perspective {
		return n.tally[game.Win]
	}
	return n.tally[game.Loss]
}

// q is the net number of wins of the node for actor.
func (n *node[S]) q(actor game.Actor) float64 {
	return float64(n.wins(actor) - n.wins(actor.Opposite()))
}

// bestChild picks the child maximizing UCB1 for the actor to move at n, that
// is the actor who chose the move into the child. Ties keep the first child.
func (n *node[S]) bestChild(c float64) *node[S] {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCT(c, n.visits)

	var best *node[S]
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		score := policy.evaluate(child.q(n.actor), child.visits)
		if score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

func (n *node[S]) size() int {
	size := 1
	for _, child := range n.children {
		size += child.size()
	}
	return size
}
