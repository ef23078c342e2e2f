package game

// Actor is one of the two opposing sides. The numeric values match the sign
// convention of canonical boards: Player1 pieces are +1, Player2 pieces are -1.
type Actor int8

const (
	Player1 Actor = 1
	Player2 Actor = -1
)

// Opposite returns the actor that moves after a.
func (a Actor) Opposite() Actor {
	if a == Player1 {
		return Player2
	}
	return Player1
}

func (a Actor) Valid() bool {
	return a == Player1 || a == Player2
}

func (a Actor) String() string {
	switch a {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "invalid"
	}
}

// Action indexes a fixed action space of size cells+1. The last index is the
// pass action, legal only when no ordinary move is.
type Action int

// NoAction is returned by searches that did not pick any move.
const NoAction Action = -1

// Outcome of a game relative to one actor.
type Outcome int

const (
	Ongoing Outcome = iota
	Win
	Loss
	Draw
)

// NumOutcomes is the size of the Outcome set, for fixed-size tallies.
const NumOutcomes = 4

// DrawValue is the numeric value of a draw. It is kept non-zero so a draw can
// be told apart from an unresolved game.
const DrawValue = 1e-4

// Value returns 0 for ongoing games, 1 for a win, -1 for a loss and DrawValue
// for a draw.
func (o Outcome) Value() float64 {
	switch o {
	case Win:
		return 1
	case Loss:
		return -1
	case Draw:
		return DrawValue
	default:
		return 0
	}
}

// Flip returns the same outcome seen by the opponent.
func (o Outcome) Flip() Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	default:
		return o
	}
}

func (o Outcome) Resolved() bool {
	return o != Ongoing
}

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Model supplies the rules of a two-player zero-sum game. States must be
// treated as immutable: every operation returns a new value.
type Model[S any] interface {
	InitialState() S
	// ActionSize is the number of board cells plus one for the pass action.
	ActionSize() int
	PassAction() Action
	// ValidMoves returns an indicator vector of length ActionSize. The pass
	// slot is set iff no ordinary move is legal, which includes ended games.
	ValidMoves(state S, actor Actor) []bool
	// NextState applies action for actor and returns the successor state and
	// actor.Opposite(). Passing leaves the state unchanged.
	NextState(state S, actor Actor, action Action) (S, Actor, error)
	// Outcome reports whether actor has won, lost or drawn in state.
	Outcome(state S, actor Actor) Outcome
	// CanonicalForm normalizes state so that actor is always Player1.
	CanonicalForm(state S, actor Actor) S
	// Key returns a hashable representation of state.
	Key(state S) string
}

// LegalActions lists the legal ordinary actions of actor in increasing order.
// When only the pass action is legal the result is empty.
func LegalActions[S any](m Model[S], state S, actor Actor) []Action {
	valids := m.ValidMoves(state, actor)
	actions := make([]Action, 0, len(valids))
	for i := 0; i < len(valids)-1; i++ {
		if valids[i] {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

// IsValid reports whether action is legal for actor in state.
func IsValid[S any](m Model[S], state S, actor Actor, action Action) bool {
	valids := m.ValidMoves(state, actor)
	if action < 0 || int(action) >= len(valids) {
		return false
	}
	return valids[action]
}
