package game

import "github.com/pkg/errors"

var (
	// ErrInvalidAction is returned when an action is out of range or not legal
	// in the given state.
	ErrInvalidAction = errors.New("invalid action")

	// ErrPreconditionViolated is returned when a search or agent is called
	// with arguments it cannot work with.
	ErrPreconditionViolated = errors.New("precondition violated")
)
