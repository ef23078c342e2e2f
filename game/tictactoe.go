package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Board is an n*n tic-tac-toe board in row-major order. Cells hold +1 for
// Player1, -1 for Player2 and 0 when empty. A Board is never modified after
// it has been handed out.
type Board []int8

const (
	player1Mark = 'o'
	player2Mark = 'x'
	emptyMark   = '-'
)

// ParseBoard reads a board written with 'o' (Player1), 'x' (Player2) and
// '-' or '.' (empty). Whitespace and '|' separators are ignored.
func ParseBoard(s string) (Board, error) {
	board := Board{}
	for _, r := range s {
		switch r {
		case player1Mark, 'O':
			board = append(board, int8(Player1))
		case player2Mark, 'X':
			board = append(board, int8(Player2))
		case emptyMark, '.':
			board = append(board, 0)
		case ' ', '\n', '\t', '|':
		default:
			return nil, errors.Errorf("unexpected character %q in board %q", r, s)
		}
	}
	n := 1
	for n*n < len(board) {
		n++
	}
	if n*n != len(board) || n < 2 {
		return nil, errors.Errorf("board %q has %d cells, want a square of at least 2x2", s, len(board))
	}
	return board, nil
}

// Size returns the side length of the board.
func (b Board) Size() int {
	n := 0
	for n*n < len(b) {
		n++
	}
	return n
}

func (b Board) String() string {
	n := b.Size()
	var sb strings.Builder
	for i, cell := range b {
		if i > 0 && i%n == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte(mark(cell))
	}
	return sb.String()
}

func mark(cell int8) byte {
	switch Actor(cell) {
	case Player1:
		return player1Mark
	case Player2:
		return player2Mark
	default:
		return emptyMark
	}
}

func (b Board) copy() Board {
	c := make(Board, len(b))
	copy(c, b)
	return c
}

// hasWon checks every row, column and both diagonals for n marks of actor.
func (b Board) hasWon(actor Actor, n int) bool {
	if len(b) != n*n {
		return false
	}
	want := int8(actor)
	diag, anti := true, true
	for i := 0; i < n; i++ {
		row, col := true, true
		for j := 0; j < n; j++ {
			row = row && b[i*n+j] == want
			col = col && b[j*n+i] == want
		}
		if row || col {
			return true
		}
		diag = diag && b[i*n+i] == want
		anti = anti && b[i*n+n-1-i] == want
	}
	return diag || anti
}

func (b Board) hasEmpty() bool {
	for _, cell := range b {
		if cell == 0 {
			return true
		}
	}
	return false
}

// TicTacToe implements Model for n-in-a-row on an n*n board.
type TicTacToe struct {
	n int
}

// NewTicTacToe returns the model for an n*n board. n must be at least 2.
func NewTicTacToe(n int) *TicTacToe {
	if n < 2 {
		panic("tic-tac-toe board must be at least 2x2")
	}
	return &TicTacToe{n: n}
}

func (t *TicTacToe) InitialState() Board {
	return make(Board, t.n*t.n)
}

func (t *TicTacToe) ActionSize() int {
	return t.n*t.n + 1
}

func (t *TicTacToe) PassAction() Action {
	return Action(t.n * t.n)
}

func (t *TicTacToe) ValidMoves(board Board, actor Actor) []bool {
	valids := make([]bool, t.ActionSize())
	if t.Outcome(board, actor).Resolved() {
		valids[t.PassAction()] = true
		return valids
	}
	open := false
	for i, cell := range board {
		if cell == 0 {
			valids[i] = true
			open = true
		}
	}
	if !open {
		valids[t.PassAction()] = true
	}
	return valids
}

func (t *TicTacToe) NextState(board Board, actor Actor, action Action) (Board, Actor, error) {
	if !actor.Valid() {
		return nil, 0, errors.Wrapf(ErrPreconditionViolated, "actor %d", actor)
	}
	if len(board) != t.n*t.n {
		return nil, 0, errors.Wrapf(ErrPreconditionViolated, "board has %d cells, want %d", len(board), t.n*t.n)
	}
	if action == t.PassAction() {
		if !t.ValidMoves(board, actor)[action] {
			return nil, 0, errors.Wrap(ErrInvalidAction, "pass while ordinary moves are legal")
		}
		return board, actor.Opposite(), nil
	}
	if action < 0 || int(action) >= len(board) {
		return nil, 0, errors.Wrapf(ErrInvalidAction, "action %d out of range [0, %d)", action, t.ActionSize())
	}
	if board[action] != 0 {
		return nil, 0, errors.Wrapf(ErrInvalidAction, "cell %d is occupied", action)
	}
	if t.Outcome(board, actor).Resolved() {
		return nil, 0, errors.Wrapf(ErrInvalidAction, "action %d played after the game ended", action)
	}
	next := board.copy()
	next[action] = int8(actor)
	return next, actor.Opposite(), nil
}

func (t *TicTacToe) Outcome(board Board, actor Actor) Outcome {
	if board.hasWon(actor, t.n) {
		return Win
	}
	if board.hasWon(actor.Opposite(), t.n) {
		return Loss
	}
	if board.hasEmpty() {
		return Ongoing
	}
	return Draw
}

func (t *TicTacToe) CanonicalForm(board Board, actor Actor) Board {
	canonical := make(Board, len(board))
	for i, cell := range board {
		canonical[i] = cell * int8(actor)
	}
	return canonical
}

func (t *TicTacToe) Key(board Board) string {
	key := make([]byte, len(board))
	for i, cell := range board {
		key[i] = mark(cell)
	}
	return string(key)
}
