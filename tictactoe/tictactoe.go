// Package tictactoe implements the 3x3 game as a searcher capability.
// X is the Maximizer and moves first; a won game is worth +1 for X,
// -1 for O, and a full board 0.
package tictactoe

import (
	"strings"

	"solver/game"
)

type cell int8

const (
	empty cell = iota
	markX
	markO
)

// Position is a board snapshot. It is a value type so it can key the
// searcher's node table directly.
type Position struct {
	cells [9]cell
	turn  game.Player
}

func New() Position {
	return Position{turn: game.Maximizer}
}

var squareNames = [9]string{
	"a1", "b1", "c1",
	"a2", "b2", "c2",
	"a3", "b3", "c3",
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

func (p Position) Player() game.Player {
	return p.turn
}

func (p Position) Actions() []game.Action[Position] {
	if _, over := p.Terminal(); over {
		return nil
	}
	acts := make([]game.Action[Position], 0, 9)
	for i, c := range p.cells {
		if c == empty {
			acts = append(acts, game.Action[Position]{
				Label: squareNames[i],
				Next:  p.play(i),
			})
		}
	}
	return acts
}

func (p Position) NumActions() int {
	if _, over := p.Terminal(); over {
		return 0
	}
	n := 0
	for _, c := range p.cells {
		if c == empty {
			n++
		}
	}
	return n
}

func (p Position) Terminal() (float64, bool) {
	for _, line := range lines {
		a, b, c := p.cells[line[0]], p.cells[line[1]], p.cells[line[2]]
		if a != empty && a == b && b == c {
			if a == markX {
				return 1, true
			}
			return -1, true
		}
	}
	for _, c := range p.cells {
		if c == empty {
			return 0, false
		}
	}
	return 0, true
}

func (p Position) ActionFilters() []game.ActionFilter[Position] {
	return nil
}

func (p Position) play(i int) Position {
	next := p
	if p.turn == game.Maximizer {
		next.cells[i] = markX
	} else {
		next.cells[i] = markO
	}
	next.turn = p.turn.Opponent()
	return next
}

// Play applies a move by label, for driving the game from outside.
func (p Position) Play(label string) (Position, bool) {
	for _, a := range p.Actions() {
		if a.Label == label {
			return a.Next, true
		}
	}
	return p, false
}

func (p Position) String() string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			switch p.cells[row*3+col] {
			case markX:
				b.WriteByte('X')
			case markO:
				b.WriteByte('O')
			default:
				b.WriteByte('.')
			}
		}
		if row < 2 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
