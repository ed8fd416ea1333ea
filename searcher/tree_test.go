package searcher

import (
	"golang.org/x/exp/rand"

	"solver/game"
)

func testRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// gameSpec declares a test game as an explicit tree: children are
// listed by id (the move label equals the child id), terminals map ids
// to final values, players defaults to Maximizer when unlisted.
type gameSpec struct {
	players   map[string]game.Player
	children  map[string][]string
	terminals map[string]float64
	filters   map[string][]game.ActionFilter[testPos]
}

type testPos struct {
	id string
	g  *gameSpec
}

func (g *gameSpec) pos(id string) testPos {
	return testPos{id: id, g: g}
}

func (p testPos) Player() game.Player {
	return p.g.players[p.id]
}

func (p testPos) Actions() []game.Action[testPos] {
	kids := p.g.children[p.id]
	acts := make([]game.Action[testPos], len(kids))
	for i, k := range kids {
		acts[i] = game.Action[testPos]{Label: k, Next: testPos{id: k, g: p.g}}
	}
	return acts
}

func (p testPos) NumActions() int {
	return len(p.g.children[p.id])
}

func (p testPos) Terminal() (float64, bool) {
	v, ok := p.g.terminals[p.id]
	return v, ok
}

func (p testPos) ActionFilters() []game.ActionFilter[testPos] {
	return p.g.filters[p.id]
}

// oneShotWin is scenario "1-ply win": A is an immediate Maximizer win,
// B an immediate loss.
func oneShotWin() *gameSpec {
	return &gameSpec{
		players:  map[string]game.Player{},
		children: map[string][]string{"root": {"A", "B"}},
		terminals: map[string]float64{
			"A": 1,
			"B": -1,
		},
	}
}

// mateInTwo gives the Maximizer a forced win through a Minimizer node
// with a single reply.
func mateInTwo() *gameSpec {
	return &gameSpec{
		players: map[string]game.Player{"A": game.Minimizer},
		children: map[string][]string{
			"root": {"A", "B"},
			"A":    {"A.t"},
		},
		terminals: map[string]float64{
			"A.t": 1,
			"B":   0,
		},
	}
}

// allLosing makes every root move an immediate loss.
func allLosing() *gameSpec {
	return &gameSpec{
		players:  map[string]game.Player{},
		children: map[string][]string{"root": {"A", "B"}},
		terminals: map[string]float64{
			"A": -1,
			"B": -1,
		},
	}
}

// biasedLanes has three non-terminal root moves whose subtrees always
// roll out to +1 (A) or -1 (B, C). Depth two keeps the root from
// seeing raw terminals directly.
func biasedLanes() *gameSpec {
	return &gameSpec{
		players: map[string]game.Player{
			"A": game.Minimizer, "B": game.Minimizer, "C": game.Minimizer,
		},
		children: map[string][]string{
			"root": {"A", "B", "C"},
			"A":    {"A.1", "A.2"},
			"B":    {"B.1", "B.2"},
			"C":    {"C.1", "C.2"},
		},
		terminals: map[string]float64{
			"A.1": 1, "A.2": 1,
			"B.1": -1, "B.2": -1,
			"C.1": -1, "C.2": -1,
		},
	}
}

func testParams(options ...Option) MCParams {
	p := DefaultParams()
	for _, o := range options {
		o(&p)
	}
	return p
}

func testSearch(g *gameSpec, root string, options ...Option) *search[testPos] {
	return newSearchFor(g.pos(root), testParams(options...))
}

func newSearchFor(root testPos, params MCParams) *search[testPos] {
	return newSearch(root, params, nil, testRng(1), nil, NewNoMetricsCollector())
}
