// Package arrange builds alignment, distribution and size matching commands
// over a set of elements.
//
// All computations happen in world space so elements with different parents
// can be arranged together; the resulting moves are written back as local
// positions. Pass a root selection: an element nested under another member
// would otherwise be moved twice.
//
// Locked elements contribute to the reference bounds but are never moved or
// resized.
package arrange

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/uiforge/pkg/command"
	"github.com/matzehuels/uiforge/pkg/coords"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// ErrTooFew is returned when an operation needs more elements than given.
var ErrTooFew = errors.New("not enough elements")

// Op is an arrangement operation.
type Op int

const (
	AlignLeft Op = iota
	AlignRight
	AlignTop
	AlignBottom
	AlignCenterH
	AlignCenterV
	DistributeH
	DistributeV
	MatchWidth
	MatchHeight
)

var opNames = map[Op]string{
	AlignLeft:    "align-left",
	AlignRight:   "align-right",
	AlignTop:     "align-top",
	AlignBottom:  "align-bottom",
	AlignCenterH: "align-center-h",
	AlignCenterV: "align-center-v",
	DistributeH:  "distribute-h",
	DistributeV:  "distribute-v",
	MatchWidth:   "match-width",
	MatchHeight:  "match-height",
}

// Ops returns every operation in declaration order.
func Ops() []Op {
	ops := make([]Op, 0, len(opNames))
	for op := AlignLeft; op <= MatchHeight; op++ {
		ops = append(ops, op)
	}
	return ops
}

func (op Op) String() string { return opNames[op] }

// ParseOp looks up an operation by name.
func ParseOp(s string) (Op, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, name := range opNames {
		if name == s {
			return op, true
		}
	}
	return 0, false
}

// MinElements returns the number of elements op needs.
func (op Op) MinElements() int {
	switch op {
	case DistributeH, DistributeV:
		return 3
	default:
		return 2
	}
}

type item struct {
	elem  *scene.Element
	world scene.Rect
}

// Plan builds the command that applies op to elems. Alignment targets the
// union of the elements' world bounds; size matching copies the size of the
// first element.
func Plan(g *scene.Graph, op Op, elems []*scene.Element) (command.Command, error) {
	if len(elems) < op.MinElements() {
		return nil, fmt.Errorf("%s: %w: need %d, have %d", op, ErrTooFew, op.MinElements(), len(elems))
	}
	items := make([]item, len(elems))
	for i, e := range elems {
		if e == nil {
			return nil, scene.ErrNilElement
		}
		items[i] = item{elem: e, world: coords.WorldBounds(e)}
	}

	switch op {
	case MatchWidth, MatchHeight:
		return matchSize(g, op, items)
	case DistributeH, DistributeV:
		return moves(g, distribute(op, items))
	default:
		return moves(g, align(op, items))
	}
}

func align(op Op, items []item) map[*scene.Element]scene.Point {
	ref := items[0].world
	for _, it := range items[1:] {
		ref = ref.Union(it.world)
	}
	targets := make(map[*scene.Element]scene.Point, len(items))
	for _, it := range items {
		p := it.world.Origin()
		switch op {
		case AlignLeft:
			p.X = ref.X
		case AlignRight:
			p.X = ref.Right() - it.world.Width
		case AlignTop:
			p.Y = ref.Y
		case AlignBottom:
			p.Y = ref.Bottom() - it.world.Height
		case AlignCenterH:
			p.X = ref.X + (ref.Width-it.world.Width)/2
		case AlignCenterV:
			p.Y = ref.Y + (ref.Height-it.world.Height)/2
		}
		targets[it.elem] = p
	}
	return targets
}

// distribute keeps the outermost elements in place and spaces the rest with
// equal gaps between neighbours.
func distribute(op Op, items []item) map[*scene.Element]scene.Point {
	horizontal := op == DistributeH
	start := func(r scene.Rect) float64 {
		if horizontal {
			return r.X
		}
		return r.Y
	}
	extent := func(r scene.Rect) float64 {
		if horizontal {
			return r.Width
		}
		return r.Height
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b item) int {
		switch sa, sb := start(a.world), start(b.world); {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})

	first, last := sorted[0].world, sorted[len(sorted)-1].world
	span := start(last) + extent(last) - start(first)
	var occupied float64
	for _, it := range sorted {
		occupied += extent(it.world)
	}
	gap := (span - occupied) / float64(len(sorted)-1)

	targets := make(map[*scene.Element]scene.Point, len(items))
	pos := start(first)
	for _, it := range sorted {
		p := it.world.Origin()
		if horizontal {
			p.X = pos
		} else {
			p.Y = pos
		}
		targets[it.elem] = p
		pos += extent(it.world) + gap
	}
	return targets
}

// moves converts world-space targets into a batch move of local positions.
func moves(g *scene.Graph, targets map[*scene.Element]scene.Point) (command.Command, error) {
	var changes []command.PointChange
	for _, e := range orderedKeys(g, targets) {
		if e.Locked {
			continue
		}
		from := e.Position()
		delta := targets[e].Sub(coords.WorldPosition(e))
		changes = append(changes, command.PointChange{Element: e, From: from, To: from.Add(delta)})
	}
	c, err := command.NewBatchMove(g, changes)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func matchSize(g *scene.Graph, op Op, items []item) (command.Command, error) {
	ref := items[0].elem
	var changes []command.BoundsChange
	for _, it := range items[1:] {
		if it.elem.Locked {
			continue
		}
		from := it.elem.Bounds()
		to := from
		if op == MatchWidth {
			to.Width = ref.Width
		} else {
			to.Height = ref.Height
		}
		changes = append(changes, command.BoundsChange{Element: it.elem, From: from, To: to})
	}
	c, err := command.NewBatchResize(g, changes)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// orderedKeys returns the keys of targets in document order so batch
// commands are deterministic.
func orderedKeys(g *scene.Graph, targets map[*scene.Element]scene.Point) []*scene.Element {
	var out []*scene.Element
	for _, e := range g.All() {
		if _, ok := targets[e]; ok {
			out = append(out, e)
		}
	}
	return out
}
