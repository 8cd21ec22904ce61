package koch

import (
	"iter"
)

// seedNodes is the size of the initial triangular boundary.
const seedNodes = 3

// node is one slot of the boundary arena. next and prev index into the same
// arena; nodes never escape the Boundary.
type node struct {
	line Vector
	next int
	prev int
}

// Boundary is the closed curve stored as a circular doubly linked list of
// segments. Nodes live in an arena slice and link to each other by index.
//
// The zero value is an uninitialized boundary: reads on it fail with an
// invalid-state error.
type Boundary struct {
	nodes  []node
	start  int
	cursor int
}

// NewBoundary builds the seed triangle for a world of the given size. The
// triangle runs bottom-left -> apex -> bottom-right, clockwise on screen.
func NewBoundary(worldWidth, worldHeight, padding int) (*Boundary, error) {
	const op = "boundary.new"
	if worldWidth <= 0 || worldHeight <= 0 {
		return nil, invalidConfig(op, "world size %dx%d must be positive", worldWidth, worldHeight)
	}
	if padding < 0 {
		return nil, invalidConfig(op, "padding %d must not be negative", padding)
	}
	if 2*padding >= min(worldWidth, worldHeight) {
		return nil, invalidConfig(op, "padding %d too large for world %dx%d", padding, worldWidth, worldHeight)
	}

	x1 := padding
	x2 := worldWidth / 2
	x3 := worldWidth - padding
	y1 := worldHeight - padding
	y2 := padding

	p1 := Pt(x1, y1)
	p2 := Pt(x2, y2)
	p3 := Pt(x3, y1)

	b := &Boundary{}
	b.link([]Vector{
		VectorOf(p1, p2),
		VectorOf(p2, p3),
		VectorOf(p3, p1),
	})
	return b, nil
}

// link replaces the arena with one node per segment, closed into a cycle in
// slice order, and resets start and cursor to the first node.
func (b *Boundary) link(lines []Vector) {
	n := len(lines)
	nodes := make([]node, n)
	for i, l := range lines {
		nodes[i] = node{
			line: l,
			next: (i + 1) % n,
			prev: (i + n - 1) % n,
		}
	}
	b.nodes = nodes
	b.start = 0
	b.cursor = 0
}

// Len returns the number of segments in the boundary.
func (b *Boundary) Len() int {
	if b == nil {
		return 0
	}
	return len(b.nodes)
}

func (b *Boundary) ready(op string) error {
	if b == nil || len(b.nodes) == 0 {
		return invalidState(op, "boundary is not initialized")
	}
	return nil
}

// Traverse returns the (segment, successor) pairs of the curve, one per node,
// starting at the start node and following next links until the start node
// comes round again. The sequence can be ranged over any number of times.
func (b *Boundary) Traverse() (iter.Seq2[Vector, Vector], error) {
	if err := b.ready("boundary.traverse"); err != nil {
		return nil, err
	}
	nodes := b.nodes
	start := b.start
	return func(yield func(Vector, Vector) bool) {
		i := start
		for {
			cur := nodes[i]
			if !yield(cur.line, nodes[cur.next].line) {
				return
			}
			i = cur.next
			if i == start {
				return
			}
		}
	}, nil
}

// Segments returns the segments in traversal order.
func (b *Boundary) Segments() ([]Vector, error) {
	seq, err := b.Traverse()
	if err != nil {
		return nil, err
	}
	out := make([]Vector, 0, len(b.nodes))
	for line := range seq {
		out = append(out, line)
	}
	return out, nil
}

// Points returns the start point of every segment in traversal order, which
// is the vertex list of the closed polygon.
func (b *Boundary) Points() ([]Point, error) {
	seq, err := b.Traverse()
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(b.nodes))
	for line := range seq {
		out = append(out, line.Start)
	}
	return out, nil
}

// Closed reports whether every segment ends where its successor starts and
// the links form one cycle covering every node.
func (b *Boundary) Closed() bool {
	if b.ready("boundary.closed") != nil {
		return false
	}
	i := b.start
	for steps := 0; steps < len(b.nodes); steps++ {
		cur := b.nodes[i]
		if b.nodes[cur.next].prev != i {
			return false
		}
		if cur.line.End != b.nodes[cur.next].line.Start {
			return false
		}
		i = cur.next
		if i == b.start && steps < len(b.nodes)-1 {
			return false
		}
	}
	return i == b.start
}

// Current returns the segment under the cursor.
func (b *Boundary) Current() (Vector, error) {
	if err := b.ready("boundary.current"); err != nil {
		return Vector{}, err
	}
	return b.nodes[b.cursor].line, nil
}

// AdvanceCursor moves the cursor to the next node and returns its segment.
func (b *Boundary) AdvanceCursor() (Vector, error) {
	if err := b.ready("boundary.advance_cursor"); err != nil {
		return Vector{}, err
	}
	b.cursor = b.nodes[b.cursor].next
	return b.nodes[b.cursor].line, nil
}
