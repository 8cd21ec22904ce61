package koch

// Subdivide applies the Koch rule to every segment of b once. The existing
// segments are snapshotted in link order, each is replaced by its four
// children, and the new cycle is swapped in as a whole. The new start node is
// the first child of the old start node; the cursor returns to it.
func Subdivide(b *Boundary) error {
	const op = "subdivide"
	if b == nil || len(b.nodes) == 0 {
		return invalidState(op, "boundary is not initialized")
	}
	if len(b.nodes) < seedNodes {
		return invalidState(op, "boundary has %d segments, need at least %d", len(b.nodes), seedNodes)
	}

	next := make([]Vector, 0, 4*len(b.nodes))
	i := b.start
	for {
		cur := b.nodes[i]
		children := cur.line.Split()
		next = append(next, children[:]...)
		i = cur.next
		if i == b.start {
			break
		}
	}

	b.link(next)
	return nil
}
