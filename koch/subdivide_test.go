package koch

import (
	"slices"
	"testing"
)

func TestSubdivideGrowthAndClosure(t *testing.T) {
	b, err := NewBoundary(800, 600, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 3
	for g := 1; g <= 5; g++ {
		if err := Subdivide(b); err != nil {
			t.Fatalf("generation %d: unexpected error: %v", g, err)
		}
		want *= 4
		if b.Len() != want {
			t.Fatalf("generation %d: expected %d segments, got %d", g, want, b.Len())
		}
		if !b.Closed() {
			t.Fatalf("generation %d: boundary is not closed", g)
		}

		segs, err := b.Segments()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(segs) != want {
			t.Fatalf("generation %d: traversal yielded %d segments, want %d", g, len(segs), want)
		}
		if segs[len(segs)-1].End != segs[0].Start {
			t.Fatalf("generation %d: last segment ends at %v, first starts at %v", g, segs[len(segs)-1].End, segs[0].Start)
		}
	}
}

func TestSubdivideKeepsStartAtFirstChild(t *testing.T) {
	b, err := NewBoundary(800, 600, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, _ := b.Segments()
	if err := Subdivide(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, _ := b.Segments()

	for i, seed := range before {
		children := seed.Split()
		if !slices.Equal(after[4*i:4*i+4], children[:]) {
			t.Errorf("seed %d: children %v, want %v", i, after[4*i:4*i+4], children)
		}
	}
	cur, _ := b.Current()
	if cur != after[0] {
		t.Errorf("cursor should be reset to the start, got %v", cur)
	}
}

func TestSubdivideBumpsPointOutward(t *testing.T) {
	b, err := NewBoundary(800, 600, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seeds, _ := b.Segments()
	if err := Subdivide(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, _ := b.Segments()

	cx := (seeds[0].Start.X + seeds[1].Start.X + seeds[2].Start.X) / 3
	cy := (seeds[0].Start.Y + seeds[1].Start.Y + seeds[2].Start.Y) / 3
	centroid := Pt(cx, cy)

	for i, seed := range seeds {
		apex := after[4*i+1].End
		if side(seed, apex)*side(seed, centroid) >= 0 {
			t.Errorf("edge %v: apex %v is on the same side as the centroid %v", seed, apex, centroid)
		}
	}
}

func TestSubdivideRejectsInvalidBoundary(t *testing.T) {
	if err := Subdivide(nil); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected invalid state for nil boundary, got %v", err)
	}
	if err := Subdivide(&Boundary{}); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected invalid state for empty boundary, got %v", err)
	}

	b := &Boundary{}
	b.link([]Vector{
		VectorOf(Pt(0, 0), Pt(9, 0)),
		VectorOf(Pt(9, 0), Pt(0, 0)),
	})
	if err := Subdivide(b); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected invalid state for a two-segment boundary, got %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("rejected subdivision must leave the boundary alone, got %d segments", b.Len())
	}
}

func TestSubdivideToleratesDegenerateSegments(t *testing.T) {
	b := &Boundary{}
	p := Pt(4, 4)
	b.link([]Vector{VectorOf(p, p), VectorOf(p, p), VectorOf(p, p)})
	if err := Subdivide(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 12 {
		t.Fatalf("expected 12 segments, got %d", b.Len())
	}
}

// side returns the sign of the cross product of v with (p - v.Start).
func side(v Vector, p Point) int {
	dx, dy := v.End.X-v.Start.X, v.End.Y-v.Start.Y
	px, py := p.X-v.Start.X, p.Y-v.Start.Y
	cross := dx*py - dy*px
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	}
	return 0
}
