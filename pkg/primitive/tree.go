package primitive

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// Tree is an R-tree over handle boxes.
type Tree struct {
	rt *rtreego.Rtree
}

type entry struct {
	h    Handle
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// NewTree indexes hs.
func NewTree(hs []Handle) *Tree {
	objs := make([]rtreego.Spatial, 0, len(hs))
	for _, h := range hs {
		objs = append(objs, &entry{h: h, rect: rectOf(h.Box)})
	}
	return &Tree{rt: rtreego.NewTree(3, 8, 32, objs...)}
}

// rectOf converts a box; rtreego needs strictly positive side lengths,
// which the outward rounding of Box guarantees for finite input.
func rectOf(b Box) rtreego.Rect {
	lengths := make([]float64, 3)
	for i := range lengths {
		lengths[i] = math.Max(b.Max[i]-b.Min[i], math.SmallestNonzeroFloat64)
	}
	r, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1], b.Min[2]}, lengths)
	if err != nil {
		// Non-finite bounds: fall back to a box covering everything.
		r, _ = rtreego.NewRect(rtreego.Point{-math.MaxFloat64 / 2, -math.MaxFloat64 / 2, -math.MaxFloat64 / 2},
			[]float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64})
	}
	return r
}

// Len is the number of indexed handles.
func (t *Tree) Len() int { return t.rt.Size() }

// Search returns the handles whose boxes intersect b.
func (t *Tree) Search(b Box) []Handle {
	found := t.rt.SearchIntersect(rectOf(b))
	out := make([]Handle, len(found))
	for i, s := range found {
		out[i] = s.(*entry).h
	}
	return out
}
