package primitive

import "sort"

// BoxIntersect calls fn(x, y) once for every x in a and y in b whose closed
// boxes overlap on the first dims axes (2 or 3). Pairs are found by a
// one-way scan over boxes sorted on x. fn returns true to stop the scan;
// BoxIntersect then reports true.
func BoxIntersect(a, b []Handle, dims int, fn func(x, y Handle) bool) bool {
	as := sortedByMinX(a)
	bs := sortedByMinX(b)
	i, j := 0, 0
	for i < len(as) && j < len(bs) {
		if as[i].Box.Min[0] <= bs[j].Box.Min[0] {
			cur := as[i]
			for k := j; k < len(bs) && bs[k].Box.Min[0] <= cur.Box.Max[0]; k++ {
				if overlapsRest(cur.Box, bs[k].Box, dims) && fn(cur, bs[k]) {
					return true
				}
			}
			i++
		} else {
			cur := bs[j]
			for k := i; k < len(as) && as[k].Box.Min[0] <= cur.Box.Max[0]; k++ {
				if overlapsRest(as[k].Box, cur.Box, dims) && fn(as[k], cur) {
					return true
				}
			}
			j++
		}
	}
	return false
}

func overlapsRest(x, y Box, dims int) bool {
	for d := 1; d < dims; d++ {
		if x.Max[d] < y.Min[d] || y.Max[d] < x.Min[d] {
			return false
		}
	}
	return true
}

func sortedByMinX(hs []Handle) []Handle {
	out := append([]Handle(nil), hs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Box.Min[0] < out[j].Box.Min[0] })
	return out
}
