package spatial

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/lixenwraith/pulsefield/vmath"
)

// entry is one indexed point, implements kdtree.Comparable
// seq orders entries by insertion for stable tie-breaking
type entry[T comparable] struct {
	pos     vmath.Point
	payload T
	seq     uint64
}

func (e entry[T]) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	o := c.(entry[T])
	return e.pos.Coord(int(d)) - o.pos.Coord(int(d))
}

func (e entry[T]) Dims() int { return 2 }

// Distance is squared Euclidean, matching kdtree's pruning on Compare^2
func (e entry[T]) Distance(c kdtree.Comparable) float64 {
	return vmath.DistSq(e.pos, c.(entry[T]).pos)
}

// entries is the bulk-build collection, implements kdtree.Interface
type entries[T comparable] []entry[T]

func (es entries[T]) Index(i int) kdtree.Comparable { return es[i] }
func (es entries[T]) Len() int                      { return len(es) }
func (es entries[T]) Slice(start, end int) kdtree.Interface {
	return es[start:end]
}

func (es entries[T]) Pivot(d kdtree.Dim) int {
	p := plane[T]{dim: d, es: es}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// plane sorts entries along one axis, implements kdtree.SortSlicer
type plane[T comparable] struct {
	dim kdtree.Dim
	es  entries[T]
}

func (p plane[T]) Len() int { return len(p.es) }
func (p plane[T]) Less(i, j int) bool {
	return p.es[i].pos.Coord(int(p.dim)) < p.es[j].pos.Coord(int(p.dim))
}
func (p plane[T]) Swap(i, j int) { p.es[i], p.es[j] = p.es[j], p.es[i] }
func (p plane[T]) Slice(start, end int) kdtree.SortSlicer {
	return plane[T]{dim: p.dim, es: p.es[start:end]}
}

// radiusKeeper retains every candidate within limit (squared distance)
// Max reports the fixed limit so the tree prunes on the query radius, not on the
// farthest kept point. The bound carries a non-nil Comparable so NearestSet never
// mistakes it for a sentinel and pops a real result
type radiusKeeper[T comparable] struct {
	kdtree.Heap
	limit float64
}

func newRadiusKeeper[T comparable](limit float64) *radiusKeeper[T] {
	return &radiusKeeper[T]{limit: limit}
}

func (k *radiusKeeper[T]) Keep(c kdtree.ComparableDist) {
	if c.Dist <= k.limit {
		k.Heap = append(k.Heap, c)
	}
}

func (k *radiusKeeper[T]) Max() kdtree.ComparableDist {
	return kdtree.ComparableDist{Comparable: entry[T]{}, Dist: k.limit}
}
