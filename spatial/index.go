// Package spatial provides the mutable 2-D point index used to find spots swept by
// an expanding pulse
package spatial

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/lixenwraith/pulsefield/vmath"
)

var (
	// ErrDuplicatePoint is returned when a payload is inserted twice without an intervening Remove
	ErrDuplicatePoint = errors.New("spatial: duplicate point")
	// ErrNotFound is returned when removing a payload that is not indexed at the given point
	ErrNotFound = errors.New("spatial: point not found")
)

// Neighbor is one query result
type Neighbor[T comparable] struct {
	Payload T
	Pos     vmath.Point
	DistSq  float64
}

// Index is a kd-tree backed point set keyed by payload
// Insert goes straight into the tree; Remove tombstones and the tree is rebuilt
// (median-balanced) before the next query. Not safe for concurrent use
type Index[T comparable] struct {
	tree    *kdtree.Tree
	members map[T]entry[T]
	size    int
	stale   bool
	seq     uint64
}

// New creates an empty index
func New[T comparable]() *Index[T] {
	return &Index[T]{
		members: make(map[T]entry[T]),
	}
}

// Len returns the number of indexed points. O(1)
func (ix *Index[T]) Len() int {
	return ix.size
}

// Contains reports whether payload is indexed
func (ix *Index[T]) Contains(payload T) bool {
	_, ok := ix.members[payload]
	return ok
}

// Insert adds payload at p
// A payload may be indexed once; a moved point must be removed before re-insertion
func (ix *Index[T]) Insert(p vmath.Point, payload T) error {
	if old, ok := ix.members[payload]; ok {
		return fmt.Errorf("%w: %v already at (%g, %g)", ErrDuplicatePoint, payload, old.pos.X, old.pos.Y)
	}

	ix.seq++
	e := entry[T]{pos: p, payload: payload, seq: ix.seq}
	ix.members[payload] = e
	ix.size++

	switch {
	case ix.stale:
		// Picked up by the pending rebuild
	case ix.tree == nil:
		ix.tree = kdtree.New(entries[T]{e}, false)
	default:
		ix.tree.Insert(e, false)
	}
	return nil
}

// Remove deletes payload previously inserted at p
func (ix *Index[T]) Remove(p vmath.Point, payload T) error {
	e, ok := ix.members[payload]
	if !ok || e.pos != p {
		return fmt.Errorf("%w: %v at (%g, %g)", ErrNotFound, payload, p.X, p.Y)
	}

	delete(ix.members, payload)
	ix.size--
	ix.stale = true
	return nil
}

// Nearest returns up to k points with squared distance to q no greater than maxDistSq,
// closest first, ties in insertion order
func (ix *Index[T]) Nearest(q vmath.Point, k int, maxDistSq float64) []Neighbor[T] {
	if k <= 0 || ix.size == 0 || maxDistSq < 0 {
		return nil
	}
	ix.rebuild()

	keep := newRadiusKeeper[T](maxDistSq)
	ix.tree.NearestSet(keep, entry[T]{pos: q})

	found := make([]entry[T], 0, len(keep.Heap))
	dists := make(map[uint64]float64, len(keep.Heap))
	for _, c := range keep.Heap {
		e, ok := c.Comparable.(entry[T])
		if !ok {
			continue
		}
		found = append(found, e)
		dists[e.seq] = c.Dist
	}

	sort.Slice(found, func(i, j int) bool {
		di, dj := dists[found[i].seq], dists[found[j].seq]
		if di != dj {
			return di < dj
		}
		return found[i].seq < found[j].seq
	})

	if len(found) > k {
		found = found[:k]
	}

	out := make([]Neighbor[T], len(found))
	for i, e := range found {
		out[i] = Neighbor[T]{Payload: e.payload, Pos: e.pos, DistSq: dists[e.seq]}
	}
	return out
}

// Clear removes every point
func (ix *Index[T]) Clear() {
	ix.tree = nil
	clear(ix.members)
	ix.size = 0
	ix.stale = false
}

// rebuild reconstructs a balanced tree from live members after removals
func (ix *Index[T]) rebuild() {
	if !ix.stale && ix.tree != nil {
		return
	}
	ix.stale = false

	if len(ix.members) == 0 {
		ix.tree = nil
		return
	}

	es := make(entries[T], 0, len(ix.members))
	for _, e := range ix.members {
		es = append(es, e)
	}
	// Deterministic build order regardless of map iteration
	sort.Slice(es, func(i, j int) bool { return es[i].seq < es[j].seq })
	ix.tree = kdtree.New(es, false)
}
