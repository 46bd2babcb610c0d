// Package forest manages collections of quadrants organized into trees and
// the region-completion algorithm that tiles the Morton interval between two
// quadrants. A Forest is the shared context carrying the object pools; it is
// passed explicitly through every algorithm and is not safe for concurrent
// use.
package forest

import (
	"fmt"
	"io"

	"github.com/quadmesh/internal/quadrant"
	"github.com/quadmesh/pkg/collections"
)

// Tree is an ordered collection of quadrants of a single root tree.
//
// Invariants: Quadrants is strictly Morton-increasing, QuadrantsPerLevel
// sums to the quadrant count, and Maxlevel is the deepest level present
// (0 when empty).
type Tree struct {
	Quadrants         *collections.Array[quadrant.Quadrant]
	QuadrantsPerLevel [quadrant.MaxLevel + 1]int32
	Maxlevel          int8
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{Quadrants: collections.NewArray[quadrant.Quadrant]()}
}

// IsSorted reports whether the tree's quadrants are in strictly increasing
// Morton order.
func (t *Tree) IsSorted() bool {
	n := t.Quadrants.Len()
	if n <= 1 {
		return true
	}

	q1 := t.Quadrants.Index(0)
	for i := 1; i < n; i++ {
		q2 := t.Quadrants.Index(i)
		if quadrant.Compare(q1, q2) >= 0 {
			return false
		}
		q1 = q2
	}
	return true
}

// IsComplete reports whether every adjacent pair of quadrants is in the
// Morton-successor relation, i.e. the tree tiles its extent without gaps or
// overlaps.
func (t *Tree) IsComplete() bool {
	n := t.Quadrants.Len()
	if n <= 1 {
		return true
	}

	q1 := t.Quadrants.Index(0)
	for i := 1; i < n; i++ {
		q2 := t.Quadrants.Index(i)
		if !q1.IsNext(q2) {
			return false
		}
		q1 = q2
	}
	return true
}

// Print writes one diagnostic record per quadrant to w, annotating each with
// its relation to the previous one: S<c> sibling with child id c, C<c>
// child, D other descendant, N<c> Morton successor, Q<c> anything else,
// I identical, R out of order. A non-negative id is printed as a [id]
// prefix on every record.
func (t *Tree) Print(id int, w io.Writer) {
	if w == nil {
		return
	}

	prefix := ""
	if id >= 0 {
		prefix = fmt.Sprintf("[%d] ", id)
	}

	var q1 *quadrant.Quadrant
	for j := 0; j < t.Quadrants.Len(); j++ {
		q2 := t.Quadrants.Index(j)
		childid := q2.ChildID()
		fmt.Fprintf(w, "%s0x%x 0x%x %d", prefix, q2.X, q2.Y, q2.Level)
		if j > 0 {
			comp := quadrant.Compare(q1, q2)
			switch {
			case comp > 0:
				fmt.Fprint(w, " R")
			case comp == 0:
				fmt.Fprint(w, " I")
			case q1.IsSibling(q2):
				fmt.Fprintf(w, " S%d", childid)
			case q1.IsParent(q2):
				fmt.Fprintf(w, " C%d", childid)
			case q1.IsAncestor(q2):
				fmt.Fprint(w, " D")
			case q1.IsNext(q2):
				fmt.Fprintf(w, " N%d", childid)
			default:
				fmt.Fprintf(w, " Q%d", childid)
			}
		} else {
			fmt.Fprintf(w, " Q%d", childid)
		}
		fmt.Fprintln(w)
		q1 = q2
	}
}
