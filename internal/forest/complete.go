package forest

import (
	"github.com/quadmesh/internal/quadrant"
	"github.com/quadmesh/pkg/collections"
)

// CompleteRegion fills tree with the unique minimal sequence of disjoint
// quadrants tiling the Morton interval between q1 and q2, endpoints included
// per includeQ1/includeQ2. q1 must precede q2 in Morton order and tree must
// be empty.
//
// The worklist walks the quadtree below the endpoints' nearest common
// ancestor top down, splitting only branches that touch an endpoint and
// keeping whole subtrees strictly inside the interval; LIFO processing of
// the children in Morton order makes the output come out sorted without a
// final sort.
//
// initFn runs on every interior quadrant as it is appended. The endpoints
// are appended verbatim: their user data is the caller's responsibility and
// is neither allocated nor initialized here (see CompleteRegionInit for the
// variant that does both).
func (f *Forest) CompleteRegion(q1 *quadrant.Quadrant, includeQ1 bool,
	q2 *quadrant.Quadrant, includeQ2 bool,
	tree *Tree, whichTree int32, initFn InitFunc) {

	a := *q1
	b := *q2

	w := collections.NewList[*quadrant.Quadrant](nil)
	defer w.Destroy()

	// Balance checks for the post-conditions below.
	quadrantPoolSize := f.QuadrantPool.ElemCount()
	dataPoolSize := 0
	if f.UserDataPool != nil {
		dataPoolSize = f.UserDataPool.ElemCount()
	}

	quadrants := tree.Quadrants
	assert(quadrants.Len() == 0, "CompleteRegion: target tree not empty")
	assert(quadrant.Compare(&a, &b) < 0, "CompleteRegion: endpoints out of order")

	var maxlevel int8
	numQuadrants := 0

	appendQuadrant := func(q *quadrant.Quadrant) *quadrant.Quadrant {
		quadrants.Resize(numQuadrants + 1)
		r := quadrants.Index(numQuadrants)
		*r = *q
		maxlevel = max(maxlevel, q.Level)
		tree.QuadrantsPerLevel[q.Level]++
		numQuadrants++
		return r
	}

	if includeQ1 {
		appendQuadrant(&a)
	}

	// Seed the worklist with the children of the nearest common ancestor.
	var afinest quadrant.Quadrant
	quadrant.NearestCommonAncestor(&a, &b, &afinest)

	c0 := f.QuadrantPool.Alloc()
	c1 := f.QuadrantPool.Alloc()
	c2 := f.QuadrantPool.Alloc()
	c3 := f.QuadrantPool.Alloc()
	afinest.Children(c0, c1, c2, c3)

	w.Append(c0)
	w.Append(c1)
	w.Append(c2)
	w.Append(c3)

	for w.Len() > 0 {
		wq := w.Pop()

		if quadrant.Compare(&a, wq) < 0 && quadrant.Compare(wq, &b) < 0 &&
			!wq.IsAncestor(&b) {
			// Strictly inside the interval and clear of the upper
			// endpoint's branch: emit as is.
			r := appendQuadrant(wq)
			f.InitData(whichTree, r, initFn)
		} else if wq.IsAncestor(&a) || wq.IsAncestor(&b) {
			// Touches an endpoint: split and revisit the children next,
			// in Morton order.
			c0 = f.QuadrantPool.Alloc()
			c1 = f.QuadrantPool.Alloc()
			c2 = f.QuadrantPool.Alloc()
			c3 = f.QuadrantPool.Alloc()
			wq.Children(c0, c1, c2, c3)

			w.Prepend(c3)
			w.Prepend(c2)
			w.Prepend(c1)
			w.Prepend(c0)
		}
		// Everything else lies outside (a,b) or duplicates an endpoint.

		f.QuadrantPool.Free(wq)
	}

	if includeQ2 {
		appendQuadrant(&b)
	}

	tree.Maxlevel = maxlevel

	assert(tree.IsComplete(), "CompleteRegion: result not complete")
	assert(quadrantPoolSize == f.QuadrantPool.ElemCount(),
		"CompleteRegion: scratch quadrants leaked")
	assert(numQuadrants == quadrants.Len(), "CompleteRegion: count mismatch")
	if f.UserDataPool != nil {
		expected := dataPoolSize + quadrants.Len()
		if includeQ1 {
			expected--
		}
		if includeQ2 {
			expected--
		}
		assert(expected == f.UserDataPool.ElemCount(),
			"CompleteRegion: user data pool out of balance")
	}
}

// CompleteRegionInit is CompleteRegion with the endpoint user data handled
// here as well: included endpoints get their slot allocated and initialized
// like every interior quadrant.
func (f *Forest) CompleteRegionInit(q1 *quadrant.Quadrant, includeQ1 bool,
	q2 *quadrant.Quadrant, includeQ2 bool,
	tree *Tree, whichTree int32, initFn InitFunc) {

	f.CompleteRegion(q1, includeQ1, q2, includeQ2, tree, whichTree, initFn)

	n := tree.Quadrants.Len()
	if includeQ1 && n > 0 {
		f.InitData(whichTree, tree.Quadrants.Index(0), initFn)
	}
	if includeQ2 && n > 0 {
		f.InitData(whichTree, tree.Quadrants.Index(n-1), initFn)
	}
}
