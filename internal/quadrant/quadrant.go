// Package quadrant implements the bit-packed quadrant algebra underlying the
// adaptive mesh forest: Morton-order comparison, parent/child/ancestor
// relations and the linear-id codec.
//
// A quadrant is an axis-aligned square cell addressed by its lower-left
// corner in a fixed integer coordinate system. At refinement level l the
// cell side is 1 << (MaxLevel - l) and both coordinates are multiples of it.
//
// Operations that take invalid quadrants are programming errors and panic.
package quadrant

import "math/bits"

const (
	// MaxLevel is the finest refinement level. Coordinates occupy at most
	// MaxLevel bits, leaving headroom in an int32.
	MaxLevel = 30

	// ChildrenPerQuadrant is the number of children of a refined quadrant.
	ChildrenPerQuadrant = 4
)

// Quadrant is a single square cell. X and Y address the lower-left corner,
// Level the refinement depth. UserData is an opaque per-cell payload owned
// by whichever tree the quadrant is stored in; the algebra never touches it
// except where documented.
type Quadrant struct {
	X, Y  int32
	Level int8

	UserData any
}

func assert(cond bool, msg string) {
	if !cond {
		panic("quadrant: " + msg)
	}
}

// log2x32 returns the position of the most significant set bit, or -1 for 0.
func log2x32(v int32) int {
	return bits.Len32(uint32(v)) - 1
}

// IsValid reports whether q is a well-formed quadrant: level within range,
// coordinates within the root square and aligned to the level's cell side.
func (q *Quadrant) IsValid() bool {
	return q.Level >= 0 && q.Level <= MaxLevel &&
		q.X >= 0 && q.X < 1<<MaxLevel &&
		q.Y >= 0 && q.Y < 1<<MaxLevel &&
		q.X&(1<<(MaxLevel-q.Level)-1) == 0 &&
		q.Y&(1<<(MaxLevel-q.Level)-1) == 0
}

// Compare orders quadrants by the Morton (Z-order) curve: the quadrant whose
// most significant differing coordinate bit is smaller comes first, and of
// two quadrants anchored at the same corner the coarser one comes first.
// The result is negative, zero or positive.
func Compare(q1, q2 *Quadrant) int {
	assert(q1.IsValid(), "Compare: invalid quadrant")
	assert(q2.IsValid(), "Compare: invalid quadrant")

	exclorx := q1.X ^ q2.X
	exclory := q1.Y ^ q2.Y

	if exclorx == 0 && exclory == 0 {
		return int(q1.Level) - int(q2.Level)
	}
	if log2x32(exclory) >= log2x32(exclorx) {
		return int(q1.Y) - int(q2.Y)
	}
	return int(q1.X) - int(q2.X)
}

// Equal reports whether q and r describe the same cell.
func (q *Quadrant) Equal(r *Quadrant) bool {
	assert(q.IsValid(), "Equal: invalid quadrant")
	assert(r.IsValid(), "Equal: invalid quadrant")

	return q.Level == r.Level && q.X == r.X && q.Y == r.Y
}

// ChildID returns which child of its parent q is, in 0..3. Bit 0 is the
// x level bit, bit 1 the y level bit. The result is meaningless at level 0.
func (q *Quadrant) ChildID() int {
	assert(q.IsValid(), "ChildID: invalid quadrant")

	id := 0
	if q.X&(1<<(MaxLevel-q.Level)) != 0 {
		id |= 0x01
	}
	if q.Y&(1<<(MaxLevel-q.Level)) != 0 {
		id |= 0x02
	}
	return id
}

// IsSibling reports whether q and r are distinct children of the same
// parent.
func (q *Quadrant) IsSibling(r *Quadrant) bool {
	assert(q.IsValid(), "IsSibling: invalid quadrant")
	assert(r.IsValid(), "IsSibling: invalid quadrant")

	exclorx := q.X ^ r.X
	exclory := q.Y ^ r.Y
	if exclorx == 0 && exclory == 0 {
		return false
	}

	return q.Level == r.Level &&
		exclorx & ^int32(1<<(MaxLevel-q.Level)) == 0 &&
		exclory & ^int32(1<<(MaxLevel-q.Level)) == 0
}

// IsSiblingD is the derivational form of IsSibling, reducing both quadrants
// to their parents.
func (q *Quadrant) IsSiblingD(r *Quadrant) bool {
	if q.Equal(r) {
		return false
	}

	var p1, p2 Quadrant
	q.Parent(&p1)
	r.Parent(&p2)
	return p1.Equal(&p2)
}

// Parent writes the parent of q into r. q must not be at level 0.
// r's UserData is left alone.
func (q *Quadrant) Parent(r *Quadrant) {
	assert(q.IsValid(), "Parent: invalid quadrant")
	assert(q.Level > 0, "Parent: level 0 has no parent")

	r.X = q.X & ^int32(1<<(MaxLevel-q.Level))
	r.Y = q.Y & ^int32(1<<(MaxLevel-q.Level))
	r.Level = q.Level - 1

	assert(r.IsValid(), "Parent: invalid result")
}

// Children writes the four children of q in Morton order into c0..c3.
// q must be coarser than MaxLevel. The children's UserData is left alone.
func (q *Quadrant) Children(c0, c1, c2, c3 *Quadrant) {
	assert(q.IsValid(), "Children: invalid quadrant")
	assert(q.Level < MaxLevel, "Children: cannot refine past MaxLevel")

	c0.X = q.X
	c0.Y = q.Y
	c0.Level = q.Level + 1

	c1.X = c0.X | 1<<(MaxLevel-c0.Level)
	c1.Y = c0.Y
	c1.Level = c0.Level

	c2.X = c0.X
	c2.Y = c0.Y | 1<<(MaxLevel-c0.Level)
	c2.Level = c0.Level

	c3.X = c1.X
	c3.Y = c2.Y
	c3.Level = c0.Level
}

// IsParent reports whether q is the direct parent of r.
func (q *Quadrant) IsParent(r *Quadrant) bool {
	assert(q.IsValid(), "IsParent: invalid quadrant")
	assert(r.IsValid(), "IsParent: invalid quadrant")

	return q.Level+1 == r.Level &&
		q.X == r.X & ^int32(1<<(MaxLevel-r.Level)) &&
		q.Y == r.Y & ^int32(1<<(MaxLevel-r.Level))
}

// IsParentD is the derivational form of IsParent.
func (q *Quadrant) IsParentD(r *Quadrant) bool {
	var p Quadrant
	r.Parent(&p)
	return q.Equal(&p)
}

// IsAncestor reports whether q is a strict ancestor of r, i.e. strictly
// coarser and containing r.
func (q *Quadrant) IsAncestor(r *Quadrant) bool {
	assert(q.IsValid(), "IsAncestor: invalid quadrant")
	assert(r.IsValid(), "IsAncestor: invalid quadrant")

	if q.Level >= r.Level {
		return false
	}

	exclorx := (q.X ^ r.X) >> (MaxLevel - q.Level)
	exclory := (q.Y ^ r.Y) >> (MaxLevel - q.Level)
	return exclorx == 0 && exclory == 0
}

// IsAncestorD is the derivational form of IsAncestor, going through the
// nearest common ancestor.
func (q *Quadrant) IsAncestorD(r *Quadrant) bool {
	if q.Equal(r) {
		return false
	}

	var s Quadrant
	NearestCommonAncestorD(q, r, &s)
	return q.Equal(&s)
}

// IsNext reports whether r immediately follows q in the Morton order, i.e.
// the two cells abut along the space-filling curve with nothing in between.
func (q *Quadrant) IsNext(r *Quadrant) bool {
	if Compare(q, r) >= 0 {
		return false
	}

	var minLevel int8
	if q.Level > r.Level {
		// q must be the last (3-)child at every level below r's.
		mask := int32(1<<(MaxLevel-r.Level)) - int32(1<<(MaxLevel-q.Level))
		if q.X&mask != mask || q.Y&mask != mask {
			return false
		}
		minLevel = r.Level
	} else {
		// r must be the first (0-)child at every level below q's.
		mask := int32(1<<(MaxLevel-q.Level)) - int32(1<<(MaxLevel-r.Level))
		if r.X&mask != 0 || r.Y&mask != 0 {
			return false
		}
		minLevel = q.Level
	}

	return q.LinearID(minLevel)+1 == r.LinearID(minLevel)
}

// IsNextD is the derivational form of IsNext, reducing the deeper of q and
// r by repeated parent application.
func (q *Quadrant) IsNextD(r *Quadrant) bool {
	if Compare(q, r) >= 0 {
		return false
	}

	a := *q
	for a.Level > r.Level {
		if a.ChildID() != 3 {
			return false
		}
		a.Parent(&a)
	}
	b := *r
	for b.Level > a.Level {
		if b.ChildID() != 0 {
			return false
		}
		b.Parent(&b)
	}
	return a.LinearID(a.Level)+1 == b.LinearID(a.Level)
}

// NearestCommonAncestor writes the deepest quadrant containing both q1 and
// q2 into r. When q1 equals q2 the result is the shallower of the two.
// r's UserData is left alone.
func NearestCommonAncestor(q1, q2, r *Quadrant) {
	assert(q1.IsValid(), "NearestCommonAncestor: invalid quadrant")
	assert(q2.IsValid(), "NearestCommonAncestor: invalid quadrant")

	exclorx := q1.X ^ q2.X
	exclory := q1.Y ^ q2.Y
	maxclor := exclorx | exclory
	maxlevel := log2x32(maxclor) + 1

	r.X = q1.X & ^(int32(1<<maxlevel) - 1)
	r.Y = q1.Y & ^(int32(1<<maxlevel) - 1)
	r.Level = int8(min(MaxLevel-maxlevel, int(min(q1.Level, q2.Level))))

	assert(r.IsValid(), "NearestCommonAncestor: invalid result")
}

// NearestCommonAncestorD is the derivational form of NearestCommonAncestor,
// promoting both quadrants level by level until they coincide.
func NearestCommonAncestorD(q1, q2, r *Quadrant) {
	assert(q1.IsValid(), "NearestCommonAncestorD: invalid quadrant")
	assert(q2.IsValid(), "NearestCommonAncestorD: invalid quadrant")

	s1 := *q1
	s2 := *q2

	for s1.Level > s2.Level {
		s1.Parent(&s1)
	}
	for s1.Level < s2.Level {
		s2.Parent(&s2)
	}
	for !s1.Equal(&s2) {
		s1.Parent(&s1)
		s2.Parent(&s2)
	}

	r.X = s1.X
	r.Y = s1.Y
	r.Level = s1.Level

	assert(r.IsValid(), "NearestCommonAncestorD: invalid result")
}
