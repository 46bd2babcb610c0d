package quadrant

// LinearID returns the Morton index of q among all quadrants of the given
// level, interleaving the top level bits of x (even positions) and y (odd
// positions). q must be at the given level or deeper; deeper quadrants map
// to the index of their level-level ancestor. The result is in [0, 4^level).
func (q *Quadrant) LinearID(level int8) int64 {
	assert(q.IsValid(), "LinearID: invalid quadrant")
	assert(level >= 0 && level <= q.Level, "LinearID: level out of range")

	x := int64(q.X >> (MaxLevel - level))
	y := int64(q.Y >> (MaxLevel - level))

	var id int64
	for i := 0; i < int(level); i++ {
		id |= (x & (1 << i)) << i
		id |= (y & (1 << i)) << (i + 1)
	}
	return id
}

// SetMorton overwrites q with the quadrant of the given level and Morton
// index, deinterleaving id into the coordinate bits. q's UserData is left
// alone.
func (q *Quadrant) SetMorton(level int8, id int64) {
	assert(level >= 0 && level <= MaxLevel, "SetMorton: level out of range")
	assert(id >= 0 && id < int64(1)<<(2*int(level)), "SetMorton: id out of range")

	q.Level = level
	q.X = 0
	q.Y = 0

	for i := 0; i < int(level); i++ {
		q.X |= int32((id & (1 << (2 * i))) >> i)
		q.Y |= int32((id & (1 << (2*i + 1))) >> (i + 1))
	}

	q.X <<= MaxLevel - level
	q.Y <<= MaxLevel - level

	assert(q.IsValid(), "SetMorton: invalid result")
}
