package forest

import (
	"github.com/quadmesh/internal/mesh"
	"github.com/quadmesh/internal/quadrant"
	"github.com/quadmesh/pkg/collections"
)

func assert(cond bool, msg string) {
	if !cond {
		panic("forest: " + msg)
	}
}

// InitFunc initializes the user data of a freshly created quadrant of the
// given tree.
type InitFunc func(f *Forest, whichTree int32, q *quadrant.Quadrant)

// Forest is the context shared by all trees of a connectivity: the scratch
// quadrant pool used by the algorithms and, when DataSize is positive, the
// pool backing per-quadrant user data.
type Forest struct {
	// DataSize is the per-quadrant user data size in bytes. Zero disables
	// the user data pool.
	DataSize int

	// Connectivity is the static topology the forest was built on.
	Connectivity *mesh.Connectivity

	// Trees holds one tree per connectivity tree.
	Trees []*Tree

	// QuadrantPool provides transient scratch quadrants for the
	// algorithms. Every algorithm returns what it allocates.
	QuadrantPool *collections.Pool[quadrant.Quadrant]

	// UserDataPool owns the user data slots of all quadrants stored in the
	// forest's trees. Nil iff DataSize == 0.
	UserDataPool *collections.Pool[[]byte]
}

// New creates a forest over the given connectivity with one empty tree per
// connectivity tree.
func New(conn *mesh.Connectivity, dataSize int) *Forest {
	assert(dataSize >= 0, "New: negative data size")

	f := &Forest{
		DataSize:     dataSize,
		Connectivity: conn,
		QuadrantPool: collections.NewPool[quadrant.Quadrant](),
	}
	if dataSize > 0 {
		f.UserDataPool = collections.NewPoolWith(func() []byte {
			return make([]byte, dataSize)
		})
	}

	if conn != nil {
		f.Trees = make([]*Tree, conn.NumTrees)
		for k := range f.Trees {
			f.Trees[k] = NewTree()
		}
	}
	return f
}

// Destroy releases the forest's pools and all live trees.
func (f *Forest) Destroy() {
	f.QuadrantPool.Reset()
	if f.UserDataPool != nil {
		f.UserDataPool.Reset()
	}
	f.Trees = nil
}

// InitData attaches a user data slot to q (when the forest carries user
// data) and runs initFn on it. The slot is owned by the forest's user data
// pool for as long as the quadrant lives in a tree.
func (f *Forest) InitData(whichTree int32, q *quadrant.Quadrant, initFn InitFunc) {
	assert(q.IsValid(), "InitData: invalid quadrant")

	if f.DataSize > 0 {
		q.UserData = f.UserDataPool.Alloc()
	} else {
		q.UserData = nil
	}
	if initFn != nil {
		initFn(f, whichTree, q)
	}
}

// FreeData returns q's user data slot to the pool and clears the handle.
func (f *Forest) FreeData(q *quadrant.Quadrant) {
	assert(q.IsValid(), "FreeData: invalid quadrant")

	if f.DataSize > 0 {
		f.UserDataPool.Free(q.UserData.(*[]byte))
	}
	q.UserData = nil
}
