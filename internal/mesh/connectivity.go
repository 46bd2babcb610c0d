// Package mesh holds the static topology of a forest and the ASCII mesh
// file format it is loaded from and written to.
package mesh

const (
	// FacesPerTree is the number of faces of a tree.
	FacesPerTree = 4

	// CornersPerTree is the number of corners of a tree.
	CornersPerTree = 4
)

// Connectivity is the immutable topology of a forest: which trees touch
// across which faces and which global vertices their corners map to.
//
// All arrays are indexed tree-major: entry k*4+i belongs to corner or face i
// of tree k. TreeToFace encodes the neighbor's face index across each face.
type Connectivity struct {
	NumTrees    int32
	NumVertices int32

	TreeToVertex []int32
	TreeToTree   []int32
	TreeToFace   []int8
}

// NewConnectivity allocates a connectivity for the given number of trees
// and vertices with all entries zero.
func NewConnectivity(numTrees, numVertices int32) *Connectivity {
	return &Connectivity{
		NumTrees:     numTrees,
		NumVertices:  numVertices,
		TreeToVertex: make([]int32, CornersPerTree*numTrees),
		TreeToTree:   make([]int32, FacesPerTree*numTrees),
		TreeToFace:   make([]int8, FacesPerTree*numTrees),
	}
}
