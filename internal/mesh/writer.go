package mesh

import (
	"fmt"
	"io"
	"os"
)

// Write emits conn in the ASCII mesh format read by Read. The aggregate
// counters the reader does not consume are written as zero placeholders, so
// the output round-trips.
func Write(conn *Connectivity, w io.Writer) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("[Forest Info]\n")
	p("ver = 0.0.1  # Version of the forest file\n")
	p("Nk  = %d      # Number of elements\n", conn.NumTrees)
	p("Nv  = %d      # Number of mesh vertices\n", conn.NumVertices)
	p("Net = 0      # Number of element tags\n")
	p("Nft = 0      # Number of face tags\n")
	p("Ncf = 0      # Number of curved faces\n")
	p("Nct = 0      # Number of curved types\n")
	p("\n")
	p("[Coordinates of Element Vertices]\n")
	p("[Element to Vertex]\n")
	for k := int32(0); k < conn.NumTrees; k++ {
		p("    %d    %d    %d    %d    %d\n", k+1,
			conn.TreeToVertex[CornersPerTree*k+0]+1,
			conn.TreeToVertex[CornersPerTree*k+1]+1,
			conn.TreeToVertex[CornersPerTree*k+2]+1,
			conn.TreeToVertex[CornersPerTree*k+3]+1)
	}
	p("[Element to Element]\n")
	for k := int32(0); k < conn.NumTrees; k++ {
		p("    %d    %d    %d    %d    %d\n", k+1,
			conn.TreeToTree[FacesPerTree*k+0]+1,
			conn.TreeToTree[FacesPerTree*k+1]+1,
			conn.TreeToTree[FacesPerTree*k+2]+1,
			conn.TreeToTree[FacesPerTree*k+3]+1)
	}
	p("[Element to Face]\n")
	for k := int32(0); k < conn.NumTrees; k++ {
		p("    %d    %d    %d    %d    %d\n", k+1,
			int32(conn.TreeToFace[FacesPerTree*k+0])+1,
			int32(conn.TreeToFace[FacesPerTree*k+1])+1,
			int32(conn.TreeToFace[FacesPerTree*k+2])+1,
			int32(conn.TreeToFace[FacesPerTree*k+3])+1)
	}
	p("[Element Tags]\n")
	p("[Face Tags]\n")
	p("[Curved Faces]\n")
	p("[Curved Types]\n")
	return err
}

// Print writes conn to standard output.
func Print(conn *Connectivity) {
	Write(conn, os.Stdout)
}
