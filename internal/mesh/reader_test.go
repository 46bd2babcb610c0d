package mesh

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadmesh/pkg/errors"
)

// twoTreeMesh is a hand-written mesh of two trees sharing one face.
const twoTreeMesh = `# two trees side by side
[Forest Info]
ver = 0.0.1  # Version of the forest file
Nk  = 2      # Number of elements
Nv  = 6      # Number of mesh vertices

[Coordinates of Element Vertices]

[Element to Vertex]
    1    1    2    4    5
    2    2    3    5    6
[Element to Element]
    1    1    2    1    1
    2    1    2    2    2
[Element to Face]
    1    1    1    3    4
    2    2    2    3    4
[Element Tags]
[Face Tags]
[Curved Faces]
[Curved Types]
`

func TestRead_TwoTrees(t *testing.T) {
	conn, err := Read(strings.NewReader(twoTreeMesh))
	require.NoError(t, err)

	assert.Equal(t, int32(2), conn.NumTrees)
	assert.Equal(t, int32(6), conn.NumVertices)

	assert.Equal(t, []int32{0, 1, 3, 4, 1, 2, 4, 5}, conn.TreeToVertex)
	assert.Equal(t, []int32{0, 1, 0, 0, 0, 1, 1, 1}, conn.TreeToTree)
	assert.Equal(t, []int8{0, 0, 2, 3, 1, 1, 2, 3}, conn.TreeToFace)
}

func TestRead_CommentsAndWhitespace(t *testing.T) {
	input := "  # leading comment\n" +
		"\n" +
		"  [Forest Info]  # trailing comment on header\n" +
		"  Nk = 1 # one tree\n" +
		"\tNv=4\n" +
		"[Element to Vertex]\n" +
		"  1 1 2 3 4  # corners\n"
	conn, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, int32(1), conn.NumTrees)
	assert.Equal(t, []int32{0, 1, 2, 3}, conn.TreeToVertex)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"data before any section", "Nk=1\n"},
		{"section before forest info", "[Element to Vertex]\n"},
		{"unknown section", "[Forest Info]\nNk=1\nNv=4\n[Bogus Section]\n"},
		{"header missing bracket", "[Forest Info\nNk=1\nNv=4\n"},
		{"info entry without equals", "[Forest Info]\nNk 1\n"},
		{"bad count value", "[Forest Info]\nNk=one\nNv=4\n"},
		{"no forest info at all", "# only comments\n"},
		{"too few record fields", "[Forest Info]\nNk=1\nNv=4\n[Element to Vertex]\n1 1 2 3\n"},
		{"vertex out of range", "[Forest Info]\nNk=1\nNv=4\n[Element to Vertex]\n1 1 2 3 5\n"},
		{"tree index out of range", "[Forest Info]\nNk=1\nNv=4\n[Element to Vertex]\n2 1 2 3 4\n"},
		{"neighbor out of range", "[Forest Info]\nNk=1\nNv=4\n[Element to Element]\n1 1 1 1 2\n"},
		{"face out of range", "[Forest Info]\nNk=1\nNv=4\n[Element to Face]\n1 1 2 3 5\n"},
		{"section with too few entries", "[Forest Info]\nNk=2\nNv=6\n[Element to Vertex]\n1 1 2 4 5\n[Element Tags]\n"},
		{"truncated final section", "[Forest Info]\nNk=2\nNv=6\n[Element to Vertex]\n1 1 2 4 5\n"},
		{"section with too many entries", "[Forest Info]\nNk=1\nNv=4\n[Element to Vertex]\n1 1 2 3 4\n1 1 2 3 4\n[Element Tags]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, conn)
			assert.Equal(t, errors.CodeParseError, errors.GetErrorCode(err))
		})
	}
}

func TestRead_ReservedSectionsSkipped(t *testing.T) {
	input := "[Forest Info]\nNk=1\nNv=4\n" +
		"[Coordinates of Element Vertices]\n0.0 0.0\n1.0 0.0\n" +
		"[Element to Vertex]\n1 1 2 3 4\n" +
		"[Element Tags]\nwhatever 17\n" +
		"[Curved Types]\nalso ignored\n"
	conn, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, int32(1), conn.NumTrees)
}

func TestReadFile_Missing(t *testing.T) {
	conn, err := ReadFile("/nonexistent/mesh.msh")
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Equal(t, errors.CodeNotFound, errors.GetErrorCode(err))
}

func TestWriteRead_RoundTrip(t *testing.T) {
	conn := NewConnectivity(4, 9)
	// A 2x2 block of trees, vertices numbered row-major.
	copy(conn.TreeToVertex, []int32{
		0, 1, 3, 4,
		1, 2, 4, 5,
		3, 4, 6, 7,
		4, 5, 7, 8,
	})
	copy(conn.TreeToTree, []int32{
		0, 1, 0, 2,
		0, 1, 1, 3,
		2, 3, 0, 2,
		2, 3, 1, 3,
	})
	copy(conn.TreeToFace, []int8{
		0, 0, 2, 2,
		1, 1, 2, 2,
		0, 0, 3, 3,
		1, 1, 3, 3,
	})

	var sb strings.Builder
	require.NoError(t, Write(conn, &sb))

	got, err := Read(strings.NewReader(sb.String()))
	require.NoError(t, err)

	assert.Equal(t, conn.NumTrees, got.NumTrees)
	assert.Equal(t, conn.NumVertices, got.NumVertices)
	assert.Equal(t, conn.TreeToVertex, got.TreeToVertex)
	assert.Equal(t, conn.TreeToTree, got.TreeToTree)
	assert.Equal(t, conn.TreeToFace, got.TreeToFace)
}
