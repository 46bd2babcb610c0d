package forest

import (
	"strings"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadmesh/internal/quadrant"
)

// buildTree assembles a tree from quadrants in the given order without
// touching aggregates; enough for the predicate and print tests.
func buildTree(qs ...quadrant.Quadrant) *Tree {
	t := NewTree()
	t.Quadrants.Resize(len(qs))
	for i, q := range qs {
		*t.Quadrants.Index(i) = q
	}
	return t
}

func TestTree_IsSorted(t *testing.T) {
	var c [4]quadrant.Quadrant
	(&quadrant.Quadrant{}).Children(&c[0], &c[1], &c[2], &c[3])

	tassert.True(t, NewTree().IsSorted(), "empty tree")
	tassert.True(t, buildTree(c[0]).IsSorted(), "single quadrant")
	tassert.True(t, buildTree(c[0], c[1], c[3]).IsSorted())
	tassert.False(t, buildTree(c[1], c[0]).IsSorted())
	tassert.False(t, buildTree(c[2], c[2]).IsSorted(), "duplicates are not sorted")
}

func TestTree_IsComplete(t *testing.T) {
	var c [4]quadrant.Quadrant
	(&quadrant.Quadrant{}).Children(&c[0], &c[1], &c[2], &c[3])

	tassert.True(t, NewTree().IsComplete(), "empty tree")
	tassert.True(t, buildTree(c[0], c[1], c[2], c[3]).IsComplete())
	tassert.False(t, buildTree(c[0], c[2]).IsComplete(), "gap between quadrants")

	// A refined first child still completes the root.
	var cc [4]quadrant.Quadrant
	c[0].Children(&cc[0], &cc[1], &cc[2], &cc[3])
	tassert.True(t, buildTree(cc[0], cc[1], cc[2], cc[3], c[1], c[2], c[3]).IsComplete())
}

func TestTree_Print(t *testing.T) {
	var c [4]quadrant.Quadrant
	(&quadrant.Quadrant{}).Children(&c[0], &c[1], &c[2], &c[3])
	tree := buildTree(c[0], c[1], c[2], c[3])

	var sb strings.Builder
	tree.Print(7, &sb)

	want := "[7] 0x0 0x0 1 Q0\n" +
		"[7] 0x20000000 0x0 1 S1\n" +
		"[7] 0x0 0x20000000 1 S2\n" +
		"[7] 0x20000000 0x20000000 1 S3\n"
	tassert.Equal(t, want, sb.String())
}

func TestTree_PrintRelationCodes(t *testing.T) {
	var c [4]quadrant.Quadrant
	root := quadrant.Quadrant{}
	root.Children(&c[0], &c[1], &c[2], &c[3])
	var cc, ccc [4]quadrant.Quadrant
	c[0].Children(&cc[0], &cc[1], &cc[2], &cc[3])
	cc[3].Children(&ccc[0], &ccc[1], &ccc[2], &ccc[3])

	// root, child, deeper descendant, successor across levels, out of
	// order, identical.
	tree := buildTree(root, c[0], ccc[3], c[1], c[0], c[0])

	var sb strings.Builder
	tree.Print(-1, &sb)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	tassert.True(t, strings.HasSuffix(lines[0], " Q0"), lines[0])
	tassert.True(t, strings.HasSuffix(lines[1], " C0"), lines[1])
	tassert.True(t, strings.HasSuffix(lines[2], " D"), lines[2])
	tassert.True(t, strings.HasSuffix(lines[3], " N1"), lines[3])
	tassert.True(t, strings.HasSuffix(lines[4], " R"), lines[4])
	tassert.True(t, strings.HasSuffix(lines[5], " I"), lines[5])
}

func TestTree_PrintNilWriter(t *testing.T) {
	tassert.NotPanics(t, func() { NewTree().Print(0, nil) })
}
