package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/quadmesh/pkg/errors"
)

// section identifies the mesh file section currently being read.
type section int

const (
	sectionNone section = iota
	sectionInfo         // [Forest Info]
	sectionCoord        // [Coordinates of Element Vertices]
	sectionEtoV         // [Element to Vertex]
	sectionEtoE         // [Element to Element]
	sectionEtoF         // [Element to Face]
	sectionET           // [Element Tags]
	sectionFT           // [Face Tags]
	sectionCF           // [Curved Faces]
	sectionCT           // [Curved Types]
)

var sectionNames = map[string]section{
	"Forest Info":                     sectionInfo,
	"Coordinates of Element Vertices": sectionCoord,
	"Element to Vertex":               sectionEtoV,
	"Element to Element":              sectionEtoE,
	"Element to Face":                 sectionEtoF,
	"Element Tags":                    sectionET,
	"Face Tags":                       sectionFT,
	"Curved Faces":                    sectionCF,
	"Curved Types":                    sectionCT,
}

// reader carries the parser state across lines.
type reader struct {
	conn *Connectivity

	section      section
	linesRead    int32 // data lines seen in the current section
	numTrees     int32
	numVertices  int32
	seenTrees    bool
	seenVertices bool
}

// ReadFile reads a connectivity from the mesh file at path.
func ReadFile(path string) (*Connectivity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeNotFound,
			fmt.Sprintf("failed to open mesh file %s", path), err)
	}
	defer file.Close()

	return Read(file)
}

// Read reads a connectivity from the ASCII mesh format: '#' comments, blank
// lines ignored, [Section] headers, with [Forest Info] first carrying the
// Nk and Nv counts and the per-tree topology sections holding one record of
// five 1-based integers per tree. Reserved sections are skipped without
// interpretation.
func Read(r io.Reader) (*Connectivity, error) {
	rd := &reader{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Strip comments, then surrounding whitespace.
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var err error
		if line[0] == '[' {
			err = rd.enterSection(line)
		} else {
			err = rd.dataLine(line)
		}
		if err != nil {
			return nil, errors.Wrap(errors.CodeParseError,
				fmt.Sprintf("line %d", lineNum), err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.CodeParseError, "failed to read mesh file", err)
	}

	if err := rd.leaveSection(); err != nil {
		return nil, errors.Wrap(errors.CodeParseError, "at end of file", err)
	}
	if rd.conn == nil {
		return nil, errors.New(errors.CodeParseError, "mesh file has no [Forest Info] section")
	}
	return rd.conn, nil
}

// leaveSection validates the per-tree sections on exit: each must have
// carried exactly one record per tree.
func (rd *reader) leaveSection() error {
	switch rd.section {
	case sectionEtoV:
		if rd.linesRead != rd.numTrees {
			return fmt.Errorf("wrong number of entries in [Element to Vertex]: got %d, want %d",
				rd.linesRead, rd.numTrees)
		}
	case sectionEtoE:
		if rd.linesRead != rd.numTrees {
			return fmt.Errorf("wrong number of entries in [Element to Element]: got %d, want %d",
				rd.linesRead, rd.numTrees)
		}
	case sectionEtoF:
		if rd.linesRead != rd.numTrees {
			return fmt.Errorf("wrong number of entries in [Element to Face]: got %d, want %d",
				rd.linesRead, rd.numTrees)
		}
	}
	return nil
}

func (rd *reader) enterSection(line string) error {
	if err := rd.leaveSection(); err != nil {
		return err
	}

	if line[len(line)-1] != ']' {
		return fmt.Errorf("section header %q must end with ']'", line)
	}
	name := line[1 : len(line)-1]

	sec, ok := sectionNames[name]
	if !ok {
		return fmt.Errorf("unknown section %q", name)
	}
	if sec != sectionInfo && rd.conn == nil {
		return fmt.Errorf("the [Forest Info] section must come first and set Nk and Nv")
	}

	rd.section = sec
	rd.linesRead = 0
	return nil
}

func (rd *reader) dataLine(line string) error {
	defer func() { rd.linesRead++ }()

	switch rd.section {
	case sectionNone:
		return fmt.Errorf("mesh file must start with a section")

	case sectionInfo:
		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("entries in [Forest Info] must be key=value pairs")
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Nk":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return fmt.Errorf("bad Nk value %q: %w", value, err)
			}
			rd.numTrees = int32(n)
			rd.seenTrees = true
		case "Nv":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return fmt.Errorf("bad Nv value %q: %w", value, err)
			}
			rd.numVertices = int32(n)
			rd.seenVertices = true
		}
		if rd.seenTrees && rd.seenVertices && rd.conn == nil {
			if rd.numTrees < 0 || rd.numVertices < 0 {
				return fmt.Errorf("negative Nk or Nv")
			}
			rd.conn = NewConnectivity(rd.numTrees, rd.numVertices)
		}
		return nil

	case sectionEtoV:
		k, vals, err := treeRecord(line)
		if err != nil {
			return fmt.Errorf("bad [Element to Vertex] entry: %w", err)
		}
		if k < 0 || k >= rd.numTrees {
			return fmt.Errorf("bad [Element to Vertex] entry: tree index %d out of range", k+1)
		}
		for c, v := range vals {
			if v < 0 || v >= rd.numVertices {
				return fmt.Errorf("bad [Element to Vertex] entry: vertex %d out of range", v+1)
			}
			rd.conn.TreeToVertex[k*CornersPerTree+int32(c)] = v
		}
		return nil

	case sectionEtoE:
		k, vals, err := treeRecord(line)
		if err != nil {
			return fmt.Errorf("bad [Element to Element] entry: %w", err)
		}
		if k < 0 || k >= rd.numTrees {
			return fmt.Errorf("bad [Element to Element] entry: tree index %d out of range", k+1)
		}
		for f, v := range vals {
			if v < 0 || v >= rd.numTrees {
				return fmt.Errorf("bad [Element to Element] entry: neighbor %d out of range", v+1)
			}
			rd.conn.TreeToTree[k*FacesPerTree+int32(f)] = v
		}
		return nil

	case sectionEtoF:
		k, vals, err := treeRecord(line)
		if err != nil {
			return fmt.Errorf("bad [Element to Face] entry: %w", err)
		}
		if k < 0 || k >= rd.numTrees {
			return fmt.Errorf("bad [Element to Face] entry: tree index %d out of range", k+1)
		}
		for f, v := range vals {
			if v < 0 || v >= FacesPerTree {
				return fmt.Errorf("bad [Element to Face] entry: face %d out of range", v+1)
			}
			rd.conn.TreeToFace[k*FacesPerTree+int32(f)] = int8(v)
		}
		return nil

	default:
		// Reserved sections: skip the body without interpretation.
		return nil
	}
}

// treeRecord parses a per-tree record of five 1-based integers: the tree
// index followed by four values. All are returned 0-based.
func treeRecord(line string) (k int32, vals [4]int32, err error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return 0, vals, fmt.Errorf("expected five integers, got %d fields", len(fields))
	}

	nums := make([]int32, 5)
	for i := 0; i < 5; i++ {
		n, err := strconv.ParseInt(fields[i], 10, 32)
		if err != nil {
			return 0, vals, fmt.Errorf("bad integer %q: %w", fields[i], err)
		}
		nums[i] = int32(n) - 1
	}
	copy(vals[:], nums[1:])
	return nums[0], vals, nil
}
