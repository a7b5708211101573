// Package obj reads and writes a minimal subset of Wavefront OBJ: vertex
// positions and faces. It exists for the command line tool and test
// fixtures, not as a general OBJ library. Normals, texture coordinates,
// groups and materials are ignored on read and never written.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Read parses vertices and triangles from OBJ text. Faces with more than
// three corners are fan-triangulated around their first vertex. Indices in
// the result are zero-based.
func Read(r io.Reader) (vertices []r3.Vec, triangles [][3]int, err error) {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, errors.Errorf("line %d: vertex needs 3 coordinates", lineNumber)
			}
			var coords [3]float64
			for i := 0; i < 3; i++ {
				coords[i], err = strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, nil, errors.Wrapf(err, "line %d: bad coordinate %q", lineNumber, fields[i+1])
				}
			}
			vertices = append(vertices, r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]})
		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, nil, errors.Errorf("line %d: face needs at least 3 vertices", lineNumber)
			}
			indices := make([]int, len(corners))
			for i, corner := range corners {
				indices[i], err = parseFaceIndex(corner, len(vertices))
				if err != nil {
					return nil, nil, errors.Wrapf(err, "line %d", lineNumber)
				}
			}
			for i := 1; i < len(indices)-1; i++ {
				triangles = append(triangles, [3]int{indices[0], indices[i], indices[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "reading obj")
	}
	return vertices, triangles, nil
}

// parseFaceIndex handles the "7", "7/1", "7//2" and "7/1/2" corner forms.
// OBJ indices are 1-based; negative indices count back from the most
// recently read vertex.
func parseFaceIndex(corner string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(corner, '/'); slash >= 0 {
		corner = corner[:slash]
	}
	index, err := strconv.Atoi(corner)
	if err != nil {
		return 0, errors.Wrapf(err, "bad face index %q", corner)
	}
	switch {
	case index > 0:
		index--
	case index < 0:
		index += vertexCount
	default:
		return 0, errors.New("face index 0 is not valid")
	}
	if index < 0 || index >= vertexCount {
		return 0, errors.Errorf("face index %q out of range", corner)
	}
	return index, nil
}

// WriteQuads writes a quad mesh as OBJ text. Input indices are zero-based.
func WriteQuads(w io.Writer, vertices []r3.Vec, quads [][4]int) error {
	buf := bufio.NewWriter(w)
	for _, v := range vertices {
		fmt.Fprintf(buf, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, q := range quads {
		fmt.Fprintf(buf, "f %d %d %d %d\n", q[0]+1, q[1]+1, q[2]+1, q[3]+1)
	}
	return errors.Wrap(buf.Flush(), "writing obj")
}
