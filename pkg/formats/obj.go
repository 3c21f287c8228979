// Package formats implements parsers for the text-based asset formats
// the viewer consumes: OBJ mesh documents and MTL material documents.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Mesh is the flat, triangulated output of an OBJ document. Positions,
// Normals and TexCoords are parallel arrays with one entry per emitted
// vertex: three floats per position/normal, two per texture coordinate.
type Mesh struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32

	// MaterialLib is the filename named by the mtllib directive, if any.
	MaterialLib string

	Bounds Bounds
}

// Bounds is the axis-aligned bounding box over all emitted positions.
type Bounds struct {
	Min, Max [3]float32
}

// Radius returns half the largest axis extent.
func (b Bounds) Radius() float32 {
	r := b.Max[0] - b.Min[0]
	if s := b.Max[1] - b.Min[1]; s > r {
		r = s
	}
	if s := b.Max[2] - b.Min[2]; s > r {
		r = s
	}
	return r / 2
}

// VertexCount returns the number of emitted vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of emitted triangles.
func (m *Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}

// Center returns the mean of all emitted positions.
func (m *Mesh) Center() [3]float32 {
	var c [3]float32
	n := m.VertexCount()
	if n == 0 {
		return c
	}
	for i := 0; i < len(m.Positions); i += 3 {
		c[0] += m.Positions[i]
		c[1] += m.Positions[i+1]
		c[2] += m.Positions[i+2]
	}
	c[0] /= float32(n)
	c[1] /= float32(n)
	c[2] /= float32(n)
	return c
}

// CenterAtOrigin shifts every position so the model center lands at the
// origin, letting the model transform stay identity at render time.
// Returns the offset that was subtracted.
func (m *Mesh) CenterAtOrigin() [3]float32 {
	c := m.Center()
	for i := 0; i < len(m.Positions); i += 3 {
		m.Positions[i] -= c[0]
		m.Positions[i+1] -= c[1]
		m.Positions[i+2] -= c[2]
	}
	for i := 0; i < 3; i++ {
		m.Bounds.Min[i] -= c[i]
		m.Bounds.Max[i] -= c[i]
	}
	return c
}

// faceRef is one corner of a polygon face: indices into the position,
// texcoord and normal pools. Zero means "not referenced" and resolves
// to the pools' default entry.
type faceRef struct {
	pos, tex, norm int
}

// ParseOBJ parses an OBJ mesh document into flat triangle arrays.
//
// Pools are 1-based with index 0 reserved as a zero-value default, so a
// face corner that omits a texcoord or normal degrades to (0,0) / (0,0,0)
// instead of erroring. Negative indices count back from the current pool
// end. Faces with more than three corners are fan-triangulated from the
// first corner, which assumes convex planar input. Texture V coordinates
// are flipped (v = 1-v) on emission to match OpenGL's image origin.
func ParseOBJ(data []byte) (*Mesh, error) {
	// Index 0 of each pool is the default sentinel.
	positions := [][3]float32{{}}
	texcoords := [][2]float32{{}}
	normals := [][3]float32{{}}

	mesh := &Mesh{
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	emit := func(r faceRef) {
		p := positions[resolveIndex(r.pos, len(positions))]
		n := normals[resolveIndex(r.norm, len(normals))]
		t := texcoords[resolveIndex(r.tex, len(texcoords))]

		mesh.Positions = append(mesh.Positions, p[0], p[1], p[2])
		mesh.Normals = append(mesh.Normals, n[0], n[1], n[2])
		mesh.TexCoords = append(mesh.TexCoords, t[0], 1-t[1])

		for i := 0; i < 3; i++ {
			if p[i] < mesh.Bounds.Min[i] {
				mesh.Bounds.Min[i] = p[i]
			}
			if p[i] > mesh.Bounds.Max[i] {
				mesh.Bounds.Max[i] = p[i]
			}
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex position: %w", lineNo, err)
			}
			positions = append(positions, v)

		case "vt":
			// The V coordinate may be omitted.
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: texcoord: expected at least 1 value", lineNo)
			}
			var tc [2]float32
			for i := 0; i < 2 && i+1 < len(fields); i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
				}
				tc[i] = float32(f)
			}
			texcoords = append(texcoords, tc)

		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex normal: %w", lineNo, err)
			}
			normals = append(normals, v)

		case "f":
			refs := make([]faceRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				r, err := parseFaceRef(tok)
				if err != nil {
					return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
				}
				refs = append(refs, r)
			}
			if len(refs) < 3 {
				continue
			}
			// Fan triangulation from the first corner.
			for i := 1; i < len(refs)-1; i++ {
				emit(refs[0])
				emit(refs[i])
				emit(refs[i+1])
			}

		case "mtllib":
			if len(fields) > 1 {
				mesh.MaterialLib = strings.Join(fields[1:], " ")
			}

		default:
			// Unrecognized directives (usemtl, o, g, s, ...) are ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh document: %w", err)
	}

	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("mesh document contains no faces")
	}

	return mesh, nil
}

// resolveIndex maps a face index to a pool slot. Positive indices are
// 1-based, negative indices count back from the pool end, and anything
// out of range degrades to the default sentinel at slot 0.
func resolveIndex(idx, poolLen int) int {
	if idx < 0 {
		idx = poolLen + idx
	}
	if idx < 1 || idx >= poolLen {
		return 0
	}
	return idx
}

// parseFaceRef splits a face token (v, v/vt, v//vn, v/vt/vn) into its
// index triple. Empty or absent fields resolve to index 0.
func parseFaceRef(tok string) (faceRef, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return faceRef{}, fmt.Errorf("malformed face token %q", tok)
	}

	var r faceRef
	var err error
	r.pos, err = strconv.Atoi(parts[0])
	if err != nil {
		return faceRef{}, fmt.Errorf("malformed face token %q: %w", tok, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		r.tex, err = strconv.Atoi(parts[1])
		if err != nil {
			return faceRef{}, fmt.Errorf("malformed face token %q: %w", tok, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		r.norm, err = strconv.Atoi(parts[2])
		if err != nil {
			return faceRef{}, fmt.Errorf("malformed face token %q: %w", tok, err)
		}
	}
	return r, nil
}

func parseFloats(fields []string, n int) ([3]float32, error) {
	var out [3]float32
	if len(fields) < n {
		return out, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
