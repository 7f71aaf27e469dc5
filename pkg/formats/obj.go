package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedOBJ = errors.New("malformed OBJ data")
	ErrOBJIndex     = errors.New("OBJ index out of range")
)

// OBJVertex references one corner of a face. Indices are zero-based;
// TexCoord and Normal are -1 when the face omits them.
type OBJVertex struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJGroup holds the triangles drawn with one material.
type OBJGroup struct {
	Material  string // empty for faces before any usemtl
	Triangles [][3]OBJVertex
}

// OBJ is a parsed Wavefront object file.
type OBJ struct {
	Positions    [][3]float32
	Normals      [][3]float32
	TexCoords    [][2]float32
	Groups       []OBJGroup // in order of first use
	MaterialLibs []string
}

// TriangleCount returns the number of triangles across all groups.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, g := range o.Groups {
		n += len(g.Triangles)
	}
	return n
}

// ParseOBJ parses OBJ text. Polygons are fan-triangulated.
func ParseOBJ(data []byte) (*OBJ, error) {
	p := objParser{obj: &OBJ{}, groupIndex: map[string]int{}}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedOBJ, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := p.obj.validate(); err != nil {
		return nil, err
	}
	return p.obj, nil
}

type objParser struct {
	obj        *OBJ
	groupIndex map[string]int
	material   string
}

func (p *objParser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.obj.Positions = append(p.obj.Positions, [3]float32{v[0], v[1], v[2]})
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.obj.Normals = append(p.obj.Normals, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 1)
		if err != nil {
			return err
		}
		uv := [2]float32{v[0], 0}
		if len(v) > 1 {
			uv[1] = v[1]
		}
		p.obj.TexCoords = append(p.obj.TexCoords, uv)
	case "f":
		return p.parseFace(fields[1:])
	case "usemtl":
		if len(fields) < 2 {
			return errors.New("usemtl without a name")
		}
		p.material = strings.Join(fields[1:], " ")
	case "mtllib":
		if len(fields) < 2 {
			return errors.New("mtllib without a file")
		}
		p.obj.MaterialLibs = append(p.obj.MaterialLibs, fields[1:]...)
	case "o", "g", "s":
		// grouping and smoothing do not affect the draw layout
	}
	return nil
}

func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face with %d vertices", len(fields))
	}

	corners := make([]OBJVertex, len(fields))
	for i, f := range fields {
		c, err := p.parseCorner(f)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	g := p.group()
	for i := 1; i+1 < len(corners); i++ {
		g.Triangles = append(g.Triangles, [3]OBJVertex{corners[0], corners[i], corners[i+1]})
	}
	return nil
}

func (p *objParser) group() *OBJGroup {
	idx, ok := p.groupIndex[p.material]
	if !ok {
		p.obj.Groups = append(p.obj.Groups, OBJGroup{Material: p.material})
		idx = len(p.obj.Groups) - 1
		p.groupIndex[p.material] = idx
	}
	return &p.obj.Groups[idx]
}

// parseCorner parses v, v/t, v//n or v/t/n.
func (p *objParser) parseCorner(s string) (OBJVertex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJVertex{}, fmt.Errorf("bad face vertex %q", s)
	}

	c := OBJVertex{TexCoord: -1, Normal: -1}
	var err error
	if c.Position, err = resolveIndex(parts[0], len(p.obj.Positions)); err != nil {
		return OBJVertex{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.TexCoord, err = resolveIndex(parts[1], len(p.obj.TexCoords)); err != nil {
			return OBJVertex{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.Normal, err = resolveIndex(parts[2], len(p.obj.Normals)); err != nil {
			return OBJVertex{}, err
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative (relative to count) index.
func resolveIndex(s string, count int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	switch {
	case v > 0:
		return v - 1, nil
	case v < 0:
		if count+v < 0 {
			return 0, fmt.Errorf("%w: relative index %d with %d defined", ErrOBJIndex, v, count)
		}
		return count + v, nil
	default:
		return 0, errors.New("index 0 is not valid")
	}
}

func (o *OBJ) validate() error {
	check := func(idx, n int, kind string) error {
		if idx < -1 || idx >= n || (idx == -1 && kind == "position") {
			return fmt.Errorf("%w: %s %d of %d", ErrOBJIndex, kind, idx+1, n)
		}
		return nil
	}
	for _, g := range o.Groups {
		for _, tri := range g.Triangles {
			for _, c := range tri {
				if err := check(c.Position, len(o.Positions), "position"); err != nil {
					return err
				}
				if err := check(c.TexCoord, len(o.TexCoords), "texcoord"); err != nil {
					return err
				}
				if err := check(c.Normal, len(o.Normals), "normal"); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func parseFloats(fields []string, min int) ([]float32, error) {
	if len(fields) < min {
		return nil, fmt.Errorf("expected %d values, got %d", min, len(fields))
	}
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// Model is an OBJ together with the materials of its libraries.
type Model struct {
	Name      string
	OBJ       *OBJ
	Materials []MTLMaterial // declaration order across all libraries
}

// LoadOBJ reads an OBJ file and every MTL library it references.
// Library paths are relative to the OBJ file's directory.
func LoadOBJ(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m := &Model{Name: filepath.Base(path), OBJ: obj}
	dir := filepath.Dir(path)
	for _, lib := range obj.MaterialLibs {
		libPath := lib
		if !filepath.IsAbs(libPath) {
			libPath = filepath.Join(dir, lib)
		}
		raw, err := os.ReadFile(libPath)
		if err != nil {
			return nil, fmt.Errorf("material library: %w", err)
		}
		mtl, err := ParseMTL(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", libPath, err)
		}
		m.Materials = append(m.Materials, mtl...)
	}
	return m, nil
}
