package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gsexplode/internal/engine/gfx"
	"github.com/Faultbox/gsexplode/pkg/formats"
)

const defaultMaterialName = "default"

// Load reads an OBJ file and its material libraries and uploads it in the
// given vertex format.
func Load(ctx gfx.Context, path, format string) (*Drawable, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	model, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return Build(ctx, path, Interleave(model, f), f)
}

// Interleave flattens model into one group per material. Groups follow the
// material libraries' declaration order; materials used without being
// declared, and faces with no material, follow in first-use order.
func Interleave(model *formats.Model, f Format) []Group {
	obj := model.OBJ

	byName := map[string]formats.OBJGroup{}
	for _, g := range obj.Groups {
		byName[g.Material] = g
	}

	var groups []Group
	emitted := map[string]bool{}
	emit := func(mat formats.MTLMaterial, og formats.OBJGroup) {
		emitted[og.Material] = true
		groups = append(groups, Group{
			Material: toMaterial(mat),
			Vertices: interleaveTriangles(obj, og.Triangles, f),
		})
	}

	for _, mat := range model.Materials {
		og, ok := byName[mat.Name]
		if !ok || emitted[mat.Name] {
			continue
		}
		emit(mat, og)
	}
	for _, og := range obj.Groups {
		if emitted[og.Material] {
			continue
		}
		name := og.Material
		if name == "" {
			name = defaultMaterialName
		}
		emit(formats.DefaultMaterial(name), og)
	}
	return groups
}

func toMaterial(m formats.MTLMaterial) Material {
	return Material{
		Name:      m.Name,
		Ambient:   mgl32.Vec3(m.Ambient),
		Diffuse:   mgl32.Vec3(m.Diffuse),
		Specular:  mgl32.Vec3(m.Specular),
		Shininess: m.Shininess,
	}
}

func interleaveTriangles(obj *formats.OBJ, tris [][3]formats.OBJVertex, f Format) []float32 {
	out := make([]float32, 0, len(tris)*3*f.Stride)
	for _, tri := range tris {
		faceNormal := triangleNormal(obj, tri)
		for _, c := range tri {
			for _, a := range f.Attributes {
				var src [4]float32
				switch a.Tag {
				case TagPosition:
					p := obj.Positions[c.Position]
					src = [4]float32{p[0], p[1], p[2], 1}
				case TagNormal:
					n := faceNormal
					if c.Normal >= 0 {
						n = obj.Normals[c.Normal]
					}
					src = [4]float32{n[0], n[1], n[2], 0}
				case TagTexCoord:
					if c.TexCoord >= 0 {
						uv := obj.TexCoords[c.TexCoord]
						src = [4]float32{uv[0], uv[1], 0, 0}
					}
				}
				out = append(out, src[:a.Width]...)
			}
		}
	}
	return out
}

// triangleNormal is used for corners that carry no normal.
func triangleNormal(obj *formats.OBJ, tri [3]formats.OBJVertex) [3]float32 {
	a := mgl32.Vec3(obj.Positions[tri[0].Position])
	b := mgl32.Vec3(obj.Positions[tri[1].Position])
	c := mgl32.Vec3(obj.Positions[tri[2].Position])
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return [3]float32{0, 1, 0}
	}
	return n.Normalize()
}
