package aeno

import (
	"bytes"
	"fmt"
	"io"

	"github.com/netisu/aeno"
	"github.com/qmuntal/gltf"

	"github.com/netisu/collmesh"
)

// SceneObject is a mesh object linked into a Scene.
type SceneObject struct {
	*aeno.Object
	Name string
}

// Scene holds the linked objects and the current active selection.
type Scene struct {
	Objects []*SceneObject
	active  *SceneObject
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Active returns the selected object, or nil.
func (s *Scene) Active() *SceneObject { return s.active }

// Link adds obj to the scene and makes it the active object.
func (s *Scene) Link(obj *SceneObject) {
	s.Objects = append(s.Objects, obj)
	s.active = obj
}

// Materialize converts m into an aeno object, links it into the scene and selects it.
func (s *Scene) Materialize(m *collmesh.Mesh) (*SceneObject, error) {
	obj, err := Materialize(m)
	if err != nil {
		return nil, err
	}
	s.Link(obj)
	return obj, nil
}

// Materialize converts m into an unlinked aeno object. Indices are checked
// before any triangle is built.
func Materialize(m *collmesh.Mesh) (*SceneObject, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	triangles := make([]*aeno.Triangle, 0, len(m.Triangles))
	for _, tri := range m.Triangles {
		t := &aeno.Triangle{}
		t.V1.Position = vector(m.Vertices[tri[0]])
		t.V2.Position = vector(m.Vertices[tri[1]])
		t.V3.Position = vector(m.Vertices[tri[2]])
		t.FixNormals()
		triangles = append(triangles, t)
	}

	return &SceneObject{
		Object: &aeno.Object{
			Mesh:   aeno.NewTriangleMesh(triangles),
			Color:  aeno.Transparent,
			Matrix: aeno.Identity(),
		},
		Name: m.Name,
	}, nil
}

// LoadObject decodes an NTSM container into an unlinked aeno object.
// A payload without meshes, as written for an empty collision mesh, loads
// as an object with no triangles.
func LoadObject(r io.Reader) (*SceneObject, error) {
	hdr, glbData, err := collmesh.DecodeContainer(r)
	if err != nil {
		return nil, err
	}

	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(glbData)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("glb decode failed: %w", err)
	}

	var mesh *aeno.Mesh
	if len(doc.Meshes) == 0 {
		mesh = aeno.NewTriangleMesh(nil)
	} else {
		mesh, err = aeno.LoadGLTFFromReader(bytes.NewReader(glbData))
		if err != nil {
			return nil, err
		}
	}

	return &SceneObject{
		Object: &aeno.Object{
			Mesh:   mesh,
			Color:  aeno.Transparent,
			Matrix: aeno.Identity(),
		},
		Name: hdr.ItemName(),
	}, nil
}

func vector(v collmesh.Vertex) aeno.Vector {
	return aeno.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
