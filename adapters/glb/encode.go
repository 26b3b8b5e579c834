// Package glb exports collision meshes as binary glTF.
package glb

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/netisu/collmesh"
)

const (
	attrPosition = "POSITION"
	attrNormal   = "NORMAL"
)

// Document builds a glTF document with a single node holding m as one
// triangle primitive. Vertex normals are area-weighted face normals.
// A mesh without triangles becomes a node with no mesh: a primitive without
// indices would be read back as a triangle list over its vertices.
func Document(m *collmesh.Mesh) (*gltf.Document, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "collmesh"

	node := &gltf.Node{Name: m.Name}
	if len(m.Triangles) > 0 {
		prim := &gltf.Primitive{
			Attributes: map[string]int{
				attrPosition: modeler.WritePosition(doc, positions(m)),
				attrNormal:   modeler.WriteNormal(doc, normals(m)),
			},
			Indices: gltf.Index(modeler.WriteIndices(doc, indices(m))),
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       m.Name,
			Primitives: []*gltf.Primitive{prim},
		})
		node.Mesh = gltf.Index(len(doc.Meshes) - 1)
	}

	doc.Nodes = append(doc.Nodes, node)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}

// Encode writes m to w as a GLB.
func Encode(w io.Writer, m *collmesh.Mesh) error {
	doc, err := Document(m)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("glb encode failed: %w", err)
	}
	return nil
}

// Marshal returns the GLB encoding of m.
func Marshal(m *collmesh.Mesh) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func positions(m *collmesh.Mesh) [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	return out
}

func indices(m *collmesh.Mesh) []uint32 {
	out := make([]uint32, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		out = append(out, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return out
}

func normals(m *collmesh.Mesh) [][3]float32 {
	acc := make([][3]float64, len(m.Vertices))
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		vx, vy, vz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
		n := [3]float64{uy*vz - uz*vy, uz*vx - ux*vz, ux*vy - uy*vx}
		for _, idx := range t {
			acc[idx][0] += n[0]
			acc[idx][1] += n[1]
			acc[idx][2] += n[2]
		}
	}

	out := make([][3]float32, len(acc))
	for i, n := range acc {
		l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l == 0 {
			// unreferenced or degenerate: glTF requires unit length
			out[i] = [3]float32{0, 1, 0}
			continue
		}
		out[i] = [3]float32{float32(n[0] / l), float32(n[1] / l), float32(n[2] / l)}
	}
	return out
}
