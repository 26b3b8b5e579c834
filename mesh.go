// Package collmesh imports JSON collision meshes and turns them into
// triangle meshes that can be handed to a scene adapter or exported.
package collmesh

import "math"

// Vertex is a position in model space. Its identity is its index in Mesh.Vertices.
type Vertex struct {
	X, Y, Z float64
}

// Face is an ordered polygon of vertex indices in input winding order.
type Face []int

// Triangle is an ordered triple of vertex indices.
type Triangle [3]int

// Mesh is the importer's output: a vertex list and the triangles over it.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Triangles []Triangle
}

// Validate checks that every triangle references an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, t := range m.Triangles {
		for j, idx := range t {
			if idx < 0 || idx >= n {
				return &IndexRangeError{Position: i*3 + j, Index: idx, VertexCount: n}
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty mesh yields two zero vertices.
func (m *Mesh) Bounds() (lo, hi Vertex) {
	if len(m.Vertices) == 0 {
		return Vertex{}, Vertex{}
	}
	lo = Vertex{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = Vertex{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}
	return lo, hi
}
