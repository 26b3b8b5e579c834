package collmesh

import (
	"fmt"
	"log/slog"
	"strings"
)

// Layout selects how the flat index list is grouped into faces.
type Layout int

const (
	// LayoutAuto uses LayoutSized when the entry carries face sizes and
	// LayoutTriangles otherwise.
	LayoutAuto Layout = iota
	// LayoutTriangles reads the indices in fixed groups of three.
	LayoutTriangles
	// LayoutSized reads faces whose vertex counts are listed in faceSizes.
	LayoutSized
)

func (l Layout) String() string {
	switch l {
	case LayoutTriangles:
		return "triangles"
	case LayoutSized:
		return "sized"
	default:
		return "auto"
	}
}

// ParseLayout parses a layout name as printed by Layout.String.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return LayoutAuto, nil
	case "triangles":
		return LayoutTriangles, nil
	case "sized":
		return LayoutSized, nil
	default:
		return LayoutAuto, fmt.Errorf("unknown face layout %q", s)
	}
}

type buildOptions struct {
	layout Layout
	name   string
	logger *slog.Logger
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithLayout overrides the face layout.
func WithLayout(l Layout) BuildOption {
	return func(o *buildOptions) { o.layout = l }
}

// WithName sets the mesh name, taking precedence over the entry's own name.
func WithName(name string) BuildOption {
	return func(o *buildOptions) { o.name = name }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) BuildOption {
	return func(o *buildOptions) { o.logger = l }
}

// DefaultMeshName is used when neither the entry nor the caller names the mesh.
const DefaultMeshName = "imported_mesh"

// Build groups raw indices into faces, checks every index against the
// vertex list and triangulates. An entry with no vertices and no indices
// yields an empty mesh.
func Build(raw *RawMesh, opts ...BuildOption) (*Mesh, error) {
	o := buildOptions{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	layout := o.layout
	if layout == LayoutAuto {
		layout = LayoutTriangles
		if raw.FaceSizes != nil {
			layout = LayoutSized
		}
	}

	faces, err := groupFaces(raw.Indices, raw.FaceSizes, layout)
	if err != nil {
		return nil, err
	}

	n := len(raw.Vertices)
	for i, idx := range raw.Indices {
		if idx < 0 || idx >= n {
			return nil, &IndexRangeError{Position: i, Index: idx, VertexCount: n}
		}
	}

	m := &Mesh{
		Name:     o.name,
		Vertices: raw.Vertices,
	}
	if m.Name == "" {
		m.Name = raw.Name
	}
	if m.Name == "" {
		m.Name = DefaultMeshName
	}

	for i, f := range faces {
		tris, err := Triangulate(f)
		if err != nil {
			return nil, &DegenerateFaceError{Face: i, Size: len(f)}
		}
		m.Triangles = append(m.Triangles, tris...)
	}

	o.logger.Debug("built mesh",
		"name", m.Name,
		"layout", layout.String(),
		"vertices", len(m.Vertices),
		"faces", len(faces),
		"triangles", len(m.Triangles),
	)
	return m, nil
}

func groupFaces(indices, sizes []int, layout Layout) ([]Face, error) {
	switch layout {
	case LayoutTriangles:
		if len(indices)%3 != 0 {
			return nil, &SchemaError{
				Field: "mesh.indices",
				Msg:   fmt.Sprintf("length %d is not a multiple of 3", len(indices)),
			}
		}
		faces := make([]Face, 0, len(indices)/3)
		for i := 0; i < len(indices); i += 3 {
			faces = append(faces, Face(indices[i:i+3]))
		}
		return faces, nil

	case LayoutSized:
		if sizes == nil {
			return nil, missing("mesh.faceSizes")
		}
		faces := make([]Face, 0, len(sizes))
		off := 0
		for i, size := range sizes {
			if size < 3 {
				return nil, &DegenerateFaceError{Face: i, Size: size}
			}
			if off+size > len(indices) {
				return nil, &SchemaError{
					Field: fmt.Sprintf("mesh.faceSizes[%d]", i),
					Msg:   fmt.Sprintf("face overruns index list of length %d", len(indices)),
				}
			}
			faces = append(faces, Face(indices[off:off+size]))
			off += size
		}
		if off != len(indices) {
			return nil, &SchemaError{
				Field: "mesh.faceSizes",
				Msg:   fmt.Sprintf("sizes cover %d of %d indices", off, len(indices)),
			}
		}
		return faces, nil

	default:
		return nil, fmt.Errorf("unsupported face layout %v", layout)
	}
}
