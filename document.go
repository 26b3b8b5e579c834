package collmesh

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Document is a decoded collision cache: an array of mesh entries.
// Entries are decoded lazily so a malformed entry only fails when selected.
type Document struct {
	entries []gojson.RawMessage
}

// RawMesh is one entry's data as it appears in the document, before
// faces are grouped and triangulated.
type RawMesh struct {
	Name      string
	Vertices  []Vertex
	Indices   []int
	FaceSizes []int // nil unless the entry carries per-face vertex counts
}

type jsonVertex struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

type jsonMesh struct {
	Vertices  *[]jsonVertex    `json:"vertices"`
	Indices   *[]gojson.Number `json:"indices"`
	FaceSizes []gojson.Number  `json:"faceSizes"`
}

type jsonEntry struct {
	Name string    `json:"name"`
	Mesh *jsonMesh `json:"mesh"`
}

// Load reads and decodes the document at path. Files ending in .gz, .zst
// or .lz4 are decompressed transparently.
func Load(path string) (*Document, error) {
	rc, err := openInput(path)
	if err != nil {
		return nil, &ReadError{Path: path, cause: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ReadError{Path: path, cause: err}
	}
	return decodeBytes(data)
}

// Decode reads a whole document from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Path: "<reader>", cause: err}
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) (*Document, error) {
	var entries []gojson.RawMessage
	if err := gojson.Unmarshal(data, &entries); err != nil {
		if !gojson.Valid(data) {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return nil, schemaFromDecode("", err)
	}
	if entries == nil {
		return nil, &SchemaError{Msg: "document must be an array"}
	}
	if len(entries) == 0 {
		return nil, &SchemaError{Msg: "document has no entries"}
	}
	return &Document{entries: entries}, nil
}

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.entries) }

// Entry decodes entry i. Entry 0 is the one the importer uses by default.
func (d *Document) Entry(i int) (*RawMesh, error) {
	if i < 0 || i >= len(d.entries) {
		return nil, &SchemaError{
			Field: fmt.Sprintf("[%d]", i),
			Msg:   fmt.Sprintf("document has %d entries", len(d.entries)),
		}
	}
	prefix := fmt.Sprintf("[%d]", i)

	var e jsonEntry
	if err := gojson.Unmarshal(d.entries[i], &e); err != nil {
		return nil, schemaFromDecode(prefix, err)
	}
	if e.Mesh == nil {
		return nil, missing(prefix + ".mesh")
	}
	if e.Mesh.Vertices == nil {
		return nil, missing(prefix + ".mesh.vertices")
	}
	if e.Mesh.Indices == nil {
		return nil, missing(prefix + ".mesh.indices")
	}

	indices, err := intList(prefix+".mesh.indices", *e.Mesh.Indices)
	if err != nil {
		return nil, err
	}
	var faceSizes []int
	if e.Mesh.FaceSizes != nil {
		if faceSizes, err = intList(prefix+".mesh.faceSizes", e.Mesh.FaceSizes); err != nil {
			return nil, err
		}
	}

	raw := &RawMesh{
		Name:      e.Name,
		Vertices:  make([]Vertex, len(*e.Mesh.Vertices)),
		Indices:   indices,
		FaceSizes: faceSizes,
	}
	for j, v := range *e.Mesh.Vertices {
		field := fmt.Sprintf("%s.mesh.vertices[%d]", prefix, j)
		switch {
		case v.X == nil:
			return nil, missing(field + ".x")
		case v.Y == nil:
			return nil, missing(field + ".y")
		case v.Z == nil:
			return nil, missing(field + ".z")
		}
		raw.Vertices[j] = Vertex{X: *v.X, Y: *v.Y, Z: *v.Z}
	}
	for j, idx := range raw.Indices {
		if idx < 0 {
			return nil, &SchemaError{
				Field: fmt.Sprintf("%s.mesh.indices[%d]", prefix, j),
				Msg:   fmt.Sprintf("negative index %d", idx),
			}
		}
	}
	return raw, nil
}

// intList converts decoded numbers to ints, naming the element that is not
// an integer.
func intList(field string, nums []gojson.Number) ([]int, error) {
	out := make([]int, len(nums))
	for i, n := range nums {
		v, err := strconv.Atoi(n.String())
		if err != nil {
			return nil, &SchemaError{
				Field: fmt.Sprintf("%s[%d]", field, i),
				Msg:   fmt.Sprintf("not an integer: %q", n.String()),
				cause: err,
			}
		}
		out[i] = v
	}
	return out, nil
}

func missing(field string) error {
	return &SchemaError{Field: field, Msg: "missing"}
}

// schemaFromDecode converts a decode failure on syntactically valid JSON
// into a SchemaError, keeping the field path when the decoder reports one.
func schemaFromDecode(prefix string, err error) error {
	field := prefix
	var typeErr *gojson.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field += "." + typeErr.Field
	}
	return &SchemaError{Field: field, Msg: err.Error(), cause: err}
}
