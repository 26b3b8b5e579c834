package collmesh

import (
	"errors"
	"fmt"
)

var (
	// ErrRead is returned when the input file cannot be opened or read.
	ErrRead = errors.New("collmesh: read failed")
	// ErrParse is returned for input that is not valid JSON.
	ErrParse = errors.New("collmesh: invalid json")
	// ErrSchema is returned when the document does not have the expected shape.
	ErrSchema = errors.New("collmesh: schema violation")
	// ErrIndexOutOfRange is returned when an index does not reference a vertex.
	ErrIndexOutOfRange = errors.New("collmesh: index out of range")
	// ErrDegenerateFace is returned for faces with fewer than three indices.
	ErrDegenerateFace = errors.New("collmesh: degenerate face")
	// ErrContainer is returned when an NTSM container header is invalid.
	ErrContainer = errors.New("collmesh: invalid container")
)

// ReadError wraps a filesystem or decompression failure.
//
// The underlying error (for example fs.ErrNotExist) is reachable via errors.Unwrap.
type ReadError struct {
	Path  string
	cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.cause)
}

func (e *ReadError) Is(target error) bool { return target == ErrRead }

func (e *ReadError) Unwrap() error { return e.cause }

// SchemaError reports a missing or mistyped field. Field is a JSON path
// such as "[0].mesh.vertices[3].x".
type SchemaError struct {
	Field string
	Msg   string
	cause error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "schema: " + e.Msg
	}
	return fmt.Sprintf("schema: %s: %s", e.Field, e.Msg)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

func (e *SchemaError) Unwrap() error { return e.cause }

// IndexRangeError reports an index that does not reference an existing vertex.
// It matches both ErrIndexOutOfRange and ErrSchema.
type IndexRangeError struct {
	Position    int // position in the flat index list
	Index       int
	VertexCount int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("index %d at position %d out of range [0, %d)", e.Index, e.Position, e.VertexCount)
}

func (e *IndexRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange || target == ErrSchema
}

// DegenerateFaceError reports a face with fewer than three indices.
type DegenerateFaceError struct {
	Face int
	Size int
}

func (e *DegenerateFaceError) Error() string {
	if e.Face < 0 {
		return fmt.Sprintf("degenerate face: %d indices", e.Size)
	}
	return fmt.Sprintf("degenerate face %d: %d indices", e.Face, e.Size)
}

func (e *DegenerateFaceError) Is(target error) bool { return target == ErrDegenerateFace }
