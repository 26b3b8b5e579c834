package collmesh

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	Magic      = "NTSM"
	Version    = 1
	HeaderSize = 192
	nameSize   = 128
)

// Header flag bits.
const (
	FlagParticles uint8 = 1 << 0
	FlagCollision uint8 = 1 << 1
)

// Header is the fixed little-endian prefix of an NTSM container. The
// encoded struct is padded with zeros up to HeaderSize.
type Header struct {
	Magic          [4]byte
	Version        uint32
	Name           [nameSize]byte
	Flags          uint8
	_              [3]byte
	GLBOffset      uint32
	GLBSize        uint32
	ParticleOffset uint32
	ParticleSize   uint32
	TextureCount   uint32
	TextureOffset  uint32
}

// ItemName returns the header name without trailing NUL bytes.
func (h *Header) ItemName() string {
	return string(bytes.TrimRight(h.Name[:], "\x00"))
}

// NewHeader builds a collision-mesh header for a GLB payload of glbSize bytes.
// Names longer than 127 bytes are truncated.
func NewHeader(name string, glbSize int) Header {
	h := Header{
		Version:        Version,
		Flags:          FlagCollision,
		GLBOffset:      HeaderSize,
		GLBSize:        uint32(glbSize),
		ParticleOffset: HeaderSize + uint32(glbSize),
	}
	copy(h.Magic[:], Magic)

	b := []byte(name)
	if len(b) > nameSize-1 {
		b = b[:nameSize-1]
	}
	copy(h.Name[:], b)
	return h
}

// EncodeContainer writes name and the GLB payload as an NTSM container.
func EncodeContainer(w io.Writer, name string, glb []byte) error {
	hdr := NewHeader(name, len(glb))
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("header write failed: %w", err)
	}

	padding := make([]byte, HeaderSize-binary.Size(hdr))
	if _, err := w.Write(padding); err != nil {
		return fmt.Errorf("padding write failed: %w", err)
	}

	if _, err := w.Write(glb); err != nil {
		return fmt.Errorf("glb write failed: %w", err)
	}
	return nil
}

// DecodeContainer reads an NTSM container and returns its header and GLB bytes.
func DecodeContainer(r io.Reader) (*Header, []byte, error) {
	var hdr Header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, nil, fmt.Errorf("%w: header: %v", ErrContainer, err)
	}
	if string(hdr.Magic[:]) != Magic {
		return nil, nil, fmt.Errorf("%w: bad magic %q", ErrContainer, hdr.Magic[:])
	}
	if hdr.Version != Version {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", ErrContainer, hdr.Version)
	}
	if hdr.GLBOffset < HeaderSize {
		return nil, nil, fmt.Errorf("%w: glb offset %d inside header", ErrContainer, hdr.GLBOffset)
	}

	skip := int64(hdr.GLBOffset) - int64(binary.Size(hdr))
	if _, err := io.CopyN(io.Discard, r, skip); err != nil {
		return nil, nil, fmt.Errorf("%w: header padding: %v", ErrContainer, err)
	}

	// GLBSize is untrusted: grow with the bytes actually present.
	var glb bytes.Buffer
	n, err := io.Copy(&glb, io.LimitReader(r, int64(hdr.GLBSize)))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: glb payload: %v", ErrContainer, err)
	}
	if n != int64(hdr.GLBSize) {
		return nil, nil, fmt.Errorf("%w: glb payload: got %d of %d bytes", ErrContainer, n, hdr.GLBSize)
	}
	return &hdr, glb.Bytes(), nil
}
