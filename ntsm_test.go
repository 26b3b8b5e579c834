package collmesh

import (
	"bytes"
	"encoding/binary"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer(t *testing.T) {
	payload := []byte("glTF\x02\x00\x00\x00payload")

	var buf bytes.Buffer
	require.NoError(t, EncodeContainer(&buf, "crate_01", payload))
	require.Equal(t, HeaderSize+len(payload), buf.Len())
	assert.Equal(t, "glTF", string(buf.Bytes()[HeaderSize:HeaderSize+4]))

	hdr, glb, err := DecodeContainer(&buf)
	require.NoError(t, err)
	assert.Equal(t, "crate_01", hdr.ItemName())
	assert.Equal(t, uint32(Version), hdr.Version)
	assert.Equal(t, FlagCollision, hdr.Flags&FlagCollision)
	assert.Zero(t, hdr.Flags&FlagParticles)
	assert.Equal(t, payload, glb)
}

func TestContainer_HeaderFits(t *testing.T) {
	assert.LessOrEqual(t, binary.Size(Header{}), HeaderSize)
}

func TestNewHeader_TruncatesName(t *testing.T) {
	hdr := NewHeader(strings.Repeat("n", 300), 10)
	assert.Len(t, hdr.ItemName(), 127)
	assert.Equal(t, uint32(HeaderSize+10), hdr.ParticleOffset)
}

func TestDecodeContainer_Invalid(t *testing.T) {
	var good bytes.Buffer
	require.NoError(t, EncodeContainer(&good, "x", []byte("abcd")))

	badMagic := bytes.Clone(good.Bytes())
	copy(badMagic, "XXXX")

	badVersion := bytes.Clone(good.Bytes())
	binary.LittleEndian.PutUint32(badVersion[4:], 7)

	truncated := good.Bytes()[:good.Len()-2]

	for name, data := range map[string][]byte{
		"magic":     badMagic,
		"version":   badVersion,
		"truncated": truncated,
		"short":     []byte("NTSM"),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeContainer(bytes.NewReader(data))
			require.ErrorIs(t, err, ErrContainer)
		})
	}
}

func TestDecodeContainer_OversizedClaim(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeContainer(&buf, "x", []byte("abcd")))
	data := buf.Bytes()
	// GLBSize follows magic, version, name, flags and alignment
	binary.LittleEndian.PutUint32(data[4+4+nameSize+4+4:], 1<<30)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	_, _, err := DecodeContainer(bytes.NewReader(data))

	runtime.ReadMemStats(&after)
	require.ErrorIs(t, err, ErrContainer)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}
