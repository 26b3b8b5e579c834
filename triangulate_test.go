package collmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name string
		face Face
		want []Triangle
	}{
		{"triangle", Face{5, 6, 7}, []Triangle{{5, 6, 7}}},
		{"quad", Face{0, 1, 2, 3}, []Triangle{{0, 1, 2}, {0, 2, 3}}},
		{"pentagon", Face{9, 4, 2, 7, 1}, []Triangle{{9, 4, 2}, {9, 2, 7}, {9, 7, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Triangulate(tt.face)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTriangulate_FanProperties(t *testing.T) {
	for n := 3; n <= 12; n++ {
		face := make(Face, n)
		for i := range face {
			face[i] = 100 + i*3
		}

		tris, err := Triangulate(face)
		require.NoError(t, err)
		require.Len(t, tris, n-2)

		pos := make(map[int]int, n)
		for i, idx := range face {
			pos[idx] = i
		}
		for _, tri := range tris {
			assert.Equal(t, face[0], tri[0])
			for _, idx := range tri {
				_, ok := pos[idx]
				assert.True(t, ok, "index %d not in source face", idx)
			}
			// order is a subsequence of the face
			assert.Less(t, pos[tri[0]], pos[tri[1]])
			assert.Less(t, pos[tri[1]], pos[tri[2]])
		}
	}
}

func TestTriangulate_Degenerate(t *testing.T) {
	for _, face := range []Face{nil, {}, {1}, {1, 2}} {
		_, err := Triangulate(face)
		require.ErrorIs(t, err, ErrDegenerateFace)

		var de *DegenerateFaceError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, len(face), de.Size)
	}
}
