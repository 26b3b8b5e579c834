package aeno

import (
	"bytes"
	"testing"

	"github.com/netisu/aeno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netisu/collmesh"
	"github.com/netisu/collmesh/adapters/glb"
)

func testMesh() *collmesh.Mesh {
	return &collmesh.Mesh{
		Name:      "ramp",
		Vertices:  []collmesh.Vertex{{0, 0, 0}, {2, 0, 0}, {2, 1, -3}, {0, 1, -3}},
		Triangles: []collmesh.Triangle{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestMaterialize(t *testing.T) {
	obj, err := Materialize(testMesh())
	require.NoError(t, err)
	assert.Equal(t, "ramp", obj.Name)
	require.NotNil(t, obj.Mesh)
	require.Len(t, obj.Mesh.Triangles, 2)

	tri := obj.Mesh.Triangles[1]
	assert.Equal(t, aeno.Vector{X: 0, Y: 0, Z: 0}, tri.V1.Position)
	assert.Equal(t, aeno.Vector{X: 2, Y: 1, Z: -3}, tri.V2.Position)
	assert.Equal(t, aeno.Vector{X: 0, Y: 1, Z: -3}, tri.V3.Position)
}

func TestMaterialize_RejectsBadIndex(t *testing.T) {
	m := testMesh()
	m.Triangles[0][2] = 17

	_, err := Materialize(m)
	require.ErrorIs(t, err, collmesh.ErrIndexOutOfRange)
}

func TestMaterialize_Empty(t *testing.T) {
	obj, err := Materialize(&collmesh.Mesh{Name: "empty"})
	require.NoError(t, err)
	assert.Empty(t, obj.Mesh.Triangles)
}

func TestScene_LinksAndSelects(t *testing.T) {
	scene := NewScene()
	require.Nil(t, scene.Active())

	first, err := scene.Materialize(testMesh())
	require.NoError(t, err)
	assert.Same(t, first, scene.Active())

	m := testMesh()
	m.Name = "second"
	second, err := scene.Materialize(m)
	require.NoError(t, err)

	assert.Len(t, scene.Objects, 2)
	assert.Same(t, second, scene.Active())

	bad := testMesh()
	bad.Triangles[1][0] = -1
	_, err = scene.Materialize(bad)
	require.Error(t, err)
	assert.Len(t, scene.Objects, 2)
	assert.Same(t, second, scene.Active())
}

func TestLoadObject(t *testing.T) {
	data, err := glb.Marshal(testMesh())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, collmesh.EncodeContainer(&buf, "ramp", data))

	obj, err := LoadObject(&buf)
	require.NoError(t, err)
	assert.Equal(t, "ramp", obj.Name)
	require.NotNil(t, obj.Mesh)
	assert.Len(t, obj.Mesh.Triangles, 2)
}

func TestLoadObject_EmptyMesh(t *testing.T) {
	for _, m := range []*collmesh.Mesh{
		{Name: "empty"},
		{Name: "loose", Vertices: []collmesh.Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
	} {
		t.Run(m.Name, func(t *testing.T) {
			data, err := glb.Marshal(m)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, collmesh.EncodeContainer(&buf, m.Name, data))

			obj, err := LoadObject(&buf)
			require.NoError(t, err)
			assert.Equal(t, m.Name, obj.Name)
			require.NotNil(t, obj.Mesh)
			assert.Empty(t, obj.Mesh.Triangles)
		})
	}
}

func TestLoadObject_BadContainer(t *testing.T) {
	_, err := LoadObject(bytes.NewReader([]byte("not a container at all")))
	require.ErrorIs(t, err, collmesh.ErrContainer)
}
