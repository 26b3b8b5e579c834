package collmesh

// Triangulate splits a convex planar face into triangles fanned around its
// first vertex. Winding order is preserved. Concave or self-intersecting
// faces are not detected and yield overlapping triangles.
func Triangulate(face Face) ([]Triangle, error) {
	if len(face) < 3 {
		return nil, &DegenerateFaceError{Face: -1, Size: len(face)}
	}
	tris := make([]Triangle, 0, len(face)-2)
	for i := 1; i < len(face)-1; i++ {
		tris = append(tris, Triangle{face[0], face[i], face[i+1]})
	}
	return tris, nil
}
