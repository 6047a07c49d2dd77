package kernel

// Mesh is a flat triangle mesh produced by tessellating a geometry.
// vertices has 3 floats per vertex (x,y,z), normals has 3 floats per vertex,
// indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Source   string    `json:"source"`   // geometry type the mesh was built from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// AddTriangle appends one flat-shaded triangle.
func (m *Mesh) AddTriangle(a, b, c, normal [3]float64) {
	base := uint32(m.VertexCount())
	for _, v := range [3][3]float64{a, b, c} {
		m.Vertices = append(m.Vertices, float32(v[0]), float32(v[1]), float32(v[2]))
		m.Normals = append(m.Normals, float32(normal[0]), float32(normal[1]), float32(normal[2]))
	}
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// Append adds every triangle of o to m, re-basing o's indices.
func (m *Mesh) Append(o *Mesh) {
	base := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, o.Vertices...)
	m.Normals = append(m.Normals, o.Normals...)
	for _, i := range o.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}

// Triangle returns the vertex coordinates of triangle i.
func (m *Mesh) Triangle(i int) [3][3]float64 {
	var out [3][3]float64
	for j := 0; j < 3; j++ {
		v := m.Indices[i*3+j] * 3
		out[j] = [3]float64{float64(m.Vertices[v]), float64(m.Vertices[v+1]), float64(m.Vertices[v+2])}
	}
	return out
}
