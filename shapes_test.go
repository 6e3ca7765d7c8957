package stage3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeMesh(t *testing.T) {

	cube := NewCubeMesh(2, 4, 6)

	assert.Len(t, cube.VertexPositions, 24)
	assert.Equal(t, 12, cube.TriangleCount())

	assert.InDelta(t, 2, cube.Dimensions.Width(), 1e-9)
	assert.InDelta(t, 4, cube.Dimensions.Height(), 1e-9)
	assert.InDelta(t, 6, cube.Dimensions.Depth(), 1e-9)
	assert.True(t, cube.Dimensions.Center().Equals(NewVectorZero()))

	// Every triangle winds counter-clockwise seen from outside, so its face normal agrees with its vertex normals
	part := cube.MeshParts[0]
	for i := 0; i < len(part.Indices); i += 3 {
		a, b, c := part.Indices[i], part.Indices[i+1], part.Indices[i+2]
		faceNormal := calculateNormal(cube.VertexPositions[a], cube.VertexPositions[b], cube.VertexPositions[c])
		assert.True(t, faceNormal.Equals(cube.VertexNormals[a]), "triangle %d: %s != %s", i/3, faceNormal, cube.VertexNormals[a])
	}

}

func TestPlaneMeshFacesUp(t *testing.T) {

	plane := NewPlaneMesh(10, 10)
	require.Equal(t, 2, plane.TriangleCount())

	indices := plane.MeshParts[0].Indices
	for i := 0; i < len(indices); i += 3 {
		n := calculateNormal(plane.VertexPositions[indices[i]], plane.VertexPositions[indices[i+1]], plane.VertexPositions[indices[i+2]])
		assert.True(t, n.Equals(WorldUp), "got %s", n)
	}

	assert.InDelta(t, 0, plane.Dimensions.Height(), 1e-9)

}

func TestSphereMesh(t *testing.T) {

	sphere := NewSphereMesh(3, 16, 8)

	for _, v := range sphere.VertexPositions {
		assert.InDelta(t, 3, v.Magnitude(), 1e-9)
	}

	// Two triangles per quad, minus one per quad on each pole row
	assert.Equal(t, 16*8*2-16*2, sphere.TriangleCount())
	assert.InDelta(t, 6, sphere.Dimensions.Height(), 1e-9)

}

func TestRecalculateNormals(t *testing.T) {

	cube := NewCubeMesh(1, 1, 1)
	original := append([]Vector{}, cube.VertexNormals...)

	cube.RecalculateNormals()

	for i := range original {
		assert.True(t, original[i].Equals(cube.VertexNormals[i]), "vertex %d", i)
	}

}

func TestAddMeshPartPanicsOnPartialTriangle(t *testing.T) {
	mesh := NewMesh("Broken")
	assert.Panics(t, func() { mesh.AddMeshPart(NewMaterial("Broken"), 0, 1) })
}

func TestModelWorldDimensions(t *testing.T) {

	model := NewModel("Box", NewCubeMesh(2, 2, 2))
	model.SetLocalPosition(5, 0, 0)
	model.SetLocalScale(2, 1, 1)

	dim := model.WorldDimensions()
	assert.InDelta(t, 3, dim[0].X, 1e-9)
	assert.InDelta(t, 7, dim[1].X, 1e-9)
	assert.InDelta(t, 2, dim.Height(), 1e-9)

}
