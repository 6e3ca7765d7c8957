package stage3d

import (
	"math"
)

// Dimensions represents the minimum and maximum spatial dimensions of a Mesh.
type Dimensions [2]Vector

// Max returns the maximum value from all of the axes in the Dimensions. For example, if the Dimensions have a min of [-1, -2, -2],
// and a max of [6, 1.5, 1], Max() will return 7, as it's the largest distance between all axes.
func (dim Dimensions) Max() float64 {
	return math.Max(math.Max(dim.Width(), dim.Height()), dim.Depth())
}

// Center returns the center point inbetween the two corners of the dimension set.
func (dim Dimensions) Center() Vector {
	return dim[0].Lerp(dim[1], 0.5)
}

func (dim Dimensions) Width() float64 {
	return dim[1].X - dim[0].X
}

func (dim Dimensions) Height() float64 {
	return dim[1].Y - dim[0].Y
}

func (dim Dimensions) Depth() float64 {
	return dim[1].Z - dim[0].Z
}

// MeshPart is a set of triangles in a Mesh that share a Material.
type MeshPart struct {
	Mesh     *Mesh
	Material *Material
	Indices  []int // Indices into the Mesh's vertex slices; every three form a triangle.
}

// TriangleCount returns the number of triangles in the MeshPart.
func (part *MeshPart) TriangleCount() int {
	return len(part.Indices) / 3
}

// Mesh holds the vertex data for a 3D object. Models reference a Mesh to place it in the world.
type Mesh struct {
	library         *Library
	Name            string
	VertexPositions []Vector
	VertexNormals   []Vector
	VertexUVs       []Vector
	MeshParts       []*MeshPart
	Dimensions      Dimensions
}

// NewMesh returns a new, empty Mesh with the name given.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:            name,
		VertexPositions: []Vector{},
		VertexNormals:   []Vector{},
		VertexUVs:       []Vector{},
		MeshParts:       []*MeshPart{},
	}
}

// Clone returns a copy of the Mesh. Materials are shared with the original.
func (mesh *Mesh) Clone() *Mesh {
	newMesh := NewMesh(mesh.Name)
	newMesh.library = mesh.library
	newMesh.VertexPositions = append(newMesh.VertexPositions, mesh.VertexPositions...)
	newMesh.VertexNormals = append(newMesh.VertexNormals, mesh.VertexNormals...)
	newMesh.VertexUVs = append(newMesh.VertexUVs, mesh.VertexUVs...)
	for _, part := range mesh.MeshParts {
		newMesh.AddMeshPart(part.Material, part.Indices...)
	}
	newMesh.Dimensions = mesh.Dimensions
	return newMesh
}

// Library returns the Library the Mesh was loaded from, if any.
func (mesh *Mesh) Library() *Library {
	return mesh.library
}

// AddVertex adds a vertex to the Mesh and returns its index. Normals and UVs may be zero Vectors.
func (mesh *Mesh) AddVertex(position, normal, uv Vector) int {
	mesh.VertexPositions = append(mesh.VertexPositions, position)
	mesh.VertexNormals = append(mesh.VertexNormals, normal)
	mesh.VertexUVs = append(mesh.VertexUVs, uv)
	return len(mesh.VertexPositions) - 1
}

// AddMeshPart adds a MeshPart drawing the triangles formed by indices with the Material given. The number of indices must be
// divisible by 3, or AddMeshPart will panic.
func (mesh *Mesh) AddMeshPart(material *Material, indices ...int) *MeshPart {

	if len(indices)%3 != 0 {
		panic("Error: AddMeshPart() has not been given a correct number of indices to constitute triangles (it needs to be divisible by 3).")
	}

	part := &MeshPart{
		Mesh:     mesh,
		Material: material,
		Indices:  append([]int{}, indices...),
	}
	mesh.MeshParts = append(mesh.MeshParts, part)
	return part

}

// TriangleCount returns the number of triangles in all of the Mesh's parts.
func (mesh *Mesh) TriangleCount() int {
	count := 0
	for _, part := range mesh.MeshParts {
		count += part.TriangleCount()
	}
	return count
}

// SetMaterial sets the Material of every MeshPart.
func (mesh *Mesh) SetMaterial(material *Material) {
	for _, part := range mesh.MeshParts {
		part.Material = material
	}
}

// UpdateBounds recalculates the Mesh's Dimensions from its vertex positions.
func (mesh *Mesh) UpdateBounds() {

	if len(mesh.VertexPositions) == 0 {
		mesh.Dimensions = Dimensions{}
		return
	}

	min := mesh.VertexPositions[0]
	max := mesh.VertexPositions[0]

	for _, v := range mesh.VertexPositions[1:] {
		min.X, max.X = math.Min(min.X, v.X), math.Max(max.X, v.X)
		min.Y, max.Y = math.Min(min.Y, v.Y), math.Max(max.Y, v.Y)
		min.Z, max.Z = math.Min(min.Z, v.Z), math.Max(max.Z, v.Z)
	}

	mesh.Dimensions = Dimensions{min, max}

}

// RecalculateNormals sets each vertex normal to the normalized sum of the face normals of the triangles that use it.
func (mesh *Mesh) RecalculateNormals() {

	normals := make([]Vector, len(mesh.VertexPositions))

	for _, part := range mesh.MeshParts {
		for i := 0; i+2 < len(part.Indices); i += 3 {
			a, b, c := part.Indices[i], part.Indices[i+1], part.Indices[i+2]
			n := calculateNormal(mesh.VertexPositions[a], mesh.VertexPositions[b], mesh.VertexPositions[c])
			normals[a] = normals[a].Add(n)
			normals[b] = normals[b].Add(n)
			normals[c] = normals[c].Add(n)
		}
	}

	for i := range normals {
		normals[i] = normals[i].Unit()
	}

	mesh.VertexNormals = normals

}

func calculateNormal(p1, p2, p3 Vector) Vector {
	v0 := p2.Sub(p1)
	v1 := p3.Sub(p2)
	return v0.Cross(v1).Unit()
}
