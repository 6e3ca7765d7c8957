package stage3d

import "math"

// NewCubeMesh creates a new box Mesh of the given width (X), height (Y) and depth (Z), centered on its origin, with a single
// MeshPart using a new default Material.
func NewCubeMesh(width, height, depth float64) *Mesh {

	mesh := NewMesh("Cube")
	half := NewVector(width/2, height/2, depth/2)

	// Each face's u and v axes satisfy u x v = normal, which keeps the winding counter-clockwise from outside.
	faces := [][3]Vector{
		{WorldRight, WorldUp, WorldBackward},
		{WorldRight.Invert(), WorldBackward, WorldUp},
		{WorldUp, WorldBackward, WorldRight},
		{WorldUp.Invert(), WorldRight, WorldBackward},
		{WorldBackward, WorldRight, WorldUp},
		{WorldBackward.Invert(), WorldUp, WorldRight},
	}

	indices := []int{}

	for _, face := range faces {

		normal, u, v := face[0], face[1], face[2]

		corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		start := len(mesh.VertexPositions)

		for _, c := range corners {
			pos := normal.Add(u.Scale(c[0])).Add(v.Scale(c[1])).MultComp(half)
			mesh.AddVertex(pos, normal, NewVector((c[0]+1)/2, (1-c[1])/2, 0))
		}

		indices = append(indices, start, start+1, start+2, start, start+2, start+3)

	}

	mesh.AddMeshPart(NewMaterial("Cube"), indices...)
	mesh.UpdateBounds()

	return mesh

}

// NewPlaneMesh creates a new flat Mesh lying on the XZ plane and facing +Y, with the given width (X) and depth (Z).
func NewPlaneMesh(width, depth float64) *Mesh {

	mesh := NewMesh("Plane")

	w, d := width/2, depth/2

	mesh.AddVertex(NewVector(-w, 0, -d), WorldUp, NewVector(0, 0, 0))
	mesh.AddVertex(NewVector(w, 0, -d), WorldUp, NewVector(1, 0, 0))
	mesh.AddVertex(NewVector(w, 0, d), WorldUp, NewVector(1, 1, 0))
	mesh.AddVertex(NewVector(-w, 0, d), WorldUp, NewVector(0, 1, 0))

	mesh.AddMeshPart(NewMaterial("Plane"), 0, 3, 2, 0, 2, 1)
	mesh.UpdateBounds()

	return mesh

}

// NewSphereMesh creates a new UV sphere Mesh of the given radius. widthSegments (minimum 3) is the number of segments
// around the equator and heightSegments (minimum 2) the number from pole to pole.
func NewSphereMesh(radius float64, widthSegments, heightSegments int) *Mesh {

	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	mesh := NewMesh("Sphere")

	grid := make([][]int, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {

		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi

		for ix := 0; ix <= widthSegments; ix++ {

			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi

			pos := NewVector(
				-radius*math.Cos(phi)*math.Sin(theta),
				radius*math.Cos(theta),
				radius*math.Sin(phi)*math.Sin(theta),
			)

			grid[iy] = append(grid[iy], mesh.AddVertex(pos, pos.Unit(), NewVector(u, v, 0)))

		}

	}

	indices := []int{}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {

			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			// The pole rows collapse into fans
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}

		}
	}

	mesh.AddMeshPart(NewMaterial("Sphere"), indices...)
	mesh.UpdateBounds()

	return mesh

}
