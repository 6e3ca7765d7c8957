package stage3d

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Material describes how the triangles of a MeshPart look: a base color, specular parameters and an optional texture.
// stage3d's debug renderer only uses the color; the rest is carried through from loaded files and code for the host to use.
type Material struct {
	library     *Library      // library is a reference to the Library that this Material came from.
	Name        string        // Name is the name of the Material.
	Color       Color         // The overall color of the Material.
	Specular    Color         // Specular highlight color.
	Shininess   float64       // Size of the specular highlight; higher is smaller and sharper.
	Clearcoat   float64       // Strength of the clear coat layer, 0 to 1.
	TexturePath string        // Path of the texture image, relative to the file the Material was loaded from.
	Texture     *ebiten.Image // The texture applied to the Material, if it's been loaded.
	DoubleSided bool          // If true, faces turned away from the camera are drawn as well.
}

// NewMaterial creates a new Material with the name given.
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Color:     NewColor(1, 1, 1, 1),
		Specular:  NewColor(0.07, 0.07, 0.07, 1),
		Shininess: 30,
	}
}

// Clone creates a clone of the specified Material. The texture image is shared.
func (material *Material) Clone() *Material {
	newMat := *material
	return &newMat
}

// Library returns the Library from which this Material was loaded. If it was created through code, this function will return nil.
func (material *Material) Library() *Library {
	return material.library
}
