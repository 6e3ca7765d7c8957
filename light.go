package stage3d

import (
	"math"
)

// ILight represents an object that emits light. Light returns the light color reaching a point in world space with the
// given world-space normal; stage3d's debug renderer uses it to shade wireframe lines.
type ILight interface {
	INode
	Light(position, normal Vector) (float32, float32, float32)
	IsOn() bool
}

//---------------//

// AmbientLight represents an ambient light that colors the entire Scene.
type AmbientLight struct {
	*Node
	Color Color // Color is the color of the AmbientLight.
	// Energy is the overall energy of the Light. Internally, technically there's no difference between a brighter color and a
	// higher energy, but this is here for convenience / adherance to GLTF / 3D modelers.
	Energy float32
	On     bool // If the light is on and contributing to the scene.
}

// NewAmbientLight returns a new AmbientLight.
func NewAmbientLight(name string, r, g, b, energy float32) *AmbientLight {
	return &AmbientLight{
		Node:   NewNode(name),
		Color:  NewColor(r, g, b, 1),
		Energy: energy,
		On:     true,
	}
}

func (amb *AmbientLight) Clone() INode {

	clone := NewAmbientLight(amb.name, amb.Color.R, amb.Color.G, amb.Color.B, amb.Energy)
	clone.On = amb.On

	clone.Node = amb.Node.cloneBase()
	for _, child := range clone.children {
		child.setParent(clone)
	}

	return clone

}

// Light returns the global light level for the ambient light. It doesn't use the position or normal arguments; this is just to make it adhere to the ILight interface.
func (amb *AmbientLight) Light(position, normal Vector) (float32, float32, float32) {
	return amb.Color.R * amb.Energy, amb.Color.G * amb.Energy, amb.Color.B * amb.Energy
}

// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
func (amb *AmbientLight) AddChildren(children ...INode) {
	amb.addChildren(amb, children...)
}

// IsOn returns if the light is on and contributing to the scene.
func (amb *AmbientLight) IsOn() bool {
	return amb.On
}

// Type returns the NodeType for this object.
func (amb *AmbientLight) Type() NodeType {
	return NodeTypeAmbientLight
}

//---------------//

// PointLight represents a point light of infinite point-ness.
type PointLight struct {
	*Node
	// Range represents the distance after which the light fully attenuates. If this is 0 (the default), it falls off using something akin to the inverse square law.
	Range float64
	Color Color // Color is the color of the PointLight.
	// Energy is the overall energy of the Light. Internally, technically there's no difference between a brighter color and a
	// higher energy, but this is here for convenience / adherance to GLTF / 3D modelers.
	Energy float32
	On     bool // If the light is on and contributing to the scene.
	// ShadowMapSize is the resolution of the shadow map a host renderer should allocate if the light casts shadows.
	ShadowMapSize int
}

// NewPointLight creates a new Point light.
func NewPointLight(name string, r, g, b, energy float32) *PointLight {
	return &PointLight{
		Node:          NewNode(name),
		Energy:        energy,
		Color:         NewColor(r, g, b, 1),
		On:            true,
		ShadowMapSize: 512,
	}
}

func (point *PointLight) Clone() INode {

	clone := NewPointLight(point.name, point.Color.R, point.Color.G, point.Color.B, point.Energy)
	clone.On = point.On
	clone.Range = point.Range
	clone.ShadowMapSize = point.ShadowMapSize

	clone.Node = point.Node.cloneBase()
	for _, child := range clone.children {
		child.setParent(clone)
	}

	return clone

}

// Light returns the R, G, and B values for the point light reaching the world position with the world normal given.
func (point *PointLight) Light(position, normal Vector) (float32, float32, float32) {

	lightPos := point.WorldPosition()
	lightVec := lightPos.Sub(position).Unit()

	diffuse := normal.Unit().Dot(lightVec)
	if diffuse < 0 {
		diffuse = 0
	}

	var diffuseFactor float64
	distance := lightPos.Sub(position).MagnitudeSquared()

	if point.Range == 0 {
		diffuseFactor = diffuse * (1.0 / (1.0 + (0.1 * distance))) * 2
	} else {
		pd := point.Range * point.Range
		diffuseFactor = diffuse * math.Max(math.Min(1.0-(math.Pow((distance/pd), 4)), 1), 0)
	}

	f := float32(diffuseFactor) * point.Energy
	return point.Color.R * f, point.Color.G * f, point.Color.B * f

}

// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
func (point *PointLight) AddChildren(children ...INode) {
	point.addChildren(point, children...)
}

// IsOn returns if the light is on and contributing to the scene.
func (point *PointLight) IsOn() bool {
	return point.On
}

// Type returns the NodeType for this object.
func (point *PointLight) Type() NodeType {
	return NodeTypePointLight
}

//---------------//

// DirectionalLight represents a directional light of infinite distance. It shines down its -Z axis.
type DirectionalLight struct {
	*Node
	Color Color // Color is the color of the DirectionalLight.
	// Energy is the overall energy of the Light. Internally, technically there's no difference between a brighter color and a
	// higher energy, but this is here for convenience / adherance to GLTF / 3D modelers.
	Energy float32
	On     bool // If the light is on and contributing to the scene.
}

// NewDirectionalLight creates a new Directional Light with the specified RGB color and energy (assuming 1.0 energy is standard / "100%" lighting).
func NewDirectionalLight(name string, r, g, b, energy float32) *DirectionalLight {
	return &DirectionalLight{
		Node:   NewNode(name),
		Color:  NewColor(r, g, b, 1),
		Energy: energy,
		On:     true,
	}
}

func (sun *DirectionalLight) Clone() INode {

	clone := NewDirectionalLight(sun.name, sun.Color.R, sun.Color.G, sun.Color.B, sun.Energy)
	clone.On = sun.On

	clone.Node = sun.Node.cloneBase()
	for _, child := range clone.children {
		child.setParent(clone)
	}

	return clone

}

// Light returns the R, G, and B values for the directional light reaching a surface with the world normal given.
func (sun *DirectionalLight) Light(position, normal Vector) (float32, float32, float32) {

	// Light travels down -Z, so surfaces facing +Z (towards the light) are lit
	diffuseFactor := math.Max(normal.Unit().Dot(sun.WorldRotation().Forward()), 0.0)

	f := float32(diffuseFactor) * sun.Energy
	return sun.Color.R * f, sun.Color.G * f, sun.Color.B * f

}

// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
func (sun *DirectionalLight) AddChildren(children ...INode) {
	sun.addChildren(sun, children...)
}

// IsOn returns if the light is on and contributing to the scene.
func (sun *DirectionalLight) IsOn() bool {
	return sun.On
}

// Type returns the NodeType for this object.
func (sun *DirectionalLight) Type() NodeType {
	return NodeTypeDirectionalLight
}
