package stage3d

// World represents a collection of settings that one uses to control lighting and ambience: the screen clear color, whether
// lighting and shadows are globally enabled or not, and the ambient lighting level (using the World's AmbientLight).
type World struct {
	Name       string
	ClearColor Color // The clear color of the screen; it's up to the host to clear with it.
	LightingOn bool  // If lighting is enabled when rendering the scene.
	// ShadowsOn is whether shadow-casting lights and nodes flagged with CastShadows should produce shadows in a renderer that supports them.
	ShadowsOn    bool
	AmbientLight *AmbientLight // Ambient lighting for this world
}

// NewWorld creates a new World with the specified name and default values for lighting, etc.
func NewWorld(name string) *World {

	return &World{
		Name:         name,
		LightingOn:   true,
		ClearColor:   NewColor(0.08, 0.09, 0.1, 1),
		AmbientLight: NewAmbientLight("ambient light", 1, 1, 1, 0),
	}

}

// Clone returns a new World with the same properties as the existing World.
func (world *World) Clone() *World {

	newWorld := NewWorld(world.Name)

	newWorld.ClearColor = world.ClearColor
	newWorld.LightingOn = world.LightingOn
	newWorld.ShadowsOn = world.ShadowsOn
	newWorld.AmbientLight = world.AmbientLight.Clone().(*AmbientLight)

	return newWorld

}
