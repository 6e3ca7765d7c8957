package stage3d

// Scene represents a world of sorts, and can contain a variety of Models and Nodes under its Root.
type Scene struct {
	library *Library
	Name    string // The name of the Scene. Set automatically to the scene name in your 3D modeler if the Scene was loaded from a file.
	Root    INode  // The root node of the Scene; everything else in it is parented to it.
	World   *World // The lighting and ambience settings of the Scene.
}

// NewScene creates a new Scene by the name given.
func NewScene(name string) *Scene {
	return &Scene{
		Name:  name,
		Root:  NewNode("Root"),
		World: NewWorld("World"),
	}
}

// Clone clones the Scene, returning a copy. Models and Meshes are shared between them.
func (scene *Scene) Clone() *Scene {
	newScene := NewScene(scene.Name)
	newScene.library = scene.library
	newScene.Root = scene.Root.Clone()
	newScene.World = scene.World.Clone()
	return newScene
}

// Library returns the Library from which this Scene was loaded. If it was created through code and not associated with a Library, this function will return nil.
func (scene *Scene) Library() *Library {
	return scene.library
}

// Models returns every Model under the Scene's Root.
func (scene *Scene) Models() []*Model {
	return scene.Root.Search().Models()
}

// Lights returns every light under the Scene's Root, plus the World's AmbientLight if it's set.
func (scene *Scene) Lights() []ILight {
	out := []ILight{}
	if scene.World != nil && scene.World.AmbientLight != nil {
		out = append(out, scene.World.AmbientLight)
	}
	return append(out, scene.Root.Search().Lights()...)
}
