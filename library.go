package stage3d

// Library represents a collection of Scenes, Meshes, Animations, etc., as loaded from a .gltf / .glb file.
type Library struct {
	Scenes        []*Scene              // A slice of Scenes
	ExportedScene *Scene                // The scene marked as the default in the file
	Meshes        map[string]*Mesh      // A Map of Meshes to their names
	Animations    map[string]*Animation // A Map of Animations to their names
	Materials     map[string]*Material  // A Map of Materials to their names

	animationOrder []*Animation
}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{
		Scenes:     []*Scene{},
		Meshes:     map[string]*Mesh{},
		Animations: map[string]*Animation{},
		Materials:  map[string]*Material{},
	}
}

// FindScene searches all scenes in a Library to find the one with the provided name. If a scene with the given name isn't found,
// FindScene will return nil.
func (lib *Library) FindScene(name string) *Scene {
	for _, scene := range lib.Scenes {
		if scene.Name == name {
			return scene
		}
	}
	return nil
}

// AddScene creates a new Scene with the name given and adds it to the Library.
func (lib *Library) AddScene(sceneName string) *Scene {
	newScene := NewScene(sceneName)
	newScene.library = lib
	lib.Scenes = append(lib.Scenes, newScene)
	return newScene
}

// FindNode allows you to find a node by name by searching through each of a Library's scenes. If the Node with the given name isn't found,
// FindNode will return nil.
func (lib *Library) FindNode(objectName string) INode {
	for _, scene := range lib.Scenes {
		if scene.Root.Name() == objectName {
			return scene.Root
		}
		if n := scene.Root.FindByName(objectName); n != nil {
			return n
		}
	}
	return nil
}

// AddAnimation adds an animation clip to the Library; clips keep the order they were added in.
func (lib *Library) AddAnimation(anim *Animation) {
	if _, exists := lib.Animations[anim.Name]; !exists {
		lib.animationOrder = append(lib.animationOrder, anim)
	}
	anim.library = lib
	lib.Animations[anim.Name] = anim
}

// AnimationList returns the Library's animation clips in the order they appear in the file.
func (lib *Library) AnimationList() []*Animation {
	out := make([]*Animation, 0, len(lib.animationOrder))
	for _, anim := range lib.animationOrder {
		out = append(out, lib.Animations[anim.Name])
	}
	return out
}
