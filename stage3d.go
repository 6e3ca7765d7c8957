// Package stage3d is a small scene graph for Ebitengine games built around animated characters: nodes, meshes, lights
// and a camera loaded from glTF files, a blending AnimationMixer, and an AnimationStateController that cross-fades
// between looping states and one-shot emotes. Scenes are drawn as lit wireframes for debugging; the package leaves
// real shading to the host.
package stage3d
