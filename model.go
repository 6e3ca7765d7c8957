package stage3d

// Model represents a singular visual instantiation of a Mesh. A Mesh contains the vertex information (what to draw); a Model references the Mesh to draw it with a specific
// Position, Rotation, and/or Scale (where and how to draw).
type Model struct {
	*Node
	Mesh  *Mesh
	Color Color // The overall color of the Model, multiplied with its Materials' colors.

	Skinned bool    // Whether the Model is deformed by an armature.
	Bones   []INode // The joints of the Model's skin, in the order its vertex joint indices refer to.
}

// NewModel creates a new Model (or instance) of the Mesh and Name provided. A Model represents a singular visual instantiation of a Mesh.
func NewModel(name string, mesh *Mesh) *Model {
	return &Model{
		Node:  NewNode(name),
		Mesh:  mesh,
		Color: NewColor(1, 1, 1, 1),
	}
}

// Clone creates a clone of the Model. The Mesh is shared, and so are the bones; call Rebind on any mixer animating the clone.
func (model *Model) Clone() INode {

	newModel := NewModel(model.name, model.Mesh)
	newModel.Color = model.Color
	newModel.Skinned = model.Skinned
	newModel.Bones = append([]INode{}, model.Bones...)

	newModel.Node = model.Node.cloneBase()
	for _, child := range newModel.children {
		child.setParent(newModel)
	}

	return newModel

}

// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
func (model *Model) AddChildren(children ...INode) {
	// We do this manually so that addChildren() parents the children to the Model, rather than to the Model.Node.
	model.addChildren(model, children...)
}

// Type returns the NodeType for this object.
func (model *Model) Type() NodeType {
	return NodeTypeModel
}

// WorldDimensions returns the Model's Mesh Dimensions transformed into world space (as an axis-aligned box).
func (model *Model) WorldDimensions() Dimensions {

	if model.Mesh == nil {
		p := model.WorldPosition()
		return Dimensions{p, p}
	}

	transform := model.Transform()
	dim := model.Mesh.Dimensions

	var out Dimensions

	for i := 0; i < 8; i++ {

		corner := NewVector(dim[i&1].X, dim[(i>>1)&1].Y, dim[(i>>2)&1].Z)
		corner = transform.MultVec(corner)

		if i == 0 {
			out = Dimensions{corner, corner}
			continue
		}

		out[0] = NewVector(min(out[0].X, corner.X), min(out[0].Y, corner.Y), min(out[0].Z, corner.Z))
		out[1] = NewVector(max(out[1].X, corner.X), max(out[1].Y, corner.Y), max(out[1].Z, corner.Z))

	}

	return out

}
