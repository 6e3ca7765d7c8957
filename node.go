package stage3d

import (
	"strings"
)

// NodeType represents a Node's type. Node types are categorized, and can be said to extend or "be of" more general types.
// For example, a PointLight has a type of NodeTypePointLight, which can also be said to be NodeTypeLight.
type NodeType string

const (
	NodeTypeNode   NodeType = "Node"       // NodeTypeNode represents any generic node
	NodeTypeModel  NodeType = "NodeModel"  // NodeTypeModel represents specifically a Model
	NodeTypeCamera NodeType = "NodeCamera" // NodeTypeCamera represents specifically a Camera

	NodeTypeLight            NodeType = "NodeLight"            // NodeTypeLight represents any generic light
	NodeTypeAmbientLight     NodeType = "NodeLightAmbient"     // NodeTypeAmbientLight represents specifically an ambient light
	NodeTypePointLight       NodeType = "NodeLightPoint"       // NodeTypePointLight represents specifically a point light
	NodeTypeDirectionalLight NodeType = "NodeLightDirectional" // NodeTypeDirectionalLight represents specifically a directional (sun) light
)

// Is returns true if a NodeType satisfies another NodeType category. A specific node type can be said to
// contain a more general one, but not vice-versa.
func (nt NodeType) Is(other NodeType) bool {
	if nt == other {
		return true
	}
	return strings.Contains(string(nt), string(other))
}

// INode represents an object that exists in 3D space and can be positioned relative to an origin point.
// By default, this origin point is {0, 0, 0} (or world origin), but Nodes can be parented
// to other Nodes to change this origin (making their movements relative and their transforms
// successive). Models, Cameras and lights fully implement the INode interface by embedding Node.
type INode interface {
	// Name returns the object's name.
	Name() string
	// ID returns the object's unique ID.
	ID() uint64
	// SetName sets the object's name.
	SetName(name string)
	// Clone returns a clone of the specified INode implementer, including its children.
	Clone() INode
	// SetData sets user-customizeable data that could be usefully stored on this node.
	SetData(data any)
	// Data returns user-customizeable data stored on this node.
	Data() any
	// Type returns the NodeType for this object.
	Type() NodeType
	// Library returns the source Library from which this Node was instantiated. If it was created through code, this will be nil.
	Library() *Library
	setLibrary(lib *Library)

	// Parent returns the Node's parent. If the Node has no parent, this will return nil.
	Parent() INode
	setParent(INode)
	// Unparent unparents the Node from its parent, removing it from the scenegraph.
	Unparent()
	// Root returns the root node in this tree by recursively traversing this node's hierarchy of parents upwards.
	Root() INode

	// Children returns the Node's direct children.
	Children() []INode
	// ChildrenRecursive returns the Node's children, grandchildren, etc., depth-first.
	ChildrenRecursive() []INode
	// AddChildren parents the provided children Nodes to the calling Node. Children already parented elsewhere are unparented first.
	AddChildren(...INode)
	// RemoveChildren removes the provided children from this object.
	RemoveChildren(...INode)
	// FindByName returns the first recursive child with the given name, or nil.
	FindByName(name string) INode
	// Traverse calls fn on the Node and all of its recursive children, depth-first.
	Traverse(fn func(INode))
	// Get searches a node's hierarchy using a slash separated path of node names relative to the calling node ("Armature/Hips").
	// ".." goes up one level.
	Get(path string) INode
	// HierarchyAsString returns a string displaying the hierarchy of this Node, and all recursive children.
	HierarchyAsString() string
	// Search returns a NodeFilter over the Node's recursive children.
	Search() NodeFilter

	dirtyTransform()
	// Transform returns a Matrix4 indicating the global position, rotation, and scale of the object, transformed by any parents'.
	Transform() Matrix4

	LocalPosition() Vector
	SetLocalPosition(x, y, z float64)
	SetLocalPositionVec(position Vector)
	LocalScale() Vector
	SetLocalScale(x, y, z float64)
	SetLocalScaleVec(scale Vector)
	LocalRotation() Matrix4
	SetLocalRotation(rotation Matrix4)

	WorldPosition() Vector
	WorldScale() Vector
	WorldRotation() Matrix4

	// Move moves a Node in local space by the x, y, and z values provided.
	Move(x, y, z float64)
	// Rotate rotates a Node on its local orientation around the axis given, by the angle provided in radians.
	Rotate(x, y, z, angle float64)

	// Visible returns whether the Object is visible.
	Visible() bool
	// SetVisible sets the object's visibility. If recursive is true, all recursive children of this Node will have their visibility set the same way.
	SetVisible(visible, recursive bool)

	// CastShadows returns whether the Node is flagged to cast shadows.
	CastShadows() bool
	// ReceiveShadows returns whether the Node is flagged to receive shadows.
	ReceiveShadows() bool
	// SetShadows sets the shadow flags. If recursive is true, all recursive children are flagged the same way.
	SetShadows(cast, receive, recursive bool)

	// IsBone returns if the Node is a "bone" (a node that was a part of an armature and so is animated to influence a skinned mesh).
	IsBone() bool
}

var nodeID uint64 = 0

// Node represents a minimal struct that fully implements the INode interface. Model, Camera and the lights embed Node
// into their structs to automatically easily implement INode.
type Node struct {
	id               uint64
	name             string
	position         Vector
	scale            Vector
	rotation         Matrix4
	visible          bool
	castShadows      bool
	receiveShadows   bool
	data             any
	children         []INode
	parent           INode
	cachedTransform  Matrix4
	isTransformDirty bool
	isBone           bool
	library          *Library
}

// NewNode returns a new Node.
func NewNode(name string) *Node {

	node := &Node{
		id:               nodeID,
		name:             name,
		scale:            NewVector(1, 1, 1),
		rotation:         NewMatrix4(),
		children:         []INode{},
		visible:          true,
		isTransformDirty: true,
		cachedTransform:  NewMatrix4(),
	}

	nodeID++

	return node
}

// ID returns the object's unique ID.
func (node *Node) ID() uint64 {
	return node.id
}

// Name returns the object's name.
func (node *Node) Name() string {
	return node.name
}

// SetName sets the object's name.
func (node *Node) SetName(name string) {
	node.name = name
}

// Type returns the NodeType for this object.
func (node *Node) Type() NodeType {
	return NodeTypeNode
}

// Library returns the Library from which this Node was instantiated. If it was created through code, this will be nil.
func (node *Node) Library() *Library {
	return node.library
}

func (node *Node) setLibrary(library *Library) {
	node.library = library
}

// Clone returns a new Node with the same properties and cloned children.
func (node *Node) Clone() INode {
	return node.cloneBase()
}

func (node *Node) cloneBase() *Node {

	newNode := NewNode(node.name)
	newNode.position = node.position
	newNode.scale = node.scale
	newNode.rotation = node.rotation
	newNode.visible = node.visible
	newNode.castShadows = node.castShadows
	newNode.receiveShadows = node.receiveShadows
	newNode.data = node.data
	newNode.isBone = node.isBone
	newNode.library = node.library

	for _, child := range node.children {
		childClone := child.Clone()
		childClone.setParent(newNode)
		newNode.children = append(newNode.children, childClone)
	}

	return newNode

}

// SetData sets user-customizeable data that could be usefully stored on this node.
func (node *Node) SetData(data any) {
	node.data = data
}

// Data returns user-customizeable data stored on this node.
func (node *Node) Data() any {
	return node.data
}

// Transform returns a Matrix4 indicating the global position, rotation, and scale of the object, transforming it by any parents'.
// If there's no change between the previous Transform() call and this one, Transform() returns a cached version of the transform.
func (node *Node) Transform() Matrix4 {

	// S * R * T * Parent

	if !node.isTransformDirty {
		return node.cachedTransform
	}

	transform := NewMatrix4Scale(node.scale.X, node.scale.Y, node.scale.Z)
	transform = transform.Mult(node.rotation)
	transform = transform.Mult(NewMatrix4Translate(node.position.X, node.position.Y, node.position.Z))

	if node.parent != nil {
		transform = transform.Mult(node.parent.Transform())
	}

	node.cachedTransform = transform
	node.isTransformDirty = false

	return transform

}

// dirtyTransform flags this Node and all recursive children as needing their transforms rebuilt.
func (node *Node) dirtyTransform() {

	if node.isTransformDirty {
		return
	}

	node.isTransformDirty = true

	for _, child := range node.children {
		child.dirtyTransform()
	}

}

// LocalPosition returns the object's local position (position relative to its parent).
func (node *Node) LocalPosition() Vector {
	return node.position
}

// SetLocalPosition sets the object's local position (position relative to its parent).
func (node *Node) SetLocalPosition(x, y, z float64) {
	node.position.X = x
	node.position.Y = y
	node.position.Z = z
	node.dirtyTransform()
}

// SetLocalPositionVec sets the object's local position (position relative to its parent).
func (node *Node) SetLocalPositionVec(position Vector) {
	node.SetLocalPosition(position.X, position.Y, position.Z)
}

// LocalScale returns the object's local scale (scale relative to its parent).
func (node *Node) LocalScale() Vector {
	return node.scale
}

// SetLocalScale sets the object's local scale (scale relative to its parent).
func (node *Node) SetLocalScale(x, y, z float64) {
	node.scale.X = x
	node.scale.Y = y
	node.scale.Z = z
	node.dirtyTransform()
}

// SetLocalScaleVec sets the object's local scale (scale relative to its parent).
func (node *Node) SetLocalScaleVec(scale Vector) {
	node.SetLocalScale(scale.X, scale.Y, scale.Z)
}

// LocalRotation returns the object's local rotation Matrix4.
func (node *Node) LocalRotation() Matrix4 {
	return node.rotation
}

// SetLocalRotation sets the object's local rotation Matrix4 (relative to any parent).
func (node *Node) SetLocalRotation(rotation Matrix4) {
	node.rotation = rotation
	node.dirtyTransform()
}

// WorldPosition returns the node's world position, taking into account its parenting hierarchy.
func (node *Node) WorldPosition() Vector {
	t := node.Transform()
	return NewVector(t[3][0], t[3][1], t[3][2])
}

// WorldScale returns the object's absolute world scale.
func (node *Node) WorldScale() Vector {
	_, scale, _ := node.Transform().Decompose()
	return scale
}

// WorldRotation returns an absolute rotation Matrix4 representing the object's rotation.
func (node *Node) WorldRotation() Matrix4 {
	_, _, rotation := node.Transform().Decompose()
	return rotation
}

// Move moves a Node in local space by the x, y, and z values provided.
func (node *Node) Move(x, y, z float64) {
	node.SetLocalPositionVec(node.position.Add(NewVector(x, y, z)))
}

// Rotate rotates a Node on its local orientation around the axis given, by the angle provided in radians.
func (node *Node) Rotate(x, y, z, angle float64) {
	node.SetLocalRotation(node.rotation.Mult(NewMatrix4Rotate(x, y, z, angle)))
}

// Parent returns the Node's parent. If the Node has no parent, this will return nil.
func (node *Node) Parent() INode {
	return node.parent
}

func (node *Node) setParent(parent INode) {
	node.parent = parent
	node.dirtyTransform()
}

// Unparent unparents the Node from its parent, removing it from the scenegraph.
func (node *Node) Unparent() {
	if node.parent != nil {
		node.parent.RemoveChildren(node)
	}
}

// Root returns the root node in this tree by recursively traversing this node's hierarchy of parents upwards.
// A Node without a parent is its own root.
func (node *Node) Root() INode {
	var current INode = node
	for current.Parent() != nil {
		current = current.Parent()
	}
	return current
}

// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
func (node *Node) AddChildren(children ...INode) {
	node.addChildren(node, children...)
}

// addChildren adds children to the calling Node, with owner being the INode the children should report as parent (a Model
// or Camera embedding this Node, for example).
func (node *Node) addChildren(owner INode, children ...INode) {
	for _, child := range children {
		if child.Parent() != nil {
			child.Parent().RemoveChildren(child)
		}
		child.setParent(owner)
		node.children = append(node.children, child)
	}
}

// RemoveChildren removes the provided children from this object.
func (node *Node) RemoveChildren(children ...INode) {

	for _, child := range children {
		for i, c := range node.children {
			if c == child || (c.ID() == child.ID()) {
				child.setParent(nil)
				node.children[i] = nil
				node.children = append(node.children[:i], node.children[i+1:]...)
				break
			}
		}
	}

}

// Children returns the Node's direct children.
func (node *Node) Children() []INode {
	return append(make([]INode, 0, len(node.children)), node.children...)
}

// ChildrenRecursive returns the Node's recursive children (children, grandchildren, etc.), depth-first.
func (node *Node) ChildrenRecursive() []INode {
	out := []INode{}
	for _, child := range node.children {
		out = append(out, child)
		out = append(out, child.ChildrenRecursive()...)
	}
	return out
}

// FindByName returns the first recursive child with the given name, or nil if there isn't one.
func (node *Node) FindByName(name string) INode {
	for _, child := range node.ChildrenRecursive() {
		if child.Name() == name {
			return child
		}
	}
	return nil
}

// Traverse calls fn on the Node itself and then all of its recursive children, depth-first.
func (node *Node) Traverse(fn func(INode)) {
	fn(node)
	for _, child := range node.ChildrenRecursive() {
		fn(child)
	}
}

// Get searches a node's hierarchy using a string to find a specified node. The path is in the format of names of nodes, separated by forward
// slashes ('/'), and is relative to the node you use to call Get. If you had a hand bone parented to an arm, parented to the armature,
// it would be found at "Armature/Arm/Hand". "../" goes up one level. Get returns nil if nothing is found.
func (node *Node) Get(path string) INode {

	var current INode = node

	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {

		part = strings.TrimSpace(part)

		if part == "" || part == "." {
			continue
		}

		if part == ".." {
			current = current.Parent()
			if current == nil {
				return nil
			}
			continue
		}

		var found INode
		for _, child := range current.Children() {
			if strings.TrimSpace(child.Name()) == part {
				found = child
				break
			}
		}

		if found == nil {
			return nil
		}

		current = found

	}

	return current

}

// Search returns a NodeFilter for searching through the Node's recursive children; chain filters on it and then ask
// for the result, e.g. node.Search().ByType(NodeTypeModel).Models().
func (node *Node) Search() NodeFilter {
	return newNodeFilter(node)
}

// HierarchyAsString returns a string displaying the hierarchy of this Node, and all recursive children.
// This is a useful function to debug the layout of a node tree, for example.
func (node *Node) HierarchyAsString() string {

	var printNode func(n INode, level int) string

	printNode = func(n INode, level int) string {

		str := strings.Repeat("    ", level)
		if level > 0 {
			str += "\\-: "
		}
		str += "[" + string(n.Type()) + "] " + n.Name() + "\n"

		for _, child := range n.Children() {
			str += printNode(child, level+1)
		}

		return str
	}

	return printNode(node, 0)

}

// Visible returns whether the Object is visible.
func (node *Node) Visible() bool {
	return node.visible
}

// SetVisible sets the object's visibility. If recursive is true, all recursive children of this Node will have their visibility set the same way.
func (node *Node) SetVisible(visible, recursive bool) {
	node.visible = visible
	if recursive {
		for _, child := range node.ChildrenRecursive() {
			child.SetVisible(visible, false)
		}
	}
}

// CastShadows returns whether the Node is flagged to cast shadows.
func (node *Node) CastShadows() bool {
	return node.castShadows
}

// ReceiveShadows returns whether the Node is flagged to receive shadows.
func (node *Node) ReceiveShadows() bool {
	return node.receiveShadows
}

// SetShadows sets the Node's shadow casting and receiving flags. If recursive is true, all recursive children are flagged the same way
// (the usual treatment for a loaded character, whose meshes sit deep under the scene root).
func (node *Node) SetShadows(cast, receive, recursive bool) {
	node.castShadows = cast
	node.receiveShadows = receive
	if recursive {
		for _, child := range node.ChildrenRecursive() {
			child.SetShadows(cast, receive, false)
		}
	}
}

// IsBone returns if the Node is a "bone" (a node that was a part of an armature and so is animated to influence a skinned mesh).
func (node *Node) IsBone() bool {
	return node.isBone
}
