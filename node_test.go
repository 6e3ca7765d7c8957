package stage3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeHierarchy(t *testing.T) {

	root := NewNode("Root")
	armature := NewNode("Armature")
	arm := NewNode("Arm")
	hand := NewNode("Hand")

	root.AddChildren(armature)
	armature.AddChildren(arm)
	arm.AddChildren(hand)

	assert.Same(t, hand, root.Get("Armature/Arm/Hand"))
	assert.Same(t, armature, hand.Get("../.."))
	assert.Same(t, arm, hand.Get("../../Arm"))
	assert.Nil(t, root.Get("Armature/Leg"))

	assert.Same(t, hand, root.FindByName("Hand"))
	assert.Nil(t, root.FindByName("Tail"))

	assert.Same(t, root, hand.Root())
	assert.Len(t, root.ChildrenRecursive(), 3)

	visited := []string{}
	root.Traverse(func(node INode) { visited = append(visited, node.Name()) })
	assert.Equal(t, []string{"Root", "Armature", "Arm", "Hand"}, visited)

	assert.Contains(t, root.HierarchyAsString(), "\\-: [Node] Hand")

}

func TestNodeReparenting(t *testing.T) {

	a := NewNode("A")
	b := NewNode("B")
	child := NewNode("Child")

	a.AddChildren(child)
	b.AddChildren(child)

	assert.Empty(t, a.Children())
	assert.Same(t, b, child.Parent())

	child.Unparent()
	assert.Nil(t, child.Parent())
	assert.Empty(t, b.Children())

}

func TestNodeRemoveChildren(t *testing.T) {

	parent := NewNode("Parent")
	a := NewNode("A")
	b := NewNode("B")
	stranger := NewNode("Stranger")
	parent.AddChildren(a, b)

	parent.RemoveChildren(a, stranger)

	require.Len(t, parent.Children(), 1)
	assert.Same(t, b, parent.Children()[0])
	assert.Nil(t, a.Parent())
	assert.Nil(t, stranger.Parent())

}

func TestNodeWorldTransform(t *testing.T) {

	parent := NewNode("Parent")
	parent.SetLocalPosition(10, 0, 0)
	parent.SetLocalRotation(NewMatrix4Rotate(0, 1, 0, math.Pi/2))
	parent.SetLocalScale(2, 2, 2)

	child := NewNode("Child")
	child.SetLocalPosition(1, 0, 0)
	parent.AddChildren(child)

	pos := child.WorldPosition()
	assert.InDelta(t, 10, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Y, 1e-9)
	assert.InDelta(t, -2, pos.Z, 1e-9)

	scale := child.WorldScale()
	assert.InDelta(t, 2, scale.X, 1e-9)
	assert.True(t, child.WorldRotation().Equals(parent.LocalRotation()))

	// Moving the parent dirties the cached transforms of its children
	parent.Move(0, 5, 0)
	assert.InDelta(t, 5, child.WorldPosition().Y, 1e-9)

}

func TestNodeClone(t *testing.T) {

	root := NewNode("Root")
	root.SetLocalPosition(1, 2, 3)
	root.SetData("payload")

	child := NewNode("Child")
	root.AddChildren(child)

	clone := root.Clone()

	assert.NotEqual(t, root.ID(), clone.ID())
	assert.Equal(t, root.LocalPosition(), clone.LocalPosition())
	assert.Equal(t, "payload", clone.Data())

	require.Len(t, clone.Children(), 1)
	clonedChild := clone.Children()[0]
	assert.NotSame(t, child, clonedChild)
	assert.Same(t, clone, clonedChild.Parent())

	clonedChild.SetLocalPosition(5, 5, 5)
	assert.Equal(t, NewVectorZero(), child.LocalPosition())

}

func TestEmbeddedNodeParenting(t *testing.T) {

	model := NewModel("Robot", NewCubeMesh(1, 1, 1))
	camera := NewCamera(320, 180)
	light := NewPointLight("Lamp", 1, 1, 1, 1)

	model.AddChildren(camera, light)

	assert.Same(t, model, camera.Parent(), "children report the Model as their parent, not its embedded Node")
	assert.Same(t, model, light.Parent())
	assert.Equal(t, NodeTypeModel, camera.Parent().Type())

	camera.Unparent()
	assert.Len(t, model.Children(), 1)

	clone := model.Clone().(*Model)
	require.Len(t, clone.Children(), 1)
	assert.Same(t, clone, clone.Children()[0].Parent())
	assert.Equal(t, NodeTypePointLight, clone.Children()[0].Type())
	assert.Same(t, model.Mesh, clone.Mesh)

}

func TestNodeTypeIs(t *testing.T) {
	assert.True(t, NodeTypePointLight.Is(NodeTypeLight))
	assert.True(t, NodeTypeModel.Is(NodeTypeNode))
	assert.False(t, NodeTypeModel.Is(NodeTypeCamera))
}

func TestSetVisibleAndShadowsRecursive(t *testing.T) {

	root, hips := newTestRig()

	root.SetVisible(false, true)
	assert.False(t, hips.Visible())

	root.SetShadows(true, false, true)
	assert.True(t, hips.CastShadows())
	assert.False(t, hips.ReceiveShadows())

}
