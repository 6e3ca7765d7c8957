package stage3d

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// DebugInfo holds counts from the last debug draw call.
type DebugInfo struct {
	DrawnModels int // Models drawn by the last wireframe pass
	TotalModels int // Models found under the root node by the last wireframe pass
	DrawnTris   int // Triangles drawn by the last wireframe pass
	TotalTris   int // Triangles in all Models found by the last wireframe pass
}

// Camera represents a camera (where you look from) in stage3d. A Camera holds no images of its own; it projects
// world positions onto a screen of the size it's given and draws debug views onto the image passed to it.
type Camera struct {
	*Node

	DebugInfo DebugInfo

	width, height int
	near, far     float64
	fieldOfView   float64

	updateProjectionMatrix bool
	cachedProjectionMatrix Matrix4

	debugFace *text.GoXFace
}

// NewCamera creates a new perspective Camera with the specified width and height, a vertical field of view of 60 degrees and
// clipping planes at 0.1 and 100.
func NewCamera(w, h int) *Camera {

	cam := &Camera{
		Node:                   NewNode("Camera"),
		near:                   0.1,
		far:                    100,
		fieldOfView:            60,
		updateProjectionMatrix: true,
	}

	cam.Resize(w, h)

	return cam
}

// Clone clones the Camera and returns it.
func (camera *Camera) Clone() INode {

	clone := NewCamera(camera.width, camera.height)

	clone.near = camera.near
	clone.far = camera.far
	clone.fieldOfView = camera.fieldOfView

	clone.Node = camera.Node.cloneBase()
	for _, child := range clone.children {
		child.setParent(clone)
	}

	return clone

}

// Resize sets the size of the screen the camera projects onto. Sizes below 1 are raised to 1.
func (camera *Camera) Resize(w, h int) {
	w = max(w, 1)
	h = max(h, 1)
	if w == camera.width && h == camera.height {
		return
	}
	camera.width = w
	camera.height = h
	camera.updateProjectionMatrix = true
}

// Size returns the width and height of the screen the camera projects onto.
func (camera *Camera) Size() (w, h int) {
	return camera.width, camera.height
}

// AspectRatio returns the camera's aspect ratio (width / height).
func (camera *Camera) AspectRatio() float64 {
	return float64(camera.width) / float64(camera.height)
}

// ViewMatrix returns the Camera's view matrix.
func (camera *Camera) ViewMatrix() Matrix4 {

	camPos := camera.WorldPosition().Invert()
	transform := NewMatrix4Translate(camPos.X, camPos.Y, camPos.Z)

	// We invert the rotation because the Camera is looking down -Z
	transform = transform.Mult(camera.WorldRotation().Transposed())

	return transform

}

// Projection returns the Camera's projection matrix.
func (camera *Camera) Projection() Matrix4 {

	if !camera.updateProjectionMatrix {
		return camera.cachedProjectionMatrix
	}

	camera.updateProjectionMatrix = false
	camera.cachedProjectionMatrix = NewProjectionPerspective(camera.fieldOfView, camera.near, camera.far, float64(camera.width), float64(camera.height))

	return camera.cachedProjectionMatrix

}

// SetFieldOfView sets the vertical field of the view of the camera in degrees.
func (camera *Camera) SetFieldOfView(fovY float64) {
	if camera.fieldOfView == fovY {
		return
	}
	camera.fieldOfView = fovY
	camera.updateProjectionMatrix = true
}

// FieldOfView returns the vertical field of view in degrees.
func (camera *Camera) FieldOfView() float64 {
	return camera.fieldOfView
}

// Near returns the near plane of a camera.
func (camera *Camera) Near() float64 {
	return camera.near
}

// SetNear sets the near plane of a camera.
func (camera *Camera) SetNear(near float64) {
	if camera.near == near {
		return
	}
	camera.near = near
	camera.updateProjectionMatrix = true
}

// Far returns the far plane of a camera.
func (camera *Camera) Far() float64 {
	return camera.far
}

// SetFar sets the far plane of the camera.
func (camera *Camera) SetFar(far float64) {
	if camera.far == far {
		return
	}
	camera.far = far
	camera.updateProjectionMatrix = true
}

// LookAt rotates the Camera so it looks from its current world position towards target, with up (usually WorldUp) as the upward reference.
func (camera *Camera) LookAt(target, up Vector) {

	rotation := NewLookAtMatrix(camera.WorldPosition(), target, up)

	if camera.parent != nil {
		rotation = rotation.Mult(camera.parent.WorldRotation().Transposed())
	}

	camera.SetLocalRotation(rotation)

}

// WorldToClip transforms a 3D position in the world to clip space, keeping W. Points with a W of 0 or less are behind the camera.
func (camera *Camera) WorldToClip(vert Vector) Vector {
	return camera.ViewMatrix().Mult(camera.Projection()).MultVecW(vert)
}

// clipToScreen maps a clip space vertex onto the screen. Z becomes the normalized depth, and W is left as it was so callers can
// tell if the point was behind the camera.
func (camera *Camera) clipToScreen(vert Vector, width, height float64) Vector {

	w := vert.W
	if w == 0 {
		w = 0.000001
	}

	return Vector{
		X: (vert.X/w + 1) / 2 * width,
		Y: (1 - vert.Y/w) / 2 * height,
		Z: vert.Z / w,
		W: vert.W,
	}

}

// WorldToScreenPixels transforms a 3D position in the world to a position onscreen, with X and Y representing the pixels.
// Z holds the normalized depth (-1 at the near plane, 1 at the far plane); if W is 0 or less, the position is behind the camera.
func (camera *Camera) WorldToScreenPixels(vert Vector) Vector {
	return camera.clipToScreen(camera.WorldToClip(vert), float64(camera.width), float64(camera.height))
}

// WorldToScreen transforms a 3D position in the world to a 2D vector, with X and Y ranging from -1 to 1 across the screen
// (+Y up). Z and W are as for WorldToScreenPixels.
func (camera *Camera) WorldToScreen(vert Vector) Vector {
	v := camera.WorldToScreenPixels(vert)
	v.X = v.X/(float64(camera.width)/2) - 1
	v.Y = 1 - v.Y/(float64(camera.height)/2)
	return v
}

// PointInFrustum returns true if the world position given is within the camera's view.
func (camera *Camera) PointInFrustum(point Vector) bool {
	clip := camera.WorldToClip(point)
	if clip.W <= 0 {
		return false
	}
	return math.Abs(clip.X) <= clip.W && math.Abs(clip.Y) <= clip.W && math.Abs(clip.Z) <= clip.W
}

// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
func (camera *Camera) AddChildren(children ...INode) {
	camera.addChildren(camera, children...)
}

// Type returns the NodeType for this object.
func (camera *Camera) Type() NodeType {
	return NodeTypeCamera
}

func (camera *Camera) line(screen *ebiten.Image, a, b Vector, color Color) {
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, color.ToNRGBA64(), true)
}

func (camera *Camera) offscreen(v0, v1, v2 Vector) bool {
	w, h := float64(camera.width), float64(camera.height)
	return (v0.X < 0 && v1.X < 0 && v2.X < 0) ||
		(v0.Y < 0 && v1.Y < 0 && v2.Y < 0) ||
		(v0.X > w && v1.X > w && v2.X > w) ||
		(v0.Y > h && v1.Y > h && v2.Y > h)
}

// modelsUnder returns rootNode and its recursive children that are visible Models with a Mesh.
func modelsUnder(rootNode INode) []*Model {
	drawable := func(node INode) bool {
		model, isModel := node.(*Model)
		return isModel && model.Mesh != nil && model.Visible()
	}
	out := []*Model{}
	if drawable(rootNode) {
		out = append(out, rootNode.(*Model))
	}
	return append(out, rootNode.Search().ByFunc(drawable).Models()...)
}

// DrawDebugWireframe draws the wireframe triangles of all visible Models underneath the rootNode in the color provided to the screen
// image provided. Triangles with a vertex behind the camera are skipped.
func (camera *Camera) DrawDebugWireframe(screen *ebiten.Image, rootNode INode, color Color) {
	camera.drawWireframe(screen, rootNode, func(model *Model, part *MeshPart, center, normal Vector) Color {
		return color
	})
}

// DrawDebugWireframeLit draws the wireframe triangles of the visible Models in the Scene, coloring each triangle with its
// Material and Model color as lit by the Scene's lights (or unlit, if the Scene's World has lighting off).
func (camera *Camera) DrawDebugWireframeLit(screen *ebiten.Image, scene *Scene) {

	lights := scene.Lights()
	lightingOn := scene.World == nil || scene.World.LightingOn

	camera.drawWireframe(screen, scene.Root, func(model *Model, part *MeshPart, center, normal Vector) Color {

		base := model.Color
		if part.Material != nil {
			base = base.MultiplyRGB(part.Material.Color.R, part.Material.Color.G, part.Material.Color.B)
		}

		if !lightingOn {
			return base
		}

		var r, g, b float32
		for _, light := range lights {
			if !light.IsOn() {
				continue
			}
			lr, lg, lb := light.Light(center, normal)
			r += lr
			g += lg
			b += lb
		}

		return base.MultiplyRGB(min(r, 1), min(g, 1), min(b, 1))

	})

}

func (camera *Camera) drawWireframe(screen *ebiten.Image, rootNode INode, colorFunc func(model *Model, part *MeshPart, center, normal Vector) Color) {

	vpMatrix := camera.ViewMatrix().Mult(camera.Projection())
	camWidth, camHeight := float64(camera.width), float64(camera.height)

	camera.DebugInfo = DebugInfo{}

	for _, model := range modelsUnder(rootNode) {

		camera.DebugInfo.TotalModels++

		transform := model.Transform()
		mvp := transform.Mult(vpMatrix)
		mesh := model.Mesh

		screenVerts := make([]Vector, len(mesh.VertexPositions))
		for i, v := range mesh.VertexPositions {
			screenVerts[i] = camera.clipToScreen(mvp.MultVecW(v), camWidth, camHeight)
		}

		drawn := false

		for _, part := range mesh.MeshParts {

			for i := 0; i+2 < len(part.Indices); i += 3 {

				camera.DebugInfo.TotalTris++

				i0, i1, i2 := part.Indices[i], part.Indices[i+1], part.Indices[i+2]
				v0, v1, v2 := screenVerts[i0], screenVerts[i1], screenVerts[i2]

				if v0.W <= 0 || v1.W <= 0 || v2.W <= 0 || camera.offscreen(v0, v1, v2) {
					continue
				}

				p0 := transform.MultVec(mesh.VertexPositions[i0])
				p1 := transform.MultVec(mesh.VertexPositions[i1])
				p2 := transform.MultVec(mesh.VertexPositions[i2])
				center := p0.Add(p1).Add(p2).Scale(1.0 / 3)

				c := colorFunc(model, part, center, calculateNormal(p0, p1, p2))

				camera.line(screen, v0, v1, c)
				camera.line(screen, v1, v2, c)
				camera.line(screen, v2, v0, c)

				camera.DebugInfo.DrawnTris++
				drawn = true

			}

		}

		if drawn {
			camera.DebugInfo.DrawnModels++
		}

	}

}

// DrawDebugCenters draws the center positions of nodes under the rootNode using the color given to the screen image provided,
// with lines from each node to its parent. For an armature, this draws the skeleton.
func (camera *Camera) DrawDebugCenters(screen *ebiten.Image, rootNode INode, color Color) {

	c := color.ToNRGBA64()

	for _, node := range append([]INode{rootNode}, rootNode.ChildrenRecursive()...) {

		if node == INode(camera) || !node.Visible() {
			continue
		}

		px := camera.WorldToScreenPixels(node.WorldPosition())
		if px.W <= 0 {
			continue
		}

		vector.FillCircle(screen, float32(px.X), float32(px.Y), 3, c, true)

		// If the node's parent is something, and its parent's parent is something (i.e. it's not the root)
		if node.Parent() != nil && node.Parent() != node.Root() {
			parentPos := camera.WorldToScreenPixels(node.Parent().WorldPosition())
			if parentPos.W > 0 {
				camera.line(screen, px, parentPos, color)
			}
		}

	}

}

// DrawDebugAxes draws the X (red), Y (green) and Z (blue) axes of the node given, each length world units long. Pass the
// scene root to draw the world axes.
func (camera *Camera) DrawDebugAxes(screen *ebiten.Image, node INode, length float64) {

	transform := node.Transform()
	origin := camera.WorldToScreenPixels(transform.MultVec(NewVectorZero()))

	if origin.W <= 0 {
		return
	}

	axes := []struct {
		dir   Vector
		color Color
	}{
		{WorldRight, NewColor(1, 0.2, 0.2, 1)},
		{WorldUp, NewColor(0.2, 1, 0.2, 1)},
		{WorldBackward, NewColor(0.2, 0.4, 1, 1)},
	}

	for _, axis := range axes {
		end := camera.WorldToScreenPixels(transform.MultVec(axis.dir.Scale(length)))
		if end.W > 0 {
			camera.line(screen, origin, end, axis.color)
		}
	}

}

// DrawDebugRenderInfo draws the TPS, FPS and the counts from the last wireframe pass to the top-left of the screen.
func (camera *Camera) DrawDebugRenderInfo(screen *ebiten.Image, textScale float64, color Color) {

	debugText := fmt.Sprintf(
		"TPS: %f\nFPS: %f\nDrawn models: %d/%d\nDrawn triangles: %d/%d",
		ebiten.ActualTPS(),
		ebiten.ActualFPS(),
		camera.DebugInfo.DrawnModels,
		camera.DebugInfo.TotalModels,
		camera.DebugInfo.DrawnTris,
		camera.DebugInfo.TotalTris,
	)

	camera.DebugDrawText(screen, debugText, 0, 0, textScale, color)

}

// DebugDrawText draws the text given with a black outline at the position given, scaled by textScale.
func (camera *Camera) DebugDrawText(screen *ebiten.Image, txtStr string, posX, posY, textScale float64, color Color) {

	if camera.debugFace == nil {
		camera.debugFace = text.NewGoXFace(basicfont.Face7x13)
	}

	dr := &text.DrawOptions{}
	dr.LineSpacing = 13
	dr.ColorScale.Scale(0, 0, 0, 1)

	for y := -1; y < 2; y++ {

		for x := -1; x < 2; x++ {

			dr.GeoM.Reset()
			dr.GeoM.Translate(posX+4+float64(x), posY+4+float64(y))
			dr.GeoM.Scale(textScale, textScale)

			text.Draw(screen, txtStr, camera.debugFace, dr)
		}

	}

	dr.ColorScale.Reset()
	dr.ColorScale.ScaleWithColor(color.ToNRGBA64())

	dr.GeoM.Reset()
	dr.GeoM.Translate(posX+4, posY+4)
	dr.GeoM.Scale(textScale, textScale)

	text.Draw(screen, txtStr, camera.debugFace, dr)

}
