package stage3d

import (
	"bytes"
	"fmt"
	"log"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFLoadOptions alters how a glTF file is loaded.
type GLTFLoadOptions struct {
	// Width and height of loaded Cameras. Defaults to 640x360.
	CameraWidth, CameraHeight int
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		CameraWidth:  640,
		CameraHeight: 360,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options. Buffers referenced by relative paths are read from
// beside the file. Any error returned is an *AssetLoadError (and so matches ErrAssetLoad).
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*Library, error) {

	doc, err := gltf.Open(path)

	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}

	library, err := loadGLTFDocument(doc, loadOptions)
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}

	return library, nil

}

// LoadGLTFData loads a .gltf or .glb file from the byte data given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options. Buffers must be embedded (in a .glb, or as data URIs).
// Any error returned is an *AssetLoadError (and so matches ErrAssetLoad).
func LoadGLTFData(data []byte, loadOptions *GLTFLoadOptions) (*Library, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	err := decoder.Decode(doc)

	if err != nil {
		return nil, &AssetLoadError{Err: err}
	}

	library, err := loadGLTFDocument(doc, loadOptions)
	if err != nil {
		return nil, &AssetLoadError{Err: err}
	}

	return library, nil

}

func loadGLTFDocument(doc *gltf.Document, gltfLoadOptions *GLTFLoadOptions) (*Library, error) {

	if gltfLoadOptions == nil {
		gltfLoadOptions = DefaultGLTFLoadOptions()
	}

	library := NewLibrary()

	camWidth := gltfLoadOptions.CameraWidth
	camHeight := gltfLoadOptions.CameraHeight

	if camWidth <= 0 || camHeight <= 0 {
		camWidth = 640
		camHeight = 360
	}

	materials := make([]*Material, len(doc.Materials))

	for i, gltfMat := range doc.Materials {

		newMat := NewMaterial(gltfMat.Name)
		newMat.library = library
		newMat.DoubleSided = gltfMat.DoubleSided

		if pbr := gltfMat.PBRMetallicRoughness; pbr != nil {

			color := pbr.BaseColorFactorOrDefault()
			newMat.Color.R = float32(color[0])
			newMat.Color.G = float32(color[1])
			newMat.Color.B = float32(color[2])
			newMat.Color.A = float32(color[3])

			if texture := pbr.BaseColorTexture; texture != nil && texture.Index < len(doc.Textures) {
				if source := doc.Textures[texture.Index].Source; source != nil && *source < len(doc.Images) {
					newMat.TexturePath = doc.Images[*source].URI
				}
			}

		}

		newMat.Color.ConvertTosRGB()

		materials[i] = newMat
		library.Materials[gltfMat.Name] = newMat

	}

	meshes := make([]*Mesh, len(doc.Meshes))

	for meshIndex, mesh := range doc.Meshes {

		newMesh := NewMesh(mesh.Name)
		newMesh.library = library
		library.Meshes[mesh.Name] = newMesh
		meshes[meshIndex] = newMesh

		for _, v := range mesh.Primitives {

			if v.Mode != gltf.PrimitiveTriangles {
				log.Println("Warning: Skipping non-triangle primitive in mesh " + mesh.Name)
				continue
			}

			posAccessor, exists := v.Attributes[gltf.POSITION]
			if !exists {
				return nil, fmt.Errorf("mesh %q has a primitive with no positions", mesh.Name)
			}

			posBuffer := [][3]float32{}
			vertPos, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], posBuffer)

			if err != nil {
				return nil, err
			}

			normals := [][3]float32{}
			if normalAccessor, normalExists := v.Attributes[gltf.NORMAL]; normalExists {
				normals, err = modeler.ReadNormal(doc, doc.Accessors[normalAccessor], normals)
				if err != nil {
					return nil, err
				}
			}

			texCoords := [][2]float32{}
			if texCoordAccessor, texCoordExists := v.Attributes[gltf.TEXCOORD_0]; texCoordExists {
				texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[texCoordAccessor], texCoords)
				if err != nil {
					return nil, err
				}
			}

			start := len(newMesh.VertexPositions)

			for i, p := range vertPos {

				normal := Vector{}
				if i < len(normals) {
					normal = NewVector(float64(normals[i][0]), float64(normals[i][1]), float64(normals[i][2]))
				}

				uv := Vector{}
				if i < len(texCoords) {
					uv = NewVector(float64(texCoords[i][0]), -(float64(texCoords[i][1]) - 1), 0)
				}

				newMesh.AddVertex(NewVector(float64(p[0]), float64(p[1]), float64(p[2])), normal, uv)

			}

			var newIndices []int

			if v.Indices != nil {

				indexBuffer := []uint32{}

				indices, err := modeler.ReadIndices(doc, doc.Accessors[*v.Indices], indexBuffer)

				if err != nil {
					return nil, err
				}

				newIndices = make([]int, len(indices))

				for i, j := range indices {
					newIndices[i] = start + int(j)
				}

			} else {

				newIndices = make([]int, len(vertPos))
				for i := range newIndices {
					newIndices[i] = start + i
				}

			}

			var mat *Material

			if v.Material != nil && *v.Material < len(materials) {
				mat = materials[*v.Material]
			}

			newMesh.AddMeshPart(mat, newIndices[:len(newIndices)-len(newIndices)%3]...)

		}

		newMesh.UpdateBounds()

	}

	for _, gltfAnim := range doc.Animations {

		anim := NewAnimation(gltfAnim.Name)

		for _, channel := range gltfAnim.Channels {

			sampler := gltfAnim.Samplers[channel.Sampler]

			channelName := "root"
			if channel.Target.Node != nil {
				channelName = doc.Nodes[*channel.Target.Node].Name
			}

			var trackType string

			switch channel.Target.Path {
			case gltf.TRSTranslation:
				trackType = TrackTypePosition
			case gltf.TRSScale:
				trackType = TrackTypeScale
			case gltf.TRSRotation:
				trackType = TrackTypeRotation
			default:
				// Morph target weights aren't supported
				continue
			}

			id, err := modeler.ReadAccessor(doc, doc.Accessors[sampler.Input], nil)

			if err != nil {
				return nil, err
			}

			inputData, ok := id.([]float32)
			if !ok {
				return nil, fmt.Errorf("animation %q has non-float keyframe times", gltfAnim.Name)
			}

			od, err := modeler.ReadAccessor(doc, doc.Accessors[sampler.Output], nil)

			if err != nil {
				return nil, err
			}

			// Cubic spline samplers store an in-tangent, value and out-tangent per keyframe; only the values are kept, and
			// they're interpolated linearly.
			stride, offset := 1, 0
			interpolation := InterpolationLinear
			switch sampler.Interpolation {
			case gltf.InterpolationStep:
				interpolation = InterpolationConstant
			case gltf.InterpolationCubicSpline:
				stride, offset = 3, 1
			}

			track := anim.AddChannel(channelName).AddTrack(trackType)
			track.Interpolation = interpolation

			switch outputData := od.(type) {

			case [][3]float32:

				if len(outputData) < len(inputData)*stride {
					return nil, fmt.Errorf("animation %q has too few keyframe values for node %q", gltfAnim.Name, channelName)
				}

				for i, t := range inputData {
					p := outputData[i*stride+offset]
					track.AddKeyframe(float64(t), NewVector(float64(p[0]), float64(p[1]), float64(p[2])))
				}

			case [][4]float32:

				if len(outputData) < len(inputData)*stride {
					return nil, fmt.Errorf("animation %q has too few keyframe values for node %q", gltfAnim.Name, channelName)
				}

				for i, t := range inputData {
					p := outputData[i*stride+offset]
					track.AddKeyframe(float64(t), NewQuaternion(float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])))
				}

			default:
				return nil, fmt.Errorf("animation %q has unsupported keyframe data %T for node %q", gltfAnim.Name, od, channelName)

			}

		}

		anim.RecalculateLength()
		library.AddAnimation(anim)

	}

	objects := []INode{}

	// Node / Object creation
	for _, node := range doc.Nodes {

		var obj INode

		if node.Mesh != nil && *node.Mesh < len(meshes) {

			obj = NewModel(node.Name, meshes[*node.Mesh])

		} else if node.Camera != nil {

			gltfCam := doc.Cameras[*node.Camera]

			newCam := NewCamera(camWidth, camHeight)
			newCam.name = node.Name

			if gltfCam.Perspective != nil {
				newCam.SetNear(float64(gltfCam.Perspective.Znear))
				if gltfCam.Perspective.Zfar != nil {
					newCam.SetFar(float64(*gltfCam.Perspective.Zfar))
				}
				newCam.SetFieldOfView(float64(gltfCam.Perspective.Yfov) * 180 / math.Pi)
			}

			obj = newCam

		} else if lighting := node.Extensions["KHR_lights_punctual"]; lighting != nil {

			lights := doc.Extensions["KHR_lights_punctual"].(lightspunctual.Lights)
			lightData := lights[lighting.(lightspunctual.LightIndex)]

			intensity := float32(lightData.IntensityOrDefault())
			color := lightData.ColorOrDefault()
			r, g, b := float32(color[0]), float32(color[1]), float32(color[2])

			if lightData.Type == lightspunctual.TypeDirectional {
				obj = NewDirectionalLight(node.Name, r, g, b, intensity) // Sun is in "energy"
			} else if lightData.Type == lightspunctual.TypePoint {
				pointLight := NewPointLight(node.Name, r, g, b, intensity/80) // Point lights have wattage energy
				if lightData.Range != nil && !math.IsInf(float64(*lightData.Range), 0) {
					pointLight.Range = float64(*lightData.Range)
				}
				obj = pointLight
			} else {
				// Any unsupported light type just gets turned into an ambient light
				obj = NewAmbientLight(node.Name, r, g, b, intensity/80)
			}

		} else {
			obj = NewNode(node.Name)
		}

		obj.setLibrary(library)

		mtData := node.Matrix

		matrix := NewMatrix4()
		matrix.SetRow(0, Vector{float64(mtData[0]), float64(mtData[1]), float64(mtData[2]), float64(mtData[3])})
		matrix.SetRow(1, Vector{float64(mtData[4]), float64(mtData[5]), float64(mtData[6]), float64(mtData[7])})
		matrix.SetRow(2, Vector{float64(mtData[8]), float64(mtData[9]), float64(mtData[10]), float64(mtData[11])})
		matrix.SetRow(3, Vector{float64(mtData[12]), float64(mtData[13]), float64(mtData[14]), float64(mtData[15])})

		if !matrix.IsIdentity() {

			p, s, r := matrix.Decompose()

			obj.SetLocalPositionVec(p)
			obj.SetLocalScaleVec(s)
			obj.SetLocalRotation(r)

		} else {

			obj.SetLocalPositionVec(NewVector(float64(node.Translation[0]), float64(node.Translation[1]), float64(node.Translation[2])))
			obj.SetLocalScaleVec(NewVector(float64(node.Scale[0]), float64(node.Scale[1]), float64(node.Scale[2])))
			obj.SetLocalRotation(NewQuaternion(float64(node.Rotation[0]), float64(node.Rotation[1]), float64(node.Rotation[2]), float64(node.Rotation[3])).ToMatrix4())

		}

		objects = append(objects, obj)

	}

	// We do this again here so we can be sure that all of the nodes can be created first
	for i, node := range doc.Nodes {

		// Flag skin joints as bones
		if node.Skin != nil {

			if model, isModel := objects[i].(*Model); isModel {

				skin := doc.Skins[*node.Skin]

				model.Skinned = true

				for _, b := range skin.Joints {
					bone := objects[b]
					if n, isNode := bone.(*Node); isNode {
						n.isBone = true
					}
					model.Bones = append(model.Bones, bone)
				}

			}

		}

		// Set up parenting
		for _, childIndex := range node.Children {
			objects[i].AddChildren(objects[int(childIndex)])
		}

	}

	// Set up scene roots

	for _, s := range doc.Scenes {

		scene := library.AddScene(s.Name)

		// Parent all parentless objects to the scene root to be visible.
		for _, n := range s.Nodes {
			scene.Root.AddChildren(objects[n])
		}

		for _, n := range scene.Root.ChildrenRecursive() {
			if light, isAmbient := n.(*AmbientLight); isAmbient {
				scene.World.AmbientLight = light
			}
		}

	}

	if len(library.Scenes) == 0 {
		// Files without scenes still get their nodes; everything parentless goes into a default scene
		scene := library.AddScene("Scene")
		for _, obj := range objects {
			if obj.Parent() == nil {
				scene.Root.AddChildren(obj)
			}
		}
	}

	if doc.Scene != nil && *doc.Scene < len(library.Scenes) {
		library.ExportedScene = library.Scenes[*doc.Scene]
	} else {
		library.ExportedScene = library.Scenes[0]
	}

	return library, nil

}
