package testbed

import (
	"fmt"
	"path/filepath"

	"github.com/dvitali/maquette/engine"
	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/math"
	"github.com/dvitali/maquette/engine/renderer"
	"github.com/dvitali/maquette/engine/scene"
	"github.com/dvitali/maquette/engine/systems"
)

// ViewerGame is the model viewer application: it loads a scene
// manifest, shows placeholders while models stream in and spins
// whatever the manifest says to spin.
type ViewerGame struct {
	*engine.Game
}

type gameState struct {
	graph      *scene.Graph
	camera     *systems.Camera
	projection math.Mat4
	width      uint32
	height     uint32
	wireframe  bool
	paused     bool
}

const cameraMoveSpeed = 5.0
const cameraTurnSpeed = 1.8
const cameraZoomStep = 0.5

func NewViewerGame(config *engine.ApplicationConfig) (*ViewerGame, error) {
	vg := &ViewerGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	vg.FnInitialize = vg.Initialize
	vg.FnUpdate = vg.Update
	vg.FnRender = vg.Render
	vg.FnOnResize = vg.OnResize
	vg.FnShutdown = vg.Shutdown

	return vg, nil
}

func (g *ViewerGame) Initialize() error {
	state := g.State.(*gameState)

	camera, err := g.SystemManager.CameraSystem.Acquire(systems.DefaultCameraName)
	if err != nil {
		return err
	}
	state.camera = camera

	meshSystem := g.SystemManager.MeshSystem
	geometrySystem := g.SystemManager.GeometrySystem

	if g.ApplicationConfig.SceneManifest != "" {
		manifestPath := filepath.Join(g.ApplicationConfig.AssetsDir, g.ApplicationConfig.SceneManifest)
		manifest, err := scene.LoadManifest(manifestPath)
		if err != nil {
			return err
		}
		graph, err := manifest.Build(meshSystem, geometrySystem)
		if err != nil {
			return err
		}
		state.graph = graph
		camera.SetPosition(math.NewVec3(
			manifest.Camera.Position[0],
			manifest.Camera.Position[1],
			manifest.Camera.Position[2],
		))
		camera.SetEulerRotation(math.NewVec3(
			math.DegToRad(manifest.Camera.Rotation[0]),
			math.DegToRad(manifest.Camera.Rotation[1]),
			math.DegToRad(manifest.Camera.Rotation[2]),
		))
	} else {
		// No manifest configured; spin a placeholder cube so there is
		// something on screen.
		graph := scene.NewGraph()
		fallback, err := scene.NewFallbackNode(geometrySystem, "placeholder", 1.0, scene.DefaultFallbackColour)
		if err != nil {
			return err
		}
		fallback.Animators = append(fallback.Animators, scene.NewSpinner(math.NewVec3Up(), 1.0))
		graph.Root.AddChild(fallback)
		state.graph = graph
		camera.SetPosition(math.NewVec3(0, 0, 4))
	}

	core.LogInfo("viewer initialized with scene of %d top level nodes", len(state.graph.Root.Children()))
	return nil
}

func (g *ViewerGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	if core.InputIsKeyPressed(core.KEY_F) {
		state.wireframe = !state.wireframe
	}
	if core.InputIsKeyPressed(core.KEY_SPACE) {
		state.paused = !state.paused
	}

	g.moveCamera(state, deltaTime)

	if !state.paused {
		state.graph.Update(deltaTime)
	}
	return nil
}

func (g *ViewerGame) moveCamera(state *gameState, deltaTime float64) {
	camera := state.camera
	move := float32(cameraMoveSpeed * deltaTime)
	turn := float32(cameraTurnSpeed * deltaTime)

	if core.InputIsKeyDown(core.KEY_W) {
		camera.MoveForward(move)
	}
	if core.InputIsKeyDown(core.KEY_S) {
		camera.MoveBackward(move)
	}
	if core.InputIsKeyDown(core.KEY_A) {
		camera.MoveLeft(move)
	}
	if core.InputIsKeyDown(core.KEY_D) {
		camera.MoveRight(move)
	}
	if core.InputIsKeyDown(core.KEY_LEFT) {
		camera.Yaw(turn)
	}
	if core.InputIsKeyDown(core.KEY_RIGHT) {
		camera.Yaw(-turn)
	}
	if core.InputIsKeyDown(core.KEY_UP) {
		camera.Pitch(turn)
	}
	if core.InputIsKeyDown(core.KEY_DOWN) {
		camera.Pitch(-turn)
	}
	if wheel := core.InputMouseWheel(); wheel != 0 {
		camera.MoveForward(float32(wheel) * cameraZoomStep)
	}
}

func (g *ViewerGame) Render(packet *renderer.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)

	packet.View = state.camera.GetView()
	packet.Projection = state.projection
	packet.Wireframe = state.wireframe
	packet.Geometries = state.graph.Collect()

	fps, frameTime := core.MetricsFrame()
	packet.Texts = append(packet.Texts, &renderer.TextRenderData{
		Text:   fmt.Sprintf("%.0f fps / %.2f ms", fps, frameTime),
		X:      8,
		Y:      8,
		Colour: math.NewVec4(1, 1, 1, 1),
	})

	if pending := g.SystemManager.MeshSystem.PendingCount(); pending > 0 {
		packet.Texts = append(packet.Texts, &renderer.TextRenderData{
			Text:   fmt.Sprintf("loading %d model(s)...", pending),
			X:      8,
			Y:      32,
			Colour: math.NewVec4(0.8, 0.8, 0.5, 1),
		})
	}

	return nil
}

func (g *ViewerGame) OnResize(width, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	aspect := float32(width) / float32(height)
	state.projection = math.NewMat4Perspective(math.DegToRad(45.0), aspect, 0.1, 1000.0)
	return nil
}

func (g *ViewerGame) Shutdown() error {
	return nil
}
