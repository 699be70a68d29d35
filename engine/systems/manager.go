package systems

import (
	"github.com/dvitali/maquette/engine/assets"
	"github.com/dvitali/maquette/engine/renderer"
)

// SystemManager owns the engine subsystems and wires them together in
// dependency order.
type SystemManager struct {
	JobSystem      *JobSystem
	CameraSystem   *CameraSystem
	GeometrySystem *GeometrySystem
	MeshSystem     *MeshSystem
	FontSystem     *FontSystem
}

func NewSystemManager(renderer *renderer.Renderer, assetManager *assets.AssetManager) (*SystemManager, error) {
	js, err := NewJobSystem(2, 16)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem()
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem()
	if err != nil {
		return nil, err
	}
	ms, err := NewMeshSystem(assetManager, js)
	if err != nil {
		return nil, err
	}
	fs, err := NewFontSystem(assetManager)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		JobSystem:      js,
		CameraSystem:   cs,
		GeometrySystem: gs,
		MeshSystem:     ms,
		FontSystem:     fs,
	}, nil
}

// Update runs the per-frame work of the subsystems that need it.
func (sm *SystemManager) Update() {
	sm.MeshSystem.Update()
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.MeshSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.FontSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.GeometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return sm.JobSystem.Shutdown()
}
