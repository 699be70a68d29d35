package systems

import (
	"fmt"
	"sync"

	"github.com/dvitali/maquette/engine/assets"
	"github.com/dvitali/maquette/engine/core"
	"github.com/dvitali/maquette/engine/resources"
)

// ModelState tracks where an async model request is in its lifecycle.
type ModelState int

const (
	ModelStatePending ModelState = iota
	ModelStateLoaded
	ModelStateFailed
)

func (s ModelState) String() string {
	switch s {
	case ModelStatePending:
		return "pending"
	case ModelStateLoaded:
		return "loaded"
	case ModelStateFailed:
		return "failed"
	}
	return "unknown"
}

// ModelHandle is returned immediately by RequestModel. Its state flips
// from pending on the update thread only, so consumers polling it from
// there never race the loader.
type ModelHandle struct {
	Name string

	mu    sync.RWMutex
	state ModelState
	data  *resources.ModelData
	err   error
	// Generation increments on every successful (re)load.
	generation uint32
}

func (h *ModelHandle) State() ModelState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Data returns the parsed model, or nil while the handle is not loaded.
func (h *ModelHandle) Data() *resources.ModelData {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state != ModelStateLoaded {
		return nil
	}
	return h.data
}

func (h *ModelHandle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

func (h *ModelHandle) Generation() uint32 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.generation
}

type meshCompletion struct {
	handle   *ModelHandle
	resource *resources.Resource
	err      error
}

// MeshSystem loads model resources on the job system's workers and
// publishes results through a completion queue that Update drains on
// the frame thread. Asset change events requeue loads for hot reload.
type MeshSystem struct {
	assetManager  *assets.AssetManager
	jobSystem     *JobSystem
	completions   chan meshCompletion
	mu            sync.Mutex
	handles       map[string]*ModelHandle
	changedModels chan string
}

func NewMeshSystem(am *assets.AssetManager, js *JobSystem) (*MeshSystem, error) {
	if am == nil || js == nil {
		return nil, fmt.Errorf("mesh system requires an asset manager and a job system")
	}
	ms := &MeshSystem{
		assetManager:  am,
		jobSystem:     js,
		completions:   make(chan meshCompletion, 64),
		handles:       make(map[string]*ModelHandle),
		changedModels: make(chan string, 16),
	}
	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, ms.onAssetChanged)
	return ms, nil
}

func (ms *MeshSystem) Shutdown() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.handles = make(map[string]*ModelHandle)
	return nil
}

// RequestModel returns a handle for the named model immediately. The
// handle starts pending; the actual load runs on a worker. Requesting
// the same name again returns the existing handle.
func (ms *MeshSystem) RequestModel(name string) *ModelHandle {
	ms.mu.Lock()
	if h, ok := ms.handles[name]; ok {
		ms.mu.Unlock()
		return h
	}
	h := &ModelHandle{Name: name, state: ModelStatePending}
	ms.handles[name] = h
	ms.mu.Unlock()

	ms.submitLoad(h)
	return h
}

// PendingCount reports how many requested models have not resolved
// yet. The HUD uses it for a loading indicator.
func (ms *MeshSystem) PendingCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	pending := 0
	for _, h := range ms.handles {
		if h.State() == ModelStatePending {
			pending++
		}
	}
	return pending
}

func (ms *MeshSystem) submitLoad(h *ModelHandle) {
	ms.jobSystem.Submit(JobTask{
		Name:        fmt.Sprintf("load-model-%s", h.Name),
		InputParams: h,
		OnStart: func(params interface{}) (interface{}, error) {
			handle := params.(*ModelHandle)
			return ms.assetManager.LoadAsset(handle.Name, resources.ResourceTypeModel, nil)
		},
		OnComplete: func(result interface{}) {
			ms.completions <- meshCompletion{handle: h, resource: result.(*resources.Resource)}
		},
		OnFailure: func(params interface{}, err error) {
			ms.completions <- meshCompletion{handle: h, err: err}
		},
	})
}

// Update drains finished loads. Call once per frame from the frame
// thread; handle state only ever changes here.
func (ms *MeshSystem) Update() {
	for {
		select {
		case name := <-ms.changedModels:
			ms.reload(name)
		case c := <-ms.completions:
			ms.resolve(c)
		default:
			return
		}
	}
}

func (ms *MeshSystem) resolve(c meshCompletion) {
	h := c.handle
	h.mu.Lock()
	if c.err != nil {
		h.state = ModelStateFailed
		h.err = c.err
		h.mu.Unlock()
		core.LogError("model '%s' failed to load: %s", h.Name, c.err.Error())
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_ASSET_LOAD_FAILED,
			Data: core.AssetEvent{Name: h.Name, Err: c.err},
		})
		return
	}
	data, ok := c.resource.Data.(*resources.ModelData)
	if !ok {
		h.state = ModelStateFailed
		h.err = fmt.Errorf("resource '%s' did not contain model data", h.Name)
		h.mu.Unlock()
		return
	}
	h.state = ModelStateLoaded
	h.data = data
	h.err = nil
	h.generation++
	h.mu.Unlock()

	core.LogDebug("successfully loaded model '%s'", h.Name)
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_ASSET_LOADED,
		Data: core.AssetEvent{Name: h.Name, Path: c.resource.FullPath},
	})
}

// reload puts a loaded handle back into its load job after its source
// file changed on disk; the old data stays visible until the new parse
// lands.
func (ms *MeshSystem) reload(name string) {
	ms.mu.Lock()
	h, ok := ms.handles[name]
	ms.mu.Unlock()
	if !ok {
		return
	}
	core.LogInfo("model '%s' changed on disk, reloading", name)
	ms.submitLoad(h)
}

func (ms *MeshSystem) onAssetChanged(context core.EventContext) {
	ev, ok := context.Data.(core.AssetEvent)
	if !ok {
		return
	}
	ms.mu.Lock()
	_, known := ms.handles[ev.Name]
	ms.mu.Unlock()
	if !known {
		return
	}
	select {
	case ms.changedModels <- ev.Name:
	default:
		core.LogWarn("dropping change notification for model '%s', reload queue full", ev.Name)
	}
}
