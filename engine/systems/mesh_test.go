package systems

import (
	"testing"
	"time"

	"github.com/dvitali/maquette/engine/assets"
)

func newMeshTestSystem(t *testing.T) *MeshSystem {
	t.Helper()

	am, err := assets.NewAssetManager()
	if err != nil {
		t.Fatalf("asset manager: %v", err)
	}
	if err := am.Initialize(t.TempDir()); err != nil {
		t.Fatalf("asset manager init: %v", err)
	}
	t.Cleanup(func() { am.Shutdown() })

	js, err := NewJobSystem(1, 4)
	if err != nil {
		t.Fatalf("job system: %v", err)
	}
	t.Cleanup(func() { js.Shutdown() })

	ms, err := NewMeshSystem(am, js)
	if err != nil {
		t.Fatalf("mesh system: %v", err)
	}
	return ms
}

func TestRequestModelReturnsHandleImmediately(t *testing.T) {
	ms := newMeshTestSystem(t)

	h := ms.RequestModel("anything")
	if h == nil {
		t.Fatal("expected a handle")
	}
	if h.State() != ModelStatePending {
		t.Fatalf("fresh handle must start pending, got %v", h.State())
	}
	if h.Data() != nil {
		t.Fatal("pending handle must expose no data")
	}
}

func TestRequestModelDeduplicatesByName(t *testing.T) {
	ms := newMeshTestSystem(t)

	a := ms.RequestModel("same")
	b := ms.RequestModel("same")
	if a != b {
		t.Fatal("same name should return the same handle")
	}
}

func TestMissingModelFailsOnUpdate(t *testing.T) {
	ms := newMeshTestSystem(t)

	h := ms.RequestModel("does-not-exist")
	deadline := time.Now().Add(5 * time.Second)
	for h.State() == ModelStatePending {
		if time.Now().After(deadline) {
			t.Fatal("missing model never resolved")
		}
		ms.Update()
		time.Sleep(time.Millisecond)
	}

	if h.State() != ModelStateFailed {
		t.Fatalf("expected failed, got %v", h.State())
	}
	if h.Err() == nil {
		t.Fatal("failed handle must carry an error")
	}
	if h.Data() != nil {
		t.Fatal("failed handle must expose no data")
	}
}

func TestModelStateString(t *testing.T) {
	cases := []struct {
		state ModelState
		want  string
	}{
		{ModelStatePending, "pending"},
		{ModelStateLoaded, "loaded"},
		{ModelStateFailed, "failed"},
		{ModelState(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.state.String(); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}
