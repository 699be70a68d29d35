package systems

import (
	"fmt"

	"github.com/dvitali/maquette/engine/math"
)

// Camera holds a position and euler rotation from which the view matrix
// is lazily rebuilt. Do not set the fields directly; use the setters so
// the matrix is invalidated.
type Camera struct {
	position      math.Vec3
	eulerRotation math.Vec3
	isDirty       bool
	viewMatrix    math.Mat4
}

const DefaultCameraName = "default"

func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

func (c *Camera) Reset() {
	c.position = math.NewVec3Zero()
	c.eulerRotation = math.NewVec3Zero()
	c.isDirty = false
	c.viewMatrix = math.NewMat4Identity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
	c.isDirty = true
}

func (c *Camera) GetEulerRotation() math.Vec3 {
	return c.eulerRotation
}

func (c *Camera) SetEulerRotation(rotation math.Vec3) {
	c.eulerRotation = rotation
	c.isDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.isDirty {
		rotation := math.NewMat4EulerXYZ(c.eulerRotation.X, c.eulerRotation.Y, c.eulerRotation.Z)
		translation := math.NewMat4Translation(c.position)
		c.viewMatrix = rotation.Mul(translation).Inverse()
		c.isDirty = false
	}
	return c.viewMatrix
}

func (c *Camera) Forward() math.Vec3 {
	return c.GetView().Forward()
}

func (c *Camera) Backward() math.Vec3 {
	return c.GetView().Backward()
}

func (c *Camera) Left() math.Vec3 {
	return c.GetView().Left()
}

func (c *Camera) Right() math.Vec3 {
	return c.GetView().Right()
}

func (c *Camera) MoveForward(amount float32) {
	c.SetPosition(c.position.Add(c.Forward().MulScalar(amount)))
}

func (c *Camera) MoveBackward(amount float32) {
	c.SetPosition(c.position.Add(c.Backward().MulScalar(amount)))
}

func (c *Camera) MoveLeft(amount float32) {
	c.SetPosition(c.position.Add(c.Left().MulScalar(amount)))
}

func (c *Camera) MoveRight(amount float32) {
	c.SetPosition(c.position.Add(c.Right().MulScalar(amount)))
}

func (c *Camera) Yaw(amount float32) {
	rot := c.eulerRotation
	rot.Y += amount
	c.SetEulerRotation(rot)
}

func (c *Camera) Pitch(amount float32) {
	rot := c.eulerRotation
	// Avoid gimbal lock.
	limit := math.DegToRad(89.0)
	rot.X = math.Clamp(rot.X+amount, -limit, limit)
	c.SetEulerRotation(rot)
}

// CameraSystem manages named cameras plus a default camera that always
// exists as a fallback.
type CameraSystem struct {
	cameras       map[string]*Camera
	DefaultCamera *Camera
}

func NewCameraSystem() (*CameraSystem, error) {
	return &CameraSystem{
		cameras:       make(map[string]*Camera),
		DefaultCamera: NewCamera(),
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	cs.cameras = make(map[string]*Camera)
	return nil
}

// Acquire returns the named camera, creating it on first use. The
// default camera name returns the fallback camera.
func (cs *CameraSystem) Acquire(name string) (*Camera, error) {
	if name == "" {
		return nil, fmt.Errorf("camera name must not be empty")
	}
	if name == DefaultCameraName {
		return cs.DefaultCamera, nil
	}
	if c, ok := cs.cameras[name]; ok {
		return c, nil
	}
	c := NewCamera()
	cs.cameras[name] = c
	return c, nil
}

func (cs *CameraSystem) Release(name string) {
	if name == DefaultCameraName {
		return
	}
	delete(cs.cameras, name)
}
