package core

import "sync"

type KeyCode uint16

const (
	KEY_ESCAPE KeyCode = iota
	KEY_SPACE
	KEY_ENTER
	KEY_LEFT
	KEY_RIGHT
	KEY_UP
	KEY_DOWN
	KEY_A
	KEY_D
	KEY_F
	KEY_R
	KEY_S
	KEY_W
	KEY_MAX_KEYS
)

type MouseButton uint8

const (
	BUTTON_LEFT MouseButton = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

type keyboardState struct {
	keys [KEY_MAX_KEYS]bool
}

type mouseState struct {
	x, y    int16
	buttons [BUTTON_MAX_BUTTONS]bool
	wheel   int8
}

type inputState struct {
	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
	mouseCurrent     mouseState
	mousePrevious    mouseState
}

var onceInput sync.Once
var inState *inputState

func InputInitialize() error {
	onceInput.Do(func() {
		inState = &inputState{}
	})
	return nil
}

func InputShutdown() error {
	return nil
}

// InputUpdate copies current states to previous. Call once per frame,
// after all input for the frame has been recorded.
func InputUpdate(deltaTime float64) {
	if inState == nil {
		return
	}
	inState.keyboardPrevious = inState.keyboardCurrent
	inState.mousePrevious = inState.mouseCurrent
	inState.mouseCurrent.wheel = 0
}

// InputProcessKey records a key state change and fires the matching event
// on a transition.
func InputProcessKey(key KeyCode, pressed bool) {
	if inState == nil || key >= KEY_MAX_KEYS {
		return
	}
	if inState.keyboardCurrent.keys[key] == pressed {
		return
	}
	inState.keyboardCurrent.keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{Type: code, Data: KeyEvent{KeyCode: key}})
}

func InputProcessButton(button MouseButton, pressed bool) {
	if inState == nil || button >= BUTTON_MAX_BUTTONS {
		return
	}
	inState.mouseCurrent.buttons[button] = pressed
}

func InputProcessMouseMove(x, y int16) {
	if inState == nil {
		return
	}
	inState.mouseCurrent.x = x
	inState.mouseCurrent.y = y
}

func InputProcessMouseWheel(delta int8) {
	if inState == nil {
		return
	}
	inState.mouseCurrent.wheel = delta
}

func InputIsKeyDown(key KeyCode) bool {
	return inState != nil && key < KEY_MAX_KEYS && inState.keyboardCurrent.keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	return inState != nil && key < KEY_MAX_KEYS && inState.keyboardPrevious.keys[key]
}

// InputIsKeyPressed reports a down transition on this frame.
func InputIsKeyPressed(key KeyCode) bool {
	return InputIsKeyDown(key) && !InputWasKeyDown(key)
}

func InputIsButtonDown(button MouseButton) bool {
	return inState != nil && button < BUTTON_MAX_BUTTONS && inState.mouseCurrent.buttons[button]
}

func InputMousePosition() (int16, int16) {
	if inState == nil {
		return 0, 0
	}
	return inState.mouseCurrent.x, inState.mouseCurrent.y
}

// InputMouseDelta returns the cursor movement since the previous frame.
func InputMouseDelta() (int16, int16) {
	if inState == nil {
		return 0, 0
	}
	return inState.mouseCurrent.x - inState.mousePrevious.x,
		inState.mouseCurrent.y - inState.mousePrevious.y
}

func InputMouseWheel() int8 {
	if inState == nil {
		return 0
	}
	return inState.mouseCurrent.wheel
}
