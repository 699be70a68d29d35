package core

import (
	"testing"
)

func TestInputKeyTransitions(t *testing.T) {
	if err := InputInitialize(); err != nil {
		t.Fatalf("input init failed: %v", err)
	}

	InputProcessKey(KEY_A, true)
	if !InputIsKeyDown(KEY_A) {
		t.Fatal("key should be down after press")
	}
	if !InputIsKeyPressed(KEY_A) {
		t.Fatal("key should read as pressed on the press frame")
	}

	InputUpdate(0.016)
	if InputIsKeyPressed(KEY_A) {
		t.Fatal("held key should not read as pressed on the next frame")
	}
	if !InputWasKeyDown(KEY_A) {
		t.Fatal("previous frame state should record the key as down")
	}

	InputProcessKey(KEY_A, false)
	if InputIsKeyDown(KEY_A) {
		t.Fatal("key should be up after release")
	}
	InputUpdate(0.016)
}

func TestInputMouseState(t *testing.T) {
	if err := InputInitialize(); err != nil {
		t.Fatalf("input init failed: %v", err)
	}

	InputProcessMouseMove(100, 50)
	x, y := InputMousePosition()
	if x != 100 || y != 50 {
		t.Fatalf("expected cursor at (100,50), got (%d,%d)", x, y)
	}

	InputProcessButton(BUTTON_LEFT, true)
	if !InputIsButtonDown(BUTTON_LEFT) {
		t.Fatal("left button should be down")
	}
	InputProcessButton(BUTTON_LEFT, false)

	InputProcessMouseWheel(2)
	if InputMouseWheel() != 2 {
		t.Fatal("wheel delta should be recorded")
	}
	InputUpdate(0.016)
	if InputMouseWheel() != 0 {
		t.Fatal("wheel delta should reset each frame")
	}
}
