package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed. Data is KeyEvent.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released. Data is KeyEvent.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Resized/resolution changed from the OS. Data is SystemEvent.
	EVENT_CODE_RESIZED SystemEventCode = 0x04

	// An asynchronous asset load finished. Data is AssetEvent.
	EVENT_CODE_ASSET_LOADED SystemEventCode = 0x05

	// An asynchronous asset load failed. Data is AssetEvent.
	EVENT_CODE_ASSET_LOAD_FAILED SystemEventCode = 0x06

	// A watched asset file changed on disk. Data is AssetEvent.
	EVENT_CODE_ASSET_CHANGED SystemEventCode = 0x07

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// KeyEvent is the payload of key pressed/released events.
type KeyEvent struct {
	KeyCode KeyCode
}

// SystemEvent is the payload of window-level events.
type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// AssetEvent is the payload of asset lifecycle events.
type AssetEvent struct {
	Name string
	Path string
	Err  error
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	mutex      sync.RWMutex
	registered map[SystemEventCode][]FnOnEvent
	queue      chan EventContext
	done       chan struct{}
}

var onceEvent sync.Once
var eventState *eventSystemState

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]FnOnEvent),
			queue:      make(chan EventContext, 256),
			done:       make(chan struct{}),
		}
	})
	return eventState != nil
}

var onceEventShutdown sync.Once

func EventSystemShutdown() error {
	if eventState != nil {
		onceEventShutdown.Do(func() {
			close(eventState.done)
		})
	}
	return nil
}

// EventRegister subscribes the callback for the given code. All callbacks
// for a code are invoked in registration order.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) {
	if eventState == nil {
		return
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()
	eventState.registered[code] = append(eventState.registered[code], onEvent)
}

// EventFire queues the event for dispatch by ProcessEvents. Safe to call
// from any goroutine. Events fired when the queue is full are dropped
// with a warning rather than blocking the caller.
func EventFire(context EventContext) {
	if eventState == nil {
		return
	}
	select {
	case eventState.queue <- context:
	default:
		LogWarn("event queue full, dropping event code %d", context.Type)
	}
}

// EventFireImmediate dispatches to all listeners on the calling goroutine.
func EventFireImmediate(context EventContext) {
	if eventState == nil {
		return
	}
	eventState.mutex.RLock()
	listeners := eventState.registered[context.Type]
	eventState.mutex.RUnlock()
	for _, cb := range listeners {
		cb(context)
	}
}

// ProcessEvents drains the queue until shutdown. Run it in its own
// goroutine alongside the main loop.
func ProcessEvents() {
	for {
		select {
		case ctx := <-eventState.queue:
			EventFireImmediate(ctx)
		case <-eventState.done:
			return
		}
	}
}
