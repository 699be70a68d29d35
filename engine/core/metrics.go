package core

import (
	"sync"

	"github.com/dvitali/maquette/engine/containers"
)

const frameSampleCount = 30

type MetricsState struct {
	samples            *containers.RingQueue[float64]
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

var onceMetrics sync.Once
var metricsState *MetricsState

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			samples: containers.NewRingQueue[float64](frameSampleCount),
		}
	})
	return nil
}

// MetricsUpdate records one frame. frameElapsedTime is in seconds.
func MetricsUpdate(frameElapsedTime float64) {
	frameMS := frameElapsedTime * 1000.0

	// Rolling window of the last frameSampleCount frame times.
	if metricsState.samples.IsFull() {
		old, _ := metricsState.samples.Dequeue()
		metricsState.msAvg -= old / frameSampleCount
	}
	metricsState.samples.Enqueue(frameMS)
	metricsState.msAvg += frameMS / frameSampleCount

	metricsState.accumulatedFrameMS += frameMS
	if metricsState.accumulatedFrameMS > 1000 {
		metricsState.fps = float64(metricsState.frames)
		metricsState.accumulatedFrameMS -= 1000
		metricsState.frames = 0
	}

	metricsState.frames++
}

func MetricsFPS() float64 {
	return metricsState.fps
}

func MetricsFrameTime() float64 {
	return metricsState.msAvg
}

func MetricsFrame() (float64, float64) {
	return metricsState.fps, metricsState.msAvg
}
