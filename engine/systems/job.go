package systems

import (
	"fmt"
	"sync"

	"github.com/dvitali/maquette/engine/core"
)

// JobTask is a unit of background work. OnStart runs on a worker
// goroutine; its result is handed to OnComplete, or to OnFailure with
// the error when it fails. The completion callbacks also run on the
// worker, so anything touching render state must hand off through a
// channel instead of mutating directly.
type JobTask struct {
	Name        string
	InputParams interface{}
	OnStart     func(params interface{}) (interface{}, error)
	OnComplete  func(result interface{})
	OnFailure   func(params interface{}, err error)
}

type JobSystem struct {
	numWorkers   int
	jobQueue     chan JobTask
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.OnStart(job.InputParams)
				if err != nil {
					core.LogError("job '%s' failed: %s", job.Name, err.Error())
					if job.OnFailure != nil {
						job.OnFailure(job.InputParams, err)
					}
					continue
				}
				if job.OnComplete != nil {
					job.OnComplete(result)
				}
			}
		}()
	}
}

// Shutdown stops accepting work and waits for in-flight jobs to
// finish. Safe to call more than once; the engine's signal path and
// the regular teardown path may both reach it.
func (js *JobSystem) Shutdown() error {
	js.shutdownOnce.Do(func() {
		close(js.jobQueue)
	})
	js.wg.Wait()
	return nil
}

// Submit queues the provided job for execution, blocking while the
// queue is full.
func (js *JobSystem) Submit(jt JobTask) {
	js.jobQueue <- jt
}
