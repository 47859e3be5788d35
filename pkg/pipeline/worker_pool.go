package pipeline

import (
	"context"
	"image"
	"runtime"
	"sync"
)

// TileTask is one rectangle of the launch grid
type TileTask struct {
	TaskID int
	Bounds image.Rectangle
}

// TileResult is returned for every submitted task
type TileResult struct {
	TaskID   int
	Counters Counters
	Error    error
	Skipped  bool // the context was done before the tile started
}

// WorkerPool runs tile tasks on a fixed set of goroutines. Every tile writes
// a disjoint set of pixels of the shared target image.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders tiles pulled from the pool's queue
type Worker struct {
	ID          int
	ctx         context.Context
	pipeline    *Pipeline
	target      *image.RGBA
	width       int
	height      int
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a pool that renders into target. maxTasks bounds the
// number of tasks that can be queued without a reader. Once ctx is done,
// queued tiles are returned as skipped without being rendered.
func NewWorkerPool(ctx context.Context, p *Pipeline, target *image.RGBA, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	bounds := target.Bounds()
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			ctx:         ctx,
			pipeline:    p,
			target:      target,
			width:       bounds.Dx(),
			height:      bounds.Dy(),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for in-flight tiles and closes the
// result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask queues a tile
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if w.ctx.Err() != nil {
			w.resultQueue <- TileResult{TaskID: task.TaskID, Skipped: true}
			continue
		}
		counters, err := w.pipeline.renderTile(task.Bounds, w.width, w.height, w.target)
		w.resultQueue <- TileResult{
			TaskID:   task.TaskID,
			Counters: counters,
			Error:    err,
		}
	}
}
