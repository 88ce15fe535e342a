package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/snowjak88/ray2/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // For deterministic ordering
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// TileFunc renders one tile
type TileFunc func(tile *Tile) (RenderStats, error)

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	render      TileFunc
	taskQueue   chan TileTask
	resultQueue chan TileResult
	logger      core.Logger
}

// DefaultWorkers leaves one CPU free for the rest of the process
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()-1)
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so submitting never blocks.
func NewWorkerPool(render TileFunc, maxTasks, numWorkers int, logger core.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			render:      render,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			logger:      logger,
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

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
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

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.execute(task)
	}
}

// execute renders one task. A panic is logged and reported as a failed task so the
// worker keeps serving the queue.
func (w *Worker) execute(task TileTask) (result TileResult) {
	result.TaskID = task.TaskID
	defer func() {
		if r := recover(); r != nil {
			w.logger.Printf("Worker %d: task %d panicked: %v\n", w.ID, task.TaskID, r)
			result.Stats.FailedTasks = 1
			result.Error = fmt.Errorf("task %d panicked: %v", task.TaskID, r)
		}
	}()

	result.Stats, result.Error = w.render(task.Tile)
	return result
}
