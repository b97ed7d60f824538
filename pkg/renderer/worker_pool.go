package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/TwistedFury/RayTracer/pkg/log"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile          *Tile
	TaskID        int          // For deterministic ordering
	Framebuffer   *Framebuffer // Shared framebuffer; tiles never overlap
	State         *TileState   // Estimates carried between passes; nil starts from scratch
	TargetSamples int          // Total samples per pixel once the task is done
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

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
	renderer    *TileRenderer
	taskQueue   chan TileTask
	resultQueue chan TileResult
	logger      log.Logger
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks bounds the queues so submission never blocks.
func NewWorkerPool(renderer *TileRenderer, numWorkers, maxTasks int, logger log.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			logger:      logger,
		})
	}

	return wp
}

// Start begins all workers. Tasks picked up after ctx is done are skipped
// and reported with ErrInterrupted.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers once the queued tasks are drained
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
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
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if ctx.Err() != nil {
			w.resultQueue <- TileResult{TaskID: task.TaskID, Error: ErrInterrupted}
			continue
		}

		state := task.State
		if state == nil {
			state = task.Tile.NewState()
		}

		stats := w.renderer.RenderTileSamples(task.Tile, state, task.TargetSamples, task.Framebuffer)
		stats.Tiles = 1
		w.logger.Debugf("worker %d finished tile %d %v", w.ID, task.Tile.ID, task.Tile.Bounds)

		w.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}
