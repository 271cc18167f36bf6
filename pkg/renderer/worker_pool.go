package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int         // Index into the tile grid
	Image  *core.Image // Shared image; each task writes only inside its tile
	Depth  int
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	ctx         context.Context
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
	pool        *WorkerPool
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks bounds the queue sizes so submitting a whole grid never blocks.
// Tasks taken after ctx is cancelled are answered with ctx.Err().
func NewWorkerPool(ctx context.Context, camera *Camera, tracer Tracer, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		ctx:         ctx,
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			renderer:    NewTileRenderer(camera, tracer),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			pool:        wp,
		}
		wp.workers = append(wp.workers, worker)
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
		w.resultQueue <- w.render(task)
	}
}

// render traces one tile. A panic inside the tracer becomes the task's error.
func (w *Worker) render(task TileTask) (result TileResult) {
	result.TaskID = task.TaskID
	if err := w.pool.ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("worker %d: tile %d: %v", w.ID, task.Tile.ID, r)
		}
	}()
	result.Stats = w.renderer.RenderTileBounds(task.Tile.Bounds, task.Image, task.Depth)
	return result
}
