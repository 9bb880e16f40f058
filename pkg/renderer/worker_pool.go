package renderer

import (
	"runtime"
	"sync"
	"time"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile *Tile
	Pass int
}

// TileResult contains the rendered block for one task
type TileResult struct {
	Tile     *Tile
	Pass     int
	Block    *Block
	Samples  int
	Duration time.Duration
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
	integrator  *Integrator
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Queues are buffered to hold capacity tasks.
func NewWorkerPool(in *Integrator, capacity, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, capacity),
		resultQueue: make(chan TileResult, capacity),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			integrator:  in,
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

// Stop gracefully shuts down all workers and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// Results returns the queue completed tiles are delivered on
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		start := time.Now()
		block, samples := w.integrator.RenderTile(task.Tile, task.Pass)

		w.resultQueue <- TileResult{
			Tile:     task.Tile,
			Pass:     task.Pass,
			Block:    block,
			Samples:  samples,
			Duration: time.Since(start),
		}
	}
}
