package renderer

import (
	"context"
	"time"

	"github.com/TwistedFury/RayTracer/pkg/integrator"
	"github.com/TwistedFury/RayTracer/pkg/log"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

// ParallelConfig controls how a frame is split across workers
type ParallelConfig struct {
	TileSize   int // Tile edge length in pixels
	NumWorkers int // Number of workers; 0 means one per CPU
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   32,
		NumWorkers: 0,
	}
}

// ParallelRaytracer renders tiles on a worker pool.
// Each tile owns a sampler seeded with Seed + tile ID, so the image only
// depends on the seed and tile size, never on the number of workers.
type ParallelRaytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     ParallelConfig
	logger     log.Logger
}

// NewParallelRaytracer creates a parallel renderer for s
func NewParallelRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config ParallelConfig, logger log.Logger) *ParallelRaytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultParallelConfig().TileSize
	}
	if logger == nil {
		logger = log.New("renderer")
	}

	return &ParallelRaytracer{
		scene:      s,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Render fills fb and returns the merged statistics of all tiles.
// A cancelled context stops the render between tiles and returns ErrInterrupted.
func (pr *ParallelRaytracer) Render(ctx context.Context, fb *Framebuffer) (RenderStats, error) {
	if pr.scene == nil {
		return RenderStats{}, ErrNilScene
	}
	if err := pr.scene.Validate(); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	spp := pr.scene.SamplingConfig.SamplesPerPixel
	tiles := NewTileGrid(fb.Width(), fb.Height(), pr.config.TileSize, pr.scene.SamplingConfig.Seed)

	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{Tile: tile, TaskID: i, Framebuffer: fb, TargetSamples: spp}
	}

	pr.logger.Infof("rendering %dx%d at %d spp in %d tiles", fb.Width(), fb.Height(), spp, len(tiles))
	stats, err := renderTiles(ctx, NewTileRenderer(pr.scene, pr.integrator), tasks, pr.config.NumWorkers, pr.logger)
	stats.SamplesPerPixel = spp
	stats.Duration = time.Since(start)

	if err != nil {
		pr.logger.Warningf("render interrupted after %d of %d tiles", stats.Tiles, len(tiles))
		return stats, err
	}

	pr.logger.Infof("rendered %d samples in %s on %d workers", stats.TotalSamples, stats.Duration, stats.Workers)
	return stats, nil
}

// renderTiles runs tasks on a fresh worker pool and merges the statistics of the finished ones.
// The error of any skipped task is returned after all workers have stopped.
func renderTiles(ctx context.Context, tr *TileRenderer, tasks []TileTask, numWorkers int, logger log.Logger) (RenderStats, error) {
	pool := NewWorkerPool(tr, numWorkers, len(tasks), logger)

	pool.Start(ctx)
	for _, task := range tasks {
		pool.SubmitTask(task)
	}
	pool.Stop()

	stats := RenderStats{Workers: pool.GetNumWorkers()}

	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.Merge(result.Stats)
	}

	return stats, renderErr
}
