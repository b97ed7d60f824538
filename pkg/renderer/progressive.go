package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/TwistedFury/RayTracer/pkg/integrator"
	"github.com/TwistedFury/RayTracer/pkg/log"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize       int // Tile edge length in pixels
	InitialSamples int // Samples for first pass (1 recommended)
	MaxPasses      int // Maximum number of passes
	NumWorkers     int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       DefaultParallelConfig().TileSize,
		InitialSamples: 1,
		MaxPasses:      5,
		NumWorkers:     0,
	}
}

// PassResult describes a finished pass. The framebuffer holds the pass image.
type PassResult struct {
	PassNumber  int
	TotalPasses int
	Stats       RenderStats
	IsLast      bool
}

// ProgressiveRaytracer renders a frame in passes of growing sample counts.
// Every pass adds samples to the per-pixel estimates of the previous one, so the
// last pass reaches SamplesPerPixel and matches a single-pass render of the same seed.
type ProgressiveRaytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     ProgressiveConfig
	logger     log.Logger

	width, height int
	tiles         []*Tile
	states        []*TileState
}

// NewProgressiveRaytracer creates a progressive renderer for s
func NewProgressiveRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config ProgressiveConfig, logger log.Logger) *ProgressiveRaytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	if config.InitialSamples <= 0 {
		config.InitialSamples = 1
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}
	if logger == nil {
		logger = log.New("renderer")
	}

	return &ProgressiveRaytracer{
		scene:      s,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// PassCount returns the number of passes the render takes.
// Passes after the first add at least one sample each, so small sample budgets get fewer passes.
func (pr *ProgressiveRaytracer) PassCount() int {
	maxSamples := pr.scene.SamplingConfig.SamplesPerPixel
	initial := min(pr.config.InitialSamples, maxSamples)
	return max(1, min(pr.config.MaxPasses, 1+maxSamples-initial))
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	maxSamples := pr.scene.SamplingConfig.SamplesPerPixel
	passes := pr.PassCount()

	// Special case: if only 1 pass, use all samples
	if passes == 1 || passNumber >= passes {
		return maxSamples
	}

	// First pass is a quick preview
	initial := min(pr.config.InitialSamples, maxSamples)
	if passNumber <= 1 {
		return initial
	}

	// Divide remaining samples evenly across remaining passes; the last pass takes the rest
	samplesPerPass := (maxSamples - initial) / (passes - 1)
	return initial + (passNumber-1)*samplesPerPass
}

// reset drops all accumulated samples and lays out tiles for a width x height frame
func (pr *ProgressiveRaytracer) reset(width, height int) {
	pr.width, pr.height = width, height
	pr.tiles = NewTileGrid(width, height, pr.config.TileSize, pr.scene.SamplingConfig.Seed)
	pr.states = make([]*TileState, len(pr.tiles))
	for i, tile := range pr.tiles {
		pr.states[i] = tile.NewState()
	}
}

// RenderPass renders a single progressive pass into fb.
// Pass 1 starts a new image; later passes must use a framebuffer of the same size.
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, fb *Framebuffer, passNumber int) (RenderStats, error) {
	if pr.scene == nil {
		return RenderStats{}, ErrNilScene
	}
	if err := pr.scene.Validate(); err != nil {
		return RenderStats{}, err
	}

	if passNumber <= 1 || pr.tiles == nil {
		pr.reset(fb.Width(), fb.Height())
	} else if fb.Width() != pr.width || fb.Height() != pr.height {
		return RenderStats{}, fmt.Errorf("%w: pass %d framebuffer is %dx%d, earlier passes were %dx%d",
			scene.ErrInvalidDimensions, passNumber, fb.Width(), fb.Height(), pr.width, pr.height)
	}

	start := time.Now()
	targetSamples := pr.getSamplesForPass(passNumber)

	tasks := make([]TileTask, len(pr.tiles))
	for i, tile := range pr.tiles {
		tasks[i] = TileTask{
			Tile:          tile,
			TaskID:        i,
			Framebuffer:   fb,
			State:         pr.states[i],
			TargetSamples: targetSamples,
		}
	}

	pr.logger.Infof("pass %d: target %d samples per pixel", passNumber, targetSamples)
	stats, err := renderTiles(ctx, NewTileRenderer(pr.scene, pr.integrator), tasks, pr.config.NumWorkers, pr.logger)
	stats.SamplesPerPixel = targetSamples
	stats.Duration = time.Since(start)
	if err != nil {
		pr.logger.Warningf("pass %d interrupted after %d of %d tiles", passNumber, stats.Tiles, len(pr.tiles))
		return stats, err
	}

	pr.logger.Infof("pass %d completed in %s (%.0f samples/pixel)", passNumber, stats.Duration, stats.AverageSamples())
	return stats, nil
}

// Render runs every pass into fb and calls onPass after each one.
// An error from onPass stops the render and is returned as is.
func (pr *ProgressiveRaytracer) Render(ctx context.Context, fb *Framebuffer, onPass func(PassResult) error) (RenderStats, error) {
	if pr.scene == nil {
		return RenderStats{}, ErrNilScene
	}

	start := time.Now()
	passes := pr.PassCount()
	pr.logger.Infof("starting progressive rendering with %d passes", passes)

	var stats RenderStats
	for pass := 1; pass <= passes; pass++ {
		if ctx.Err() != nil {
			pr.logger.Warningf("rendering cancelled before pass %d", pass)
			return stats, ErrInterrupted
		}

		passStats, err := pr.RenderPass(ctx, fb, pass)
		if err != nil {
			return passStats, err
		}
		stats = passStats

		if onPass != nil {
			result := PassResult{PassNumber: pass, TotalPasses: passes, Stats: passStats, IsLast: pass == passes}
			if err := onPass(result); err != nil {
				return stats, err
			}
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
