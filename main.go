package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/TwistedFury/RayTracer/pkg/geometry"
	"github.com/TwistedFury/RayTracer/pkg/integrator"
	"github.com/TwistedFury/RayTracer/pkg/loaders"
	"github.com/TwistedFury/RayTracer/pkg/log"
	"github.com/TwistedFury/RayTracer/pkg/output"
	"github.com/TwistedFury/RayTracer/pkg/renderer"
	"github.com/TwistedFury/RayTracer/pkg/scene"
)

var logger = log.New("raytracer")

func main() {
	// A missing .env file is fine; flags and the environment still apply
	_ = godotenv.Load()

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes using Monte-Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a JSON scene file and save the result.
The output format follows the extension of --out (png, jpg, bmp, gif, tiff).`,
			Flags:  renderFlags(),
			Action: renderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: listScenes,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "scene",
			Value:  "default",
			Usage:  "built-in scene name or path to a .json scene file",
			EnvVar: "RAYTRACER_SCENE",
		},
		cli.StringFlag{
			Name:   "scene-file",
			Usage:  "JSON scene file; overrides --scene",
			EnvVar: "RAYTRACER_SCENE_FILE",
		},
		cli.IntFlag{
			Name:   "width",
			Usage:  "frame width; defaults to the scene's width",
			EnvVar: "RAYTRACER_WIDTH",
		},
		cli.IntFlag{
			Name:   "height",
			Usage:  "frame height; defaults to the scene's height",
			EnvVar: "RAYTRACER_HEIGHT",
		},
		cli.IntFlag{
			Name:   "spp",
			Usage:  "samples per pixel; defaults to the scene's value",
			EnvVar: "RAYTRACER_SPP",
		},
		cli.IntFlag{
			Name:   "depth",
			Usage:  "max bounces per path; defaults to the scene's value",
			EnvVar: "RAYTRACER_DEPTH",
		},
		cli.Int64Flag{
			Name:   "seed",
			Usage:  "random seed; defaults to the scene's value",
			EnvVar: "RAYTRACER_SEED",
		},
		cli.StringFlag{
			Name:   "integrator",
			Value:  "path-tracing",
			Usage:  "light transport: path-tracing or normals",
			EnvVar: "RAYTRACER_INTEGRATOR",
		},
		cli.IntFlag{
			Name:   "workers",
			Usage:  "number of render workers; 0 uses one per CPU",
			EnvVar: "RAYTRACER_WORKERS",
		},
		cli.IntFlag{
			Name:   "tile-size",
			Value:  renderer.DefaultParallelConfig().TileSize,
			Usage:  "tile edge length in pixels",
			EnvVar: "RAYTRACER_TILE_SIZE",
		},
		cli.IntFlag{
			Name:   "passes",
			Value:  1,
			Usage:  "refine the image over this many passes, writing each one to the output",
			EnvVar: "RAYTRACER_PASSES",
		},
		cli.BoolFlag{
			Name:  "single-threaded",
			Usage: "render pixel by pixel on one goroutine with a single random sequence",
		},
		cli.StringFlag{
			Name:   "out",
			Usage:  "output image; defaults to output/<scene>/render_<timestamp>.png",
			EnvVar: "RAYTRACER_OUT",
		},
		cli.BoolFlag{
			Name:   "preview",
			Usage:  "also write a thumbnail next to the output",
			EnvVar: "RAYTRACER_PREVIEW",
		},
		cli.UintFlag{
			Name:   "preview-width",
			Value:  output.DefaultPreviewWidth,
			Usage:  "thumbnail width in pixels",
			EnvVar: "RAYTRACER_PREVIEW_WIDTH",
		},
		cli.StringFlag{
			Name:   "s3-bucket",
			Usage:  "upload the render to this bucket",
			EnvVar: "RAYTRACER_S3_BUCKET",
		},
		cli.StringFlag{
			Name:   "s3-prefix",
			Value:  "renders",
			Usage:  "key prefix for uploads",
			EnvVar: "RAYTRACER_S3_PREFIX",
		},
		cli.StringFlag{
			Name:   "s3-endpoint",
			Usage:  "S3-compatible endpoint; empty for AWS",
			EnvVar: "RAYTRACER_S3_ENDPOINT",
		},
		cli.StringFlag{
			Name:   "s3-region",
			Value:  "us-east-1",
			EnvVar: "RAYTRACER_S3_REGION",
		},
		cli.StringFlag{
			Name:   "s3-access-key",
			EnvVar: "RAYTRACER_S3_ACCESS_KEY",
		},
		cli.StringFlag{
			Name:   "s3-secret-key",
			EnvVar: "RAYTRACER_S3_SECRET_KEY",
		},
	}
}

// renderOptions holds the render command flags
type renderOptions struct {
	Scene          string
	Width, Height  int
	Spp, Depth     int
	Seed           *int64
	Integrator     string
	Workers        int
	TileSize       int
	Passes         int
	SingleThreaded bool
	Out            string
	Preview        bool
	PreviewWidth   uint
	S3             output.S3Config
}

func optionsFromContext(ctx *cli.Context) renderOptions {
	opts := renderOptions{
		Scene:          ctx.String("scene"),
		Width:          ctx.Int("width"),
		Height:         ctx.Int("height"),
		Spp:            ctx.Int("spp"),
		Depth:          ctx.Int("depth"),
		Integrator:     ctx.String("integrator"),
		Workers:        ctx.Int("workers"),
		TileSize:       ctx.Int("tile-size"),
		Passes:         ctx.Int("passes"),
		SingleThreaded: ctx.Bool("single-threaded"),
		Out:            ctx.String("out"),
		Preview:        ctx.Bool("preview"),
		PreviewWidth:   ctx.Uint("preview-width"),
		S3: output.S3Config{
			Bucket:    ctx.String("s3-bucket"),
			Prefix:    ctx.String("s3-prefix"),
			Endpoint:  ctx.String("s3-endpoint"),
			Region:    ctx.String("s3-region"),
			AccessKey: ctx.String("s3-access-key"),
			SecretKey: ctx.String("s3-secret-key"),
		},
	}

	if file := ctx.String("scene-file"); file != "" {
		opts.Scene = file
	}
	if ctx.IsSet("seed") {
		seed := ctx.Int64("seed")
		opts.Seed = &seed
	}

	return opts
}

func setupLogging(ctx *cli.Context) {
	log.SetLevel(log.VerbosityLevel(ctx.GlobalBool("v"), ctx.GlobalBool("vv")))
}

// createScene resolves a built-in scene name or a JSON scene file path
func createScene(sceneType string) (*scene.Scene, error) {
	if strings.HasSuffix(sceneType, ".json") {
		s, err := loaders.LoadScene(sceneType)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene file: %w", err)
		}
		return s, nil
	}
	return scene.NewByName(sceneType)
}

// applyOverrides replaces scene sampling values with the ones given on the command line.
// A changed frame size also changes the camera aspect ratio.
func applyOverrides(s *scene.Scene, opts renderOptions) {
	cfg := &s.SamplingConfig

	resized := false
	if opts.Width > 0 {
		cfg.Width = opts.Width
		resized = true
	}
	if opts.Height > 0 {
		cfg.Height = opts.Height
		resized = true
	}
	if opts.Spp > 0 {
		cfg.SamplesPerPixel = opts.Spp
	}
	if opts.Depth > 0 {
		cfg.MaxDepth = opts.Depth
	}
	if opts.Seed != nil {
		cfg.Seed = *opts.Seed
	}

	if resized {
		s.CameraConfig.AspectRatio = float64(cfg.Width) / float64(cfg.Height)
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}
}

// sceneBaseName returns the name used for output directories
func sceneBaseName(sceneType string) string {
	if strings.HasSuffix(sceneType, ".json") {
		return strings.TrimSuffix(filepath.Base(sceneType), ".json")
	}
	return sceneType
}

// outputPath returns the image path for a render started at now
func outputPath(opts renderOptions, now time.Time) string {
	if opts.Out != "" {
		return opts.Out
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneBaseName(opts.Scene), fmt.Sprintf("render_%s.png", timestamp))
}

// buildSinks assembles the sinks selected by the options.
// The final sink receives the finished frame. The progress sink receives the
// intermediate passes of a progressive render and leaves out uploads.
// Uploads reuse the base name of the file output as key.
func buildSinks(opts renderOptions, outPath string) (final, progress output.Sink, err error) {
	fileSink := output.NewFileSink(filepath.Dir(outPath))
	local := output.MultiSink{fileSink}

	if opts.Preview {
		local = append(local, output.NewPreviewSink(fileSink, opts.PreviewWidth))
	}

	sinks := append(output.MultiSink{}, local...)
	if opts.S3.Bucket != "" {
		s3Sink, err := output.NewS3Sink(opts.S3, log.New("output"))
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, s3Sink)
	}

	return sinks, local, nil
}

func renderFrame(ctx *cli.Context) error {
	setupLogging(ctx)
	opts := optionsFromContext(ctx)

	s, err := createScene(opts.Scene)
	if err != nil {
		return err
	}
	applyOverrides(s, opts)
	if err := s.Validate(); err != nil {
		return err
	}

	integratorInst, err := integrator.New(opts.Integrator, s.SamplingConfig)
	if err != nil {
		return err
	}

	fb, err := renderer.NewFramebuffer(s.SamplingConfig.Width, s.SamplingConfig.Height)
	if err != nil {
		return err
	}

	outPath := outputPath(opts, time.Now())
	sink, progressSink, err := buildSinks(opts, outPath)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering scene %q (%d objects, %d materials)", opts.Scene, len(s.Shapes), s.Materials.Len())

	var stats renderer.RenderStats
	switch {
	case opts.SingleThreaded:
		rt := renderer.NewRaytracer(s)
		rt.SetIntegrator(integratorInst)
		stats, err = rt.Render(fb)
	case opts.Passes > 1:
		config := renderer.ProgressiveConfig{
			TileSize:       opts.TileSize,
			InitialSamples: 1,
			MaxPasses:      opts.Passes,
			NumWorkers:     opts.Workers,
		}
		pr := renderer.NewProgressiveRaytracer(s, integratorInst, config, log.New("renderer"))
		stats, err = pr.Render(renderCtx, fb, passWriter(renderCtx, progressSink, filepath.Base(outPath), fb))
	default:
		config := renderer.ParallelConfig{TileSize: opts.TileSize, NumWorkers: opts.Workers}
		stats, err = renderer.NewParallelRaytracer(s, integratorInst, config, log.New("renderer")).Render(renderCtx, fb)
	}
	if err != nil {
		return err
	}

	displayRenderStats(stats)

	if err := sink.Write(renderCtx, filepath.Base(outPath), fb.Image()); err != nil {
		return err
	}
	logger.Noticef("render saved as %s", outPath)

	return nil
}

// passWriter returns a pass callback that writes every pass but the last to sink.
// The last pass is left to the final sink.
func passWriter(ctx context.Context, sink output.Sink, name string, fb *renderer.Framebuffer) func(renderer.PassResult) error {
	return func(result renderer.PassResult) error {
		if result.IsLast {
			return nil
		}
		logger.Infof("pass %d/%d: %.0f samples per pixel", result.PassNumber, result.TotalPasses, result.Stats.AverageSamples())
		return sink.Write(ctx, name, fb.Image())
	}
}

func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range scene.ListBuiltinScenes() {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()

	fmt.Print(buf.String())
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	logger.Noticef("render statistics\n%s", formatRenderStats(stats))
}

func formatRenderStats(stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples", "Tiles", "Workers", "Mean luminance", "Mean variance", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.4f", stats.MeanLuminance()),
		fmt.Sprintf("%.4f", stats.MeanVariance()),
		stats.Duration.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "SAMPLES/S", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})

	table.Render()
	return buf.String()
}
