package renderer

import (
	"image"
	"math"
	"time"

	"github.com/TwistedFury/RayTracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken per pixel
	Tiles           int           // Number of tiles rendered
	Workers         int           // Number of workers used
	Duration        time.Duration // Wall time of the render

	luminanceSum float64 // Sum of per-pixel mean luminance
	varianceSum  float64 // Sum of per-pixel luminance variance
	maxVariance  float64
}

// AddPixel records the statistics of a finished pixel
func (rs *RenderStats) AddPixel(ps *PixelStats) {
	rs.TotalPixels++
	rs.TotalSamples += ps.SampleCount

	variance := ps.Variance()
	rs.luminanceSum += ps.MeanLuminance()
	rs.varianceSum += variance
	rs.maxVariance = math.Max(rs.maxVariance, variance)
}

// Merge folds the statistics of another region into rs
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.Tiles += other.Tiles
	rs.luminanceSum += other.luminanceSum
	rs.varianceSum += other.varianceSum
	rs.maxVariance = math.Max(rs.maxVariance, other.maxVariance)
}

// AverageSamples returns the mean number of samples per pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// MeanLuminance returns the average linear luminance over all pixels
func (rs RenderStats) MeanLuminance() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return rs.luminanceSum / float64(rs.TotalPixels)
}

// MeanVariance returns the average per-pixel luminance variance of single samples
func (rs RenderStats) MeanVariance() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return rs.varianceSum / float64(rs.TotalPixels)
}

// MaxVariance returns the largest per-pixel luminance variance
func (rs RenderStats) MaxVariance() float64 {
	return rs.maxVariance
}

// SamplesPerSecond returns the sampling throughput
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Duration.Seconds()
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// MeanLuminance returns the average sample luminance
func (ps *PixelStats) MeanLuminance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	return ps.LuminanceAccum / float64(ps.SampleCount)
}

// Variance returns the luminance variance of a single sample
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	mean := ps.MeanLuminance()
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	return math.Max(0, meanSq-mean*mean)
}

// StandardError returns the standard error of the pixel mean.
// It shrinks as 1/sqrt(samples).
func (ps *PixelStats) StandardError() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	return math.Sqrt(ps.Variance() / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an 8-bit image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}

	return total / float64(pixels)
}
