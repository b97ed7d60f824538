package renderer

import (
	"image"
	"math/rand"
	randv2 "math/rand/v2"

	"github.com/TwistedFury/RayTracer/pkg/core"
)

// Tile represents a rectangular region of the image rendered as one task
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Seed   int64           // Seed of the tile's random generator
}

// NewTile creates a new tile whose generator is seeded with baseSeed + id
func NewTile(id int, bounds image.Rectangle, baseSeed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Seed:   baseSeed + int64(id),
	}
}

// TileState holds the running estimate of every pixel of a tile, row-major
// over its bounds, together with the random stream feeding each pixel.
// It survives between passes of a progressive render.
type TileState struct {
	Pixels  []PixelStats
	streams []randv2.PCG
}

// NewState seeds one stream per pixel from the tile's generator.
// Every call restarts from the tile seed, so a tile always renders the same way.
func (t *Tile) NewState() *TileState {
	seeds := rand.New(rand.NewSource(t.Seed))
	n := t.Bounds.Dx() * t.Bounds.Dy()

	state := &TileState{
		Pixels:  make([]PixelStats, n),
		streams: make([]randv2.PCG, n),
	}
	for i := range state.streams {
		state.streams[i].Seed(seeds.Uint64(), seeds.Uint64())
	}
	return state
}

// Sampler returns a sampler over the stream of pixel i.
// It picks up where the previous sampler of that pixel stopped.
func (ts *TileState) Sampler(i int) core.Sampler {
	return core.NewStreamSampler(&ts.streams[i])
}

// NewTileGrid creates a grid of tiles covering the entire image in row-major order
func NewTileGrid(width, height, tileSize int, baseSeed int64) []*Tile {
	if tileSize < 1 {
		tileSize = 1
	}

	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), baseSeed))
			tileID++
		}
	}

	return tiles
}
