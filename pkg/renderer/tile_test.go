package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid_Coverage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"Exact fit", 8, 8, 4, 4},
		{"Ragged edges", 10, 7, 4, 6},
		{"Tile larger than image", 3, 2, 16, 1},
		{"Single pixel tiles", 3, 3, 1, 9},
		{"Invalid tile size", 2, 2, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 100)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			covered := make([]int, tt.width*tt.height)
			full := image.Rect(0, 0, tt.width, tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile %d to have ID %d, got %d", i, i, tile.ID)
				}
				if tile.Seed != 100+int64(i) {
					t.Errorf("Expected tile %d seed %d, got %d", i, 100+i, tile.Seed)
				}
				if !tile.Bounds.In(full) {
					t.Errorf("Tile %d bounds %v exceed image %v", i, tile.Bounds, full)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}

			for i, count := range covered {
				if count != 1 {
					t.Fatalf("Pixel %d covered %d times", i, count)
				}
			}
		})
	}
}

func TestTile_NewStateRestarts(t *testing.T) {
	tile := NewTile(3, image.Rect(0, 0, 4, 4), 10)

	a := tile.NewState()
	b := tile.NewState()
	if len(a.Pixels) != 16 {
		t.Fatalf("Expected 16 pixel entries, got %d", len(a.Pixels))
	}

	for _, pixel := range []int{0, 5, 15} {
		sa, sb := a.Sampler(pixel), b.Sampler(pixel)
		for i := 0; i < 5; i++ {
			if va, vb := sa.Get1D(), sb.Get1D(); va != vb {
				t.Fatalf("Pixel %d sample %d differs between states of the same tile: %f vs %f", pixel, i, va, vb)
			}
		}
	}

	fresh := tile.NewState()
	if fresh.Sampler(0).Get1D() == fresh.Sampler(1).Get1D() {
		t.Error("Expected neighbouring pixels to draw different sequences")
	}

	other := NewTile(4, image.Rect(0, 0, 4, 4), 10).NewState()
	if tile.NewState().Sampler(0).Get1D() == other.Sampler(0).Get1D() {
		t.Error("Expected neighbouring tiles to draw different sequences")
	}
}
