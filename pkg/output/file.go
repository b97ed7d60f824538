package output

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// FileSink saves images below a directory
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink writing into dir. An empty dir means the working directory.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Write saves img as Dir/name, creating missing directories
func (f *FileSink) Write(ctx context.Context, name string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := imaging.FormatFromFilename(name); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}

	path := filepath.Join(f.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
