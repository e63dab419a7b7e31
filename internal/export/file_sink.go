package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/types"
)

// FileSink writes artifacts into a directory, overwriting same-named files.
type FileSink struct {
	Dir string
}

// NewFileSink returns a sink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Name identifies the sink in logs and sink errors.
func (f *FileSink) Name() string {
	return "file"
}

// Store writes the artifact and returns its path.
func (f *FileSink) Store(_ context.Context, artifact *types.ExportArtifact) (string, error) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", f.Dir, err)
	}
	path := filepath.Join(f.Dir, filepath.Base(artifact.Filename))
	if err := os.WriteFile(path, artifact.Content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
