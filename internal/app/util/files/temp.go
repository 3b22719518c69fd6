package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrMaterialize marks failures to create or write a temporary artifact
var ErrMaterialize = errors.New("failed to materialize temporary artifact")

// TempArtifact is a uniquely named file holding a copy of in-memory data.
// The zero value and nil are valid and refer to no file.
type TempArtifact struct {
	path string
}

// CreateTempArtifact writes data to <dir>/<prefix>-<uuid><ext>. The file is created
// exclusively so concurrent callers can never share a name. An empty dir uses the
// system temp directory. On failure no file is left behind.
func CreateTempArtifact(dir, prefix, ext string, data []byte) (*TempArtifact, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}

	return &TempArtifact{path: path}, nil
}

// Path returns the artifact location, or "" when there is none
func (a *TempArtifact) Path() string {
	if a == nil {
		return ""
	}
	return a.path
}

// Remove deletes the artifact. Errors are swallowed: removal must never mask
// the outcome of the work done with the file.
func (a *TempArtifact) Remove() {
	if a == nil || a.path == "" {
		return
	}
	_ = os.Remove(a.path)
}

// WithTempArtifact materializes data, runs fn with the artifact path and removes the
// artifact on every exit path, including panics unwinding through fn.
// Materialization failures wrap ErrMaterialize; otherwise fn's error is returned as is.
func WithTempArtifact(dir, prefix, ext string, data []byte, fn func(path string) error) error {
	artifact, err := CreateTempArtifact(dir, prefix, ext, data)
	if err != nil {
		return err
	}
	defer artifact.Remove()

	return fn(artifact.Path())
}
