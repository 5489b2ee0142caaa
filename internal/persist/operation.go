// Package persist writes generator snapshots and transformed tables to disk as
// a validated set of file operations.
package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileExists is returned by Validate when the target exists and force is off.
var ErrFileExists = errors.New("file already exists")

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// force=true skips the existing-file check.
//
// Execute performs the operation. Undo reverts a successful Execute as far as
// possible and is used to roll back a partially applied set.
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Undo() error
	Description() string
}

// WriteFileOp writes content to a file.
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Writes to a temporary sibling and renames it into place
//   - Remembers any previous content so Undo can restore it
type WriteFileOp struct {
	Path    string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)

	previous []byte
	existed  bool
	written  bool
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Path == "" {
		return fmt.Errorf("path is required")
	}
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	info, err := os.Stat(op.Path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("path is a directory: %s", op.Path)
	case err == nil && !force:
		return fmt.Errorf("%w: %s", ErrFileExists, op.Path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("cannot stat %s: %w", op.Path, err)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	if prev, err := os.ReadFile(op.Path); err == nil {
		op.previous, op.existed = prev, true
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(op.Path)+".*")
	if err != nil {
		return fmt.Errorf("cannot create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(op.Content)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(tmpName, op.Mode)
	}
	if werr == nil {
		werr = os.Rename(tmpName, op.Path)
	}
	if werr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot write %s: %w", op.Path, werr)
	}

	op.written = true
	return nil
}

func (op *WriteFileOp) Undo() error {
	if !op.written {
		return nil
	}
	op.written = false
	if op.existed {
		return os.WriteFile(op.Path, op.previous, op.Mode)
	}
	return os.Remove(op.Path)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Write %s (%d bytes)", op.Path, len(op.Content))
}
