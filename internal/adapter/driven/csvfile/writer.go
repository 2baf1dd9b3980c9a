package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/fmhf/recipe-pick/internal/domain/model"
	"github.com/fmhf/recipe-pick/internal/domain/port/driven"
)

var _ driven.PicklistWriter = (*Writer)(nil)

// fileSuffix is appended to the run id to form the picklist file name.
const fileSuffix = "_picklists.csv"

// Writer emits picklists as CSV files named after a fresh UUIDv7, so names
// never collide across runs and sort by creation time.
type Writer struct {
	dir   string
	newID func() (uuid.UUID, error)
}

// NewWriter creates a Writer that places files in dir. An empty dir means
// the working directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir, newID: uuid.NewV7}
}

// WritePicklist writes the header and rows to a new file and returns its
// path. The file is staged and renamed into place, so a failed write leaves
// nothing behind. A file already at the generated path is refused; the check
// precedes the rename, so only the run-unique name guards against a file
// appearing in between.
func (w *Writer) WritePicklist(ctx context.Context, rows []model.PicklistRow) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id, err := w.newID()
	if err != nil {
		return "", fmt.Errorf("generating run id: %w", err)
	}
	path := filepath.Join(w.dir, id.String()+fileSuffix)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("output file %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking output file: %w", err)
	}

	var buf bytes.Buffer
	if err := encode(&buf, rows); err != nil {
		return "", fmt.Errorf("encoding picklist: %w", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	// The staging file is created 0600; widen it to the mode of a plain
	// created file so the picklist can be shared like any other export.
	if err := os.Chmod(path, 0o644); err != nil {
		slog.Warn("picklist written with restrictive permissions", "path", path, "error", err)
	}

	return path, nil
}

func encode(buf *bytes.Buffer, rows []model.PicklistRow) error {
	cw := csv.NewWriter(buf)
	if err := cw.Write(model.PicklistHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
