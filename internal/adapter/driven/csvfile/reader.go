// Package csvfile implements the CodeSource and PicklistWriter ports on
// local CSV files.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fmhf/recipe-pick/internal/domain/port/driven"
)

var _ driven.CodeSource = (*CodeReader)(nil)

// utf8BOM is stripped from the first field if a spreadsheet export left one.
const utf8BOM = "\ufeff"

// CodeReader reads recipe codes from the first column of a delimited file.
// Every row counts, including a header row if present; rows with a blank
// first column are skipped.
type CodeReader struct {
	path      string
	delimiter rune
}

// NewCodeReader creates a CodeReader for path. A zero delimiter means comma.
func NewCodeReader(path string, delimiter rune) *CodeReader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CodeReader{path: path, delimiter: delimiter}
}

// ReadCodes returns the codes in file order, duplicates included.
func (r *CodeReader) ReadCodes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("opening codes file: %w", err)
	}
	defer func() { _ = f.Close() }()

	codes, err := readCodes(f, r.delimiter)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.path, err)
	}
	return codes, nil
}

func readCodes(rd io.Reader, delimiter rune) ([]string, error) {
	cr := csv.NewReader(rd)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var codes []string
	for first := true; ; first = false {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		code := record[0]
		if first {
			code = strings.TrimPrefix(code, utf8BOM)
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	return codes, nil
}
