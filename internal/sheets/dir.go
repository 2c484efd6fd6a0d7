package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nconklindev/portail/internal/table"
)

var ErrNotFound = errors.New("sheets: no file for source")

var dirExtensions = []string{".json", ".csv", ".xlsx"}

// Dir serves sources from files named after them, e.g. bs-data.csv, for
// working offline from exported sheets.
type Dir struct {
	Path string
}

// Load reads the first of name.json, name.csv, name.xlsx found in the
// directory.
func (d Dir) Load(ctx context.Context, name string) (table.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ext := range dirExtensions {
		path := filepath.Join(d.Path, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		data, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		return data.Table(), nil
	}

	return nil, fmt.Errorf("%s in %s: %w", name, d.Path, ErrNotFound)
}
