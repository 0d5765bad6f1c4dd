package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteDir writes the three partition CSV files into dir, creating it if
// needed. It returns the written paths in partition order.
func WriteDir(dir string, r *Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, NewExportError("csv", dir, err)
	}

	paths := make([]string, 0, len(Partitions))
	for _, p := range Partitions {
		path := filepath.Join(dir, p.FileName())
		if err := writeFile(path, r, p); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, r *Report, p Partition) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return NewExportError("csv", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = NewExportError("csv", path, fmt.Errorf("close: %w", cerr))
		}
	}()
	return WriteCSV(f, r, p)
}
