package processing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/systemstart/eject-blocks/pkg/api"
)

// Summarize lists the files directly inside dir, sorted by name.
// Symbolic links are reported with the size of their target.
func Summarize(dir string) ([]api.FileReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	reports := make([]api.FileReport, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		kind := "File"
		if e.Type()&os.ModeSymlink != 0 {
			kind = "Link"
		}

		reports = append(reports, api.FileReport{
			Name:    e.Name(),
			SizeKiB: float64(info.Size()) / 1024,
			Type:    kind,
		})
	}
	return reports, nil
}
