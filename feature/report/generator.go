package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const extension = ".csv"

// Generator writes CSV reports into a directory without ever overwriting a file.
type Generator struct {
	dir    string
	logger *zap.Logger
	// open creates path and fails with fs.ErrExist when it is taken.
	open func(path string) (io.WriteCloser, error)
}

// NewGenerator creates a generator writing into dir.
func NewGenerator(dir string, logger *zap.Logger) *Generator {
	return &Generator{dir: dir, logger: logger, open: openExclusive}
}

// Generate writes header followed by rows to <dir>/<name>.csv. When that file exists the
// first free name of <name>_1.csv, <name>_2.csv, ... is used. It returns the written path.
func (g *Generator) Generate(name string, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	f, path, err := g.create(name)
	if err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		g.discard(f, path)
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		g.discard(f, path)
		return "", fmt.Errorf("failed to write report rows: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close report: %w", err)
	}

	g.logger.Info("CSV generated", zap.String("file", path), zap.Int("rows", len(rows)))
	return path, nil
}

// create claims the first free file name. O_EXCL makes the claim atomic, so two
// generators sharing a directory never write the same file.
func (g *Generator) create(name string) (io.WriteCloser, string, error) {
	for i := 0; ; i++ {
		file := name + extension
		if i > 0 {
			file = fmt.Sprintf("%s_%d%s", name, i, extension)
		}
		path := filepath.Join(g.dir, file)

		f, err := g.open(path)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create report %s: %w", path, err)
		}
	}
}

// discard releases a partly written report so its name can be claimed again.
func (g *Generator) discard(f io.Closer, path string) {
	_ = f.Close()
	if err := os.Remove(path); err != nil {
		g.logger.Warn("Failed to remove incomplete report", zap.String("file", path), zap.Error(err))
	}
}

func openExclusive(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	return f, nil
}
