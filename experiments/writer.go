package experiments

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Writer persists one experiment run under a timestamped directory:
// a setup.json plus one parquet file of move rows per game.
type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

// WriteGame writes one game's move rows. The file lands under a temp
// name first and is renamed so readers never see a partial file.
func (w *Writer) WriteGame(gameID int, rows []MoveRow) error {
	name := fmt.Sprintf("game%d.parquet", gameID)
	outPath := filepath.Join(w.baseDir, name)
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_row_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write parquet for game %d: %w", gameID, err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename parquet for game %d: %w", gameID, err)
	}
	return nil
}
