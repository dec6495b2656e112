package tablestore

import (
	"fmt"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/landtile/agglotile/tilegraph"
)

// parquetRowGroupSize bounds in-memory buffering per write; the
// intermediate files this driver emits are small (one row per
// surviving tile), so this is generous headroom rather than a tuned
// value.
const parquetRowGroupSize = 128 * 1024 * 1024

// Writer emits the per-iteration intermediate tile table.
type Writer interface {
	WriteIntermediateTiles(outputDir string, iteration int, tiles []tilegraph.Tile) error
}

// ParquetWriter implements Writer over local parquet files, named
// intermediate_tiles_<iteration>.parquet exactly as spec.md §6
// specifies.
type ParquetWriter struct{}

var _ Writer = ParquetWriter{}

// WriteIntermediateTiles writes one row per tile in tiles to
// <outputDir>/intermediate_tiles_<iteration>.parquet.
func (ParquetWriter) WriteIntermediateTiles(outputDir string, iteration int, tiles []tilegraph.Tile) error {
	path := filepath.Join(outputDir, fmt.Sprintf("intermediate_tiles_%d.parquet", iteration))

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("tablestore: creating %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(tileRow), 4)
	if err != nil {
		return fmt.Errorf("tablestore: initializing writer for %s: %w", path, err)
	}
	pw.RowGroupSize = parquetRowGroupSize
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, t := range tiles {
		row := tileRow{
			Key:      t.Key,
			Geometry: encodeGeometry(t.Geometry),
			RSquared: t.RSquared,
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("tablestore: writing tile %s to %s: %w", t.Key, path, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("tablestore: flushing %s: %w", path, err)
	}

	return nil
}
