package tablestore

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/landtile/agglotile/parcel"
	"github.com/landtile/agglotile/tilegraph"
)

// ParcelReader loads the parcels input table.
type ParcelReader interface {
	ReadParcels(path string) ([]parcel.Row, error)
}

// TileReader loads the initial tiles input table.
type TileReader interface {
	ReadTiles(path string) ([]tilegraph.TileSeed, error)
}

// ParquetReader implements both ParcelReader and TileReader over
// local parquet files.
type ParquetReader struct{}

var (
	_ ParcelReader = ParquetReader{}
	_ TileReader   = ParquetReader{}
)

// ReadParcels reads every row of the parcels parquet file at path.
func (ParquetReader) ReadParcels(path string) ([]parcel.Row, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("tablestore: opening %s: %w", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(parcelRow), 4)
	if err != nil {
		return nil, fmt.Errorf("tablestore: reading schema of %s: %w", path, err)
	}
	defer pr.ReadStop()

	numRows := int(pr.GetNumRows())
	raw := make([]parcelRow, numRows)
	if err := pr.Read(&raw); err != nil {
		return nil, fmt.Errorf("tablestore: reading rows of %s: %w", path, err)
	}

	out := make([]parcel.Row, 0, numRows)
	for _, r := range raw {
		geometry, err := decodeGeometry(r.Geometry)
		if err != nil {
			return nil, fmt.Errorf("tablestore: parcel %s: %w", r.Key, err)
		}
		out = append(out, parcel.Row{
			Key:           r.Key,
			BuiltAreaSqft: r.BuiltAreaSqft,
			LandAreaSqft:  r.LandAreaSqft,
			AdjSalePrice:  r.AdjSalePrice,
			AssessedValue: r.AssessedValue,
			Geometry:      geometry,
		})
	}

	return out, nil
}

// ReadTiles reads every row of the tiles parquet file at path. Input
// r_squared is always null per spec.md §6 and is discarded; tiles
// start with no R² until their first merge.
func (ParquetReader) ReadTiles(path string) ([]tilegraph.TileSeed, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("tablestore: opening %s: %w", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(tileRow), 4)
	if err != nil {
		return nil, fmt.Errorf("tablestore: reading schema of %s: %w", path, err)
	}
	defer pr.ReadStop()

	numRows := int(pr.GetNumRows())
	raw := make([]tileRow, numRows)
	if err := pr.Read(&raw); err != nil {
		return nil, fmt.Errorf("tablestore: reading rows of %s: %w", path, err)
	}

	out := make([]tilegraph.TileSeed, 0, numRows)
	for _, r := range raw {
		geometry, err := decodeGeometry(r.Geometry)
		if err != nil {
			return nil, fmt.Errorf("tablestore: tile %s: %w", r.Key, err)
		}
		out = append(out, tilegraph.TileSeed{Key: r.Key, Geometry: geometry})
	}

	return out, nil
}
