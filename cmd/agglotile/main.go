// Command agglotile runs the tiling engine end-to-end: read the
// parcels and tiles input tables, infill missing attributes, build the
// tile graph, run the merge loop, and write each iteration's
// intermediate tile snapshot. It is thin wiring over the library
// packages, out of the core's scope, so the module is runnable as a
// program rather than only as an importable library.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/landtile/agglotile/config"
	"github.com/landtile/agglotile/driver"
	"github.com/landtile/agglotile/geom"
	"github.com/landtile/agglotile/infill"
	"github.com/landtile/agglotile/parcel"
	"github.com/landtile/agglotile/spatialindex"
	"github.com/landtile/agglotile/tablestore"
	"github.com/landtile/agglotile/telemetry"
	"github.com/landtile/agglotile/tilegraph"
)

// exitValidity and exitIO are the two nonzero process exit codes:
// validity covers malformed input (schema, geometry, land area),
// I/O covers everything that failed reading or writing a file.
const (
	exitValidity = 1
	exitIO       = 2
)

func main() {
	root := newRunCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRunCommand() *cobra.Command {
	var (
		parcelsPath     string
		tilesPath       string
		configPath      string
		outputDirectory string
		endingTiles     int
		bufferFeet      float64
		infillK         int
		minSales        int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tile parcels into value-homogeneous regions by greedy agglomerative merge",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath, outputDirectory, endingTiles, bufferFeet, infillK, minSales)
			if err != nil {
				return err
			}

			return run(cmd.Context(), parcelsPath, tilesPath, cfg)
		},
	}

	cmd.Flags().StringVar(&parcelsPath, "parcels", "", "path to the parcels parquet input (required)")
	cmd.Flags().StringVar(&tilesPath, "tiles", "", "path to the tiles parquet input (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	cmd.Flags().StringVar(&outputDirectory, "output", ".", "directory for intermediate_tiles_<n>.parquet")
	cmd.Flags().IntVar(&endingTiles, "desired-tile-count", 0, "stop once this many tiles remain (0: run to completion)")
	cmd.Flags().Float64Var(&bufferFeet, "adjacency-buffer-feet", config.DefaultAdjacencyBufferFeet, "rook-adjacency buffer, in feet")
	cmd.Flags().IntVar(&infillK, "infill-k", config.DefaultInfillK, "donor count for spatial-lag infill")
	cmd.Flags().IntVar(&minSales, "min-sales", config.DefaultMinSalesForOLS, "minimum sales required before an OLS join is scored")
	_ = cmd.MarkFlagRequired("parcels")
	_ = cmd.MarkFlagRequired("tiles")

	return cmd
}

func resolveConfig(configPath, outputDirectory string, endingTiles int, bufferFeet float64, infillK, minSales int) (*config.Config, error) {
	if configPath == "" {
		return config.New(
			config.WithOutputDirectory(outputDirectory),
			config.WithDesiredEndingTileCount(endingTiles),
			config.WithAdjacencyBufferFeet(bufferFeet),
			config.WithInfillK(infillK),
			config.WithMinSalesForOLS(minSales),
		), nil
	}

	cfg, err := config.LoadYAML(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errIO, err)
	}

	return cfg, nil
}

func run(ctx context.Context, parcelsPath, tilesPath string, cfg *config.Config) error {
	logger := telemetry.New(logrus.StandardLogger())

	reader := tablestore.ParquetReader{}
	rows, err := reader.ReadParcels(parcelsPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errIO, err)
	}
	seeds, err := reader.ReadTiles(tilesPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errIO, err)
	}

	tbl, err := parcel.Load(rows)
	if err != nil {
		return fmt.Errorf("%w: %w", errValidity, err)
	}

	idx := buildParcelIndex(tbl)
	if err := infill.Run(tbl, idx, cfg.InfillK); err != nil {
		return fmt.Errorf("%w: %w", errValidity, err)
	}

	graph, err := tilegraph.Init(seeds, tbl, cfg.AdjacencyBufferFeet)
	if err != nil {
		return fmt.Errorf("%w: %w", errValidity, err)
	}

	engine, err := driver.NewEngine(graph, tbl, cfg, logger, tablestore.ParquetWriter{})
	if err != nil {
		return fmt.Errorf("%w: %w", errValidity, err)
	}

	if err := engine.Run(ctx); err != nil {
		return fmt.Errorf("%w: %w", errIO, err)
	}

	return nil
}

func buildParcelIndex(tbl *parcel.Table) *spatialindex.ParcelIndex {
	keys := tbl.Keys()
	points := make([]spatialindex.IndexedPoint, 0, len(keys))
	for _, key := range keys {
		poly, err := tbl.Geometry(key)
		if err != nil {
			continue
		}
		points = append(points, spatialindex.IndexedPoint{Key: key, Point: geom.Centroid(poly)})
	}

	return spatialindex.NewParcelIndex(points)
}

// errValidity and errIO classify a wrapped error for exitCodeFor;
// run() never returns a bare error, always one wrapped in one of these
// two, so exitCodeFor can recover the right process exit code from any
// layer the failure surfaced at.
var (
	errValidity = errors.New("invalid input")
	errIO       = errors.New("i/o failure")
)

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, errValidity):
		return exitValidity
	case errors.Is(err, errIO):
		return exitIO
	default:
		return exitIO
	}
}
