package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/landtile/agglotile/config"
	"github.com/landtile/agglotile/ols"
	"github.com/landtile/agglotile/registry"
	"github.com/landtile/agglotile/tablestore"
	"github.com/landtile/agglotile/telemetry"
	"github.com/landtile/agglotile/tilegraph"
)

// ParcelTable is the surface the driver needs from *parcel.Table: the
// union of what ols.Evaluate reads and what tilegraph.Merge mutates,
// since Engine hands the same table to both. A plain alias to either
// sub-interface wouldn't satisfy the other at the call sites below, so
// this embeds both.
type ParcelTable interface {
	tilegraph.ParcelTable
	ols.ParcelTable
}

// Engine owns the single mutable tile graph and edge registry for one
// run and exposes Merge only indirectly, through Run: no caller can
// reach into the graph or registry mid-run and mutate state out from
// under the loop.
type Engine struct {
	graph    *tilegraph.Graph
	registry *registry.Registry
	parcels  ParcelTable
	cfg      *config.Config
	logger   telemetry.Logger
	writer   tablestore.Writer

	iteration int
}

// NewEngine builds an Engine over an already-initialized tile graph.
// Every current edge starts stale in the registry, exactly as if the
// run had just begun.
func NewEngine(graph *tilegraph.Graph, parcels ParcelTable, cfg *config.Config, logger telemetry.Logger, writer tablestore.Writer) (*Engine, error) {
	if graph.TileCount() == 0 {
		return nil, ErrNoTiles
	}

	return &Engine{
		graph:    graph,
		registry: registry.New(graph.Edges()),
		parcels:  parcels,
		cfg:      cfg,
		logger:   logger,
		writer:   writer,
	}, nil
}

// Iteration reports how many merges Run has completed so far.
func (e *Engine) Iteration() int {
	return e.iteration
}

// Run drives the merge loop to completion or until ctx is cancelled.
// Each step: warm every stale edge memo (concurrently when more than
// one is pending), ask the registry for the best prospective join,
// stop if none remains or the desired tile count has been reached,
// fold the winning pair via tilegraph.Merge, reconcile the registry,
// and emit the iteration's intermediate tile snapshot. Cancellation is
// observed only between iterations, so a cancelled run always leaves
// the most recently written intermediate file intact.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if e.terminated() {
			e.logger.Terminated(e.terminationReason(), e.iteration, e.graph.TileCount())

			return nil
		}

		if err := e.warmStaleEdges(ctx); err != nil {
			return err
		}

		winner, ok, err := e.registry.Best(e.evaluate)
		if err != nil {
			return err
		}
		if !ok {
			e.logger.Terminated("no edges remain", e.iteration, e.graph.TileCount())

			return nil
		}

		rSquared, _, err := e.evaluate(winner.A, winner.B)
		if err != nil {
			return err
		}

		before := e.graph.Edges()

		merged, affected, err := tilegraph.Merge(e.graph, e.parcels, winner.A, winner.B, rSquared)
		if err != nil {
			return err
		}

		removed := edgesTouching(before, winner.A, winner.B)
		e.registry.OnMerge(removed, affected)

		e.iteration++
		e.logger.Iteration(e.iteration, winner.A, winner.B, merged, rSquared)

		if e.writer != nil {
			tiles, err := e.snapshotTiles()
			if err != nil {
				return err
			}
			if err := e.writer.WriteIntermediateTiles(e.cfg.OutputDirectory, e.iteration, tiles); err != nil {
				return fmt.Errorf("driver: writing iteration %d: %w", e.iteration, err)
			}
		}
	}
}

// edgesTouching returns every edge in edges whose endpoints include a
// or b, the snapshot of what Merge is about to fold away or collapse.
func edgesTouching(edges []registry.EdgeKey, a, b string) []registry.EdgeKey {
	out := make([]registry.EdgeKey, 0, 4)
	for _, e := range edges {
		if e.A == a || e.B == a || e.A == b || e.B == b {
			out = append(out, e)
		}
	}

	return out
}

func (e *Engine) terminated() bool {
	if e.cfg.DesiredEndingTileCount > 0 && e.graph.TileCount() <= e.cfg.DesiredEndingTileCount {
		return true
	}

	return e.registry.Len() == 0
}

func (e *Engine) terminationReason() string {
	if e.cfg.DesiredEndingTileCount > 0 && e.graph.TileCount() <= e.cfg.DesiredEndingTileCount {
		return "desired tile count reached"
	}

	return "no edges remain"
}

// warmStaleEdges evaluates every currently stale edge. With more than
// one pending, evaluation is fanned out across an errgroup.Group
// bounded to GOMAXPROCS goroutines: an evaluation only reads the tile
// graph and the parcel table, whose accessors are safe for concurrent
// readers, and each goroutine writes only its own result slot. Results are folded
// back into the registry only after every goroutine has returned, so
// Best never reads a ranking mid-fan-out.
func (e *Engine) warmStaleEdges(ctx context.Context) error {
	stale := e.registry.StaleEdges()
	if len(stale) == 0 {
		return nil
	}

	type result struct {
		edge        registry.StaleEdge
		rSquared    float64
		parcelCount int
	}
	results := make([]result, len(stale))

	grp, _ := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i, st := range stale {
		i, st := i, st
		grp.Go(func() error {
			r2, count, err := e.evaluate(st.Edge.A, st.Edge.B)
			if err != nil {
				return err
			}
			results[i] = result{edge: st, rSquared: r2, parcelCount: count}

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		e.registry.WarmUp(r.edge, r.rSquared, r.parcelCount)
	}

	return nil
}

// evaluate scores the region that would result from joining tiles a
// and b, without mutating the graph.
func (e *Engine) evaluate(a, b string) (float64, int, error) {
	ta, err := e.graph.Tile(a)
	if err != nil {
		return 0, 0, err
	}
	tb, err := e.graph.Tile(b)
	if err != nil {
		return 0, 0, err
	}

	keys := make([]string, 0, len(ta.Members)+len(tb.Members))
	keys = append(keys, ta.Members...)
	keys = append(keys, tb.Members...)

	return ols.Evaluate(keys, e.parcels, e.cfg.MinSalesForOLS)
}

func (e *Engine) snapshotTiles() ([]tilegraph.Tile, error) {
	keys := e.graph.Tiles()
	out := make([]tilegraph.Tile, 0, len(keys))
	for _, k := range keys {
		t, err := e.graph.Tile(k)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}
