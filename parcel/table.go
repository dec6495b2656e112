package parcel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/landtile/agglotile/geom"
)

// Row is one input record as read from the parcels table file, before
// any validation. BuiltAreaSqft, AdjSalePrice and MarketValueProxy are
// nil when the source column was null.
type Row struct {
	Key              string
	BuiltAreaSqft    *float64
	LandAreaSqft     float64
	AdjSalePrice     *float64
	AssessedValue    float64
	MarketValueProxy *float64
	Geometry         geom.Polygon
}

// record is the table's internal, mutable-by-the-package-only
// representation of a single parcel.
type record struct {
	key              string
	builtArea        *float64
	landArea         float64
	adjSalePrice     *float64
	assessedValue    float64
	marketValueProxy *float64
	geometry         geom.Polygon
	currentTile      string
}

// Table is the columnar parcel store. Loaded once, then mutated only
// through SetBuiltArea, SetMarketValueProxy and SetCurrentTile;
// concurrent reads from multiple goroutines are safe throughout.
type Table struct {
	mu      sync.RWMutex
	records map[string]*record
	keys    []string // sorted once at Load, for deterministic iteration
}

// Load validates rows and builds a Table. Every row must carry a
// positive LandAreaSqft and a non-empty Key unique across the input;
// violations return ErrNonPositiveLandArea, ErrMissingColumn or
// ErrDuplicateKey with the offending key named in the wrapped message.
func Load(rows []Row) (*Table, error) {
	records := make(map[string]*record, len(rows))
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Key == "" {
			return nil, fmt.Errorf("%w: key", ErrMissingColumn)
		}
		if _, dup := records[r.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, r.Key)
		}
		if r.LandAreaSqft <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrNonPositiveLandArea, r.Key)
		}
		if r.Geometry.IsZero() {
			return nil, fmt.Errorf("%w: geometry for %s", ErrMissingColumn, r.Key)
		}

		records[r.Key] = &record{
			key:              r.Key,
			builtArea:        r.BuiltAreaSqft,
			landArea:         r.LandAreaSqft,
			adjSalePrice:     r.AdjSalePrice,
			assessedValue:    r.AssessedValue,
			marketValueProxy: r.MarketValueProxy,
			geometry:         r.Geometry,
		}
		keys = append(keys, r.Key)
	}
	sort.Strings(keys)

	return &Table{records: records, keys: keys}, nil
}

// Keys returns every parcel key in ascending order. The returned slice
// is owned by the caller.
func (t *Table) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, len(t.keys))
	copy(out, t.keys)

	return out
}

// Len reports the number of parcels in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.keys)
}

func (t *Table) get(key string) (*record, error) {
	r, ok := t.records[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	return r, nil
}

// BuiltArea returns the parcel's built area, or nil if still absent.
func (t *Table) BuiltArea(key string) (*float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, err := t.get(key)
	if err != nil {
		return nil, err
	}

	return r.builtArea, nil
}

// LandArea returns the parcel's land area (always present, always
// positive).
func (t *Table) LandArea(key string) (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, err := t.get(key)
	if err != nil {
		return 0, err
	}

	return r.landArea, nil
}

// AdjSalePrice returns the parcel's adjusted sale price, or nil if absent.
func (t *Table) AdjSalePrice(key string) (*float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, err := t.get(key)
	if err != nil {
		return nil, err
	}

	return r.adjSalePrice, nil
}

// AssessedValue returns the parcel's assessed value.
func (t *Table) AssessedValue(key string) (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, err := t.get(key)
	if err != nil {
		return 0, err
	}

	return r.assessedValue, nil
}

// MarketValueProxy returns the parcel's derived market-value proxy, or
// nil if still absent.
func (t *Table) MarketValueProxy(key string) (*float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, err := t.get(key)
	if err != nil {
		return nil, err
	}

	return r.marketValueProxy, nil
}

// Geometry returns the parcel's polygon.
func (t *Table) Geometry(key string) (geom.Polygon, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, err := t.get(key)
	if err != nil {
		return geom.Polygon{}, err
	}

	return r.geometry, nil
}

// CurrentTile returns the key of the tile that currently owns the
// parcel, or "" if the parcel has not yet been assigned.
func (t *Table) CurrentTile(key string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, err := t.get(key)
	if err != nil {
		return "", err
	}

	return r.currentTile, nil
}

// SetBuiltArea is the single writer for built_area, used by the
// infiller's pass 1.
func (t *Table) SetBuiltArea(key string, value float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, err := t.get(key)
	if err != nil {
		return err
	}
	r.builtArea = &value

	return nil
}

// SetMarketValueProxy is the single writer for market_value_proxy,
// used by algorithmic step 3 and the infiller's pass 2.
func (t *Table) SetMarketValueProxy(key string, value float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, err := t.get(key)
	if err != nil {
		return err
	}
	r.marketValueProxy = &value

	return nil
}

// SetCurrentTile updates the parcel's current-tile back-reference.
// Called only by tilegraph.Init and tilegraph.Merge.
func (t *Table) SetCurrentTile(key, tileKey string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, err := t.get(key)
	if err != nil {
		return err
	}
	r.currentTile = tileKey

	return nil
}
