package ols

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTable is a minimal in-memory ParcelTable for evaluator tests.
type fakeTable struct {
	builtArea map[string]*float64
	landArea  map[string]float64
	sale      map[string]*float64
	proxy     map[string]*float64
}

func newFakeTable() *fakeTable {
	return &fakeTable{
		builtArea: map[string]*float64{},
		landArea:  map[string]float64{},
		sale:      map[string]*float64{},
		proxy:     map[string]*float64{},
	}
}

func (f *fakeTable) add(key string, built, land float64, sale *float64, proxy float64) {
	b := built
	p := proxy
	f.builtArea[key] = &b
	f.landArea[key] = land
	f.sale[key] = sale
	f.proxy[key] = &p
}

func (f *fakeTable) BuiltArea(key string) (*float64, error)        { return f.builtArea[key], nil }
func (f *fakeTable) LandArea(key string) (float64, error)          { return f.landArea[key], nil }
func (f *fakeTable) AdjSalePrice(key string) (*float64, error)     { return f.sale[key], nil }
func (f *fakeTable) MarketValueProxy(key string) (*float64, error) { return f.proxy[key], nil }

func money(v float64) *float64 { return &v }

func TestEvaluateGatesOnInsufficientSales(t *testing.T) {
	tbl := newFakeTable()
	tbl.add("a", 100, 1000, money(100000), 100000)
	tbl.add("b", 200, 2000, nil, 200000)
	tbl.add("c", 300, 3000, nil, 300000)

	r2, count, err := Evaluate([]string{"a", "b", "c"}, tbl, 3)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Equal(t, 0.0, r2)
}

func TestEvaluatePerfectFitYieldsR2One(t *testing.T) {
	tbl := newFakeTable()
	// proxy = 10*built + 1*land exactly, all sold.
	tbl.add("a", 100, 1000, money(1), 10*100+1000)
	tbl.add("b", 200, 500, money(1), 10*200+500)
	tbl.add("c", 50, 4000, money(1), 10*50+4000)
	tbl.add("d", 300, 100, money(1), 10*300+100)

	r2, count, err := Evaluate([]string{"a", "b", "c", "d"}, tbl, 3)
	require.NoError(t, err)
	require.Equal(t, 4, count)
	require.InDelta(t, 1.0, r2, 1e-6)
}

func TestEvaluateConstantResponseYieldsR2Zero(t *testing.T) {
	tbl := newFakeTable()
	tbl.add("a", 100, 1000, money(1), 500000)
	tbl.add("b", 200, 2000, money(1), 500000)
	tbl.add("c", 300, 3000, money(1), 500000)

	r2, _, err := Evaluate([]string{"a", "b", "c"}, tbl, 3)
	require.NoError(t, err)
	require.Equal(t, 0.0, r2)
}

func TestEvaluateMissingBuiltAreaErrors(t *testing.T) {
	tbl := newFakeTable()
	tbl.landArea["a"] = 1000
	tbl.sale["a"] = money(1)
	p := 500.0
	tbl.proxy["a"] = &p
	tbl.sale["b"] = money(1)
	tbl.sale["c"] = money(1)
	tbl.landArea["b"] = 1000
	tbl.landArea["c"] = 1000
	tbl.proxy["b"] = &p
	tbl.proxy["c"] = &p

	_, _, err := Evaluate([]string{"a", "b", "c"}, tbl, 3)
	require.ErrorIs(t, err, ErrMissingAttribute)
}

func TestEvaluateEmptyRegion(t *testing.T) {
	tbl := newFakeTable()
	r2, count, err := Evaluate(nil, tbl, 3)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.Equal(t, 0.0, r2)
}
