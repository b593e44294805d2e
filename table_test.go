package molweight_test

import (
	"errors"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/molweight"
)

func TestDefaultTable(t *testing.T) {
	table := molweight.DefaultTable()
	els := molweight.Elements()
	require.Len(t, els, 118)
	assert.Equal(t, 118, table.Len())
	for i, e := range els {
		assert.Equal(t, i+1, e.Number, e.Symbol)
		w, ok := table.WeightOf(e.Symbol)
		assert.True(t, ok, e.Symbol)
		assert.Equal(t, e.Weight, w, e.Symbol)
		if i > 0 && !inversions[e.Symbol] {
			assert.Greater(t, e.Weight, els[i-1].Weight, e.Symbol)
		}
	}
	syms := table.Symbols()
	assert.True(t, sort.StringsAreSorted(syms))

	assert.Equal(t, 12.011, mustWeight(t, table, "C"))
	assert.Equal(t, 22.990, mustWeight(t, table, "Na"))
	_, ok := table.WeightOf("NA")
	assert.False(t, ok)
	_, ok = table.WeightOf("na")
	assert.False(t, ok)
}

// inversions are the elements that are no heavier than the element before
// them.
var inversions = map[string]bool{
	"K": true, "Ni": true, "I": true, "Pa": true, "Np": true, "Am": true,
	"Bk": true, "Hs": true, "Rg": true, "Nh": true, "Mc": true, "Og": true,
}

func mustWeight(t *testing.T, table *molweight.Table, sym string) float64 {
	t.Helper()
	w, ok := table.WeightOf(sym)
	require.True(t, ok, sym)
	return w
}

func TestElementsCopy(t *testing.T) {
	a := molweight.Elements()
	a[0].Weight = 100
	assert.Equal(t, 1.008, molweight.Elements()[0].Weight)
	assert.Equal(t, 1.008, mustWeight(t, molweight.DefaultTable(), "H"))
}

func TestNewTable(t *testing.T) {
	m := map[string]float64{"D": 2.014, "T": 3.016}
	table, err := molweight.NewTable(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "T"}, table.Symbols())
	m["D"] = 5
	assert.Equal(t, 2.014, mustWeight(t, table, "D"), "table must copy its input")

	bad := []map[string]float64{
		{"": 1},
		{"d": 1},
		{"DD": 1},
		{"D2": 1},
		{"D": 0},
		{"D": -1},
		{"D": math.Inf(1)},
		{"D": math.NaN()},
	}
	for _, m := range bad {
		_, err := molweight.NewTable(m)
		var terr *molweight.TableError
		assert.True(t, errors.As(err, &terr), "%v: want TableError, got %v", m, err)
	}
}

func TestLoadTable(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want map[string]float64
	}{
		{"yaml", "D: 2.014\nT: 3.016\n", map[string]float64{"D": 2.014, "T": 3.016}},
		{"json", `{"D": 2.014, "Uue": 315}`, map[string]float64{"D": 2.014, "Uue": 315}},
		{"quoted", "\"N\": 14.0067\n\"No\": 259.1\n", map[string]float64{"N": 14.0067, "No": 259.1}},
		{"empty", "", map[string]float64{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			table, err := molweight.LoadTable(strings.NewReader(c.src))
			require.NoError(t, err)
			assert.Equal(t, len(c.want), table.Len())
			for sym, w := range c.want {
				assert.Equal(t, w, mustWeight(t, table, sym), sym)
			}
		})
	}
}

func TestLoadTableErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", "D: [2.014"},
		{"string-weight", "D: heavy"},
		{"negative", "D: -2"},
		{"lowercase", "d: 2.014"},
		{"bare-boolean-symbol", "N: 14.007"},
		{"list", "- D\n- T\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := molweight.LoadTable(strings.NewReader(c.src))
			var terr *molweight.TableError
			assert.True(t, errors.As(err, &terr), "want TableError, got %v", err)
		})
	}
}

func TestTableMerge(t *testing.T) {
	custom, err := molweight.NewTable(map[string]float64{"D": 2.014, "H": 1.00794})
	require.NoError(t, err)
	merged := molweight.DefaultTable().Merge(custom)
	assert.Equal(t, 119, merged.Len())
	assert.Equal(t, 1.00794, mustWeight(t, merged, "H"))
	assert.Equal(t, 2.014, mustWeight(t, merged, "D"))
	assert.Equal(t, 15.999, mustWeight(t, merged, "O"))
	// The originals are unchanged.
	assert.Equal(t, 1.008, mustWeight(t, molweight.DefaultTable(), "H"))
	assert.Equal(t, 2, custom.Len())

	ctx := molweight.NewContext(molweight.WithTable(merged))
	w, err := ctx.Weight(molweight.ParseString("HDO"))
	require.NoError(t, err)
	f, _ := w.Float64()
	assert.InDelta(t, 1.00794+2.014+15.999, f, 1e-9)
}

func TestTableSuggest(t *testing.T) {
	table := molweight.DefaultTable()
	assert.Equal(t, []string{"Xe"}, table.Suggest("Xx"))
	assert.Empty(t, table.Suggest("Qqqq"))
	s := table.Suggest("Mgg")
	assert.Contains(t, s, "Mg")
	assert.True(t, sort.StringsAreSorted(s))
}
