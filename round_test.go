package molweight_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zephyrtronium/molweight"
)

func TestRound(t *testing.T) {
	cases := []struct {
		x      float64
		places int
		want   float64
	}{
		{132.134, 2, 132.13},
		{132.134, 1, 132.1},
		{132.134, 0, 132},
		{132.134, -1, 130},
		{132.134, -2, 100},
		{16.043, 2, 16.04},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{0.125, 2, 0.13},
		{0.49999999999999994, 0, 0},
		{-0.49999999999999994, 0, 0},
		{1.4999999999999998, 0, 1},
		{0, 3, 0},
		{12.011, 5, 12.011},
	}
	for _, c := range cases {
		got, _ := molweight.Round(big.NewFloat(c.x), c.places).Float64()
		assert.InDelta(t, c.want, got, 1e-9, "Round(%v, %d)", c.x, c.places)
	}
}

func TestRoundLargeInt(t *testing.T) {
	// 2^63+1 needs all 64 bits of precision.
	n := new(big.Int).Lsh(big.NewInt(1), 63)
	n.Add(n, big.NewInt(1))
	x := new(big.Float).SetPrec(64).SetInt(n)
	got, acc := molweight.Round(x, 0).Int(nil)
	assert.Equal(t, big.Exact, acc)
	assert.Equal(t, "9223372036854775809", got.String())
	got, _ = molweight.Round(x.Neg(x), 0).Int(nil)
	assert.Equal(t, "-9223372036854775809", got.String())
}

func TestRoundSig(t *testing.T) {
	cases := []struct {
		x      float64
		digits int
		want   float64
	}{
		{132.134, 2, 130},
		{132.134, 4, 132.1},
		{132.134, 5, 132.13},
		{16.043, 4, 16.04},
		{1.008, 1, 1},
		{0.012345, 2, 0.012},
		{999.7, 3, 1000},
		{1000, 2, 1000},
		{100, 1, 100},
		{-47.867, 2, -48},
		{0, 3, 0},
	}
	for _, c := range cases {
		got, _ := molweight.RoundSig(big.NewFloat(c.x), c.digits).Float64()
		assert.InDelta(t, c.want, got, 1e-9, "RoundSig(%v, %d)", c.x, c.digits)
	}
	assert.Panics(t, func() { molweight.RoundSig(big.NewFloat(1), 0) })
}

func TestRoundInf(t *testing.T) {
	inf := new(big.Float).SetInf(false)
	assert.True(t, molweight.Round(inf, 2).IsInf())
	assert.True(t, molweight.RoundSig(inf, 2).IsInf())
	f, _ := molweight.Round(big.NewFloat(math.MaxFloat64), 0).Float64()
	assert.Equal(t, math.MaxFloat64, f)
}

func TestRoundPrec(t *testing.T) {
	x := new(big.Float).SetPrec(200).SetFloat64(132.134)
	assert.Equal(t, uint(200), molweight.Round(x, 2).Prec())
	assert.Equal(t, uint(200), molweight.RoundSig(x, 2).Prec())
}
