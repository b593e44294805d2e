package molweight

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Round returns x rounded half away from zero to the given number of decimal
// places. A negative number of places rounds to tens, hundreds, and so on.
// The result has the precision of x.
func Round(x *big.Float, places int) *big.Float {
	if x.IsInf() || x.Sign() == 0 {
		return new(big.Float).Copy(x)
	}
	r := new(big.Float).SetPrec(x.Prec())
	if places >= 0 {
		scale := pow10(x.Prec(), places)
		r.Mul(x, scale)
		roundInt(r)
		return r.Quo(r, scale)
	}
	scale := pow10(x.Prec(), -places)
	r.Quo(x, scale)
	roundInt(r)
	return r.Mul(r, scale)
}

// RoundSig returns x rounded half away from zero to the given number of
// significant digits, which must be positive. The result has the precision
// of x.
func RoundSig(x *big.Float, digits int) *big.Float {
	if digits < 1 {
		panic("molweight: RoundSig with fewer than one digit")
	}
	if x.IsInf() || x.Sign() == 0 {
		return new(big.Float).Copy(x)
	}
	return Round(x, digits-1-magnitude(x))
}

// magnitude returns floor(log10(|x|)) for finite nonzero x.
func magnitude(x *big.Float) int {
	prec := x.Prec() + 32
	a := new(big.Float).SetPrec(prec).Abs(x)
	l := bigfloat.Log(new(big.Float).SetPrec(prec), a)
	ten := new(big.Float).SetPrec(prec).SetInt64(10)
	l.Quo(l, bigfloat.Log(new(big.Float).SetPrec(prec), ten))
	f, _ := l.Float64()
	k := int(math.Floor(f))
	// Log is inexact near powers of ten.
	switch {
	case a.Cmp(pow10(prec, k+1)) >= 0:
		k++
	case a.Cmp(pow10(prec, k)) < 0:
		k--
	}
	return k
}

// pow10 computes 10^n to the given precision. Nonnegative powers are exact
// as long as the precision can hold them.
func pow10(prec uint, n int) *big.Float {
	switch {
	case n == 0:
		return new(big.Float).SetPrec(prec).SetInt64(1)
	case n < 0:
		one := new(big.Float).SetPrec(prec).SetInt64(1)
		return one.Quo(one, pow10(prec, -n))
	}
	ten := new(big.Float).SetPrec(prec).SetInt64(10)
	e := new(big.Float).SetPrec(prec).SetInt64(int64(n))
	r := bigfloat.Pow(new(big.Float).SetPrec(prec), ten, e)
	roundInt(r)
	return r
}

// roundInt rounds x half away from zero to an integer in place.
func roundInt(x *big.Float) {
	i, _ := x.Int(nil)
	// The fractional part of x fits in x's precision, so this is exact.
	frac := new(big.Float).SetPrec(x.Prec()).SetInt(i)
	frac.Sub(x, frac)
	if frac.Abs(frac).Cmp(big.NewFloat(0.5)) >= 0 {
		i.Add(i, big.NewInt(int64(x.Sign())))
	}
	x.SetInt(i)
}
