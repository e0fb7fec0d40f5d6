// Package fixedpoint converts floating point values to and from the signed
// 64.64 fixed point representation used by ABDK style contracts. A 64.64
// value is an integer equal to the real value times 2^64.
package fixedpoint

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// fractionBits is the number of bits used for the fractional part.
const fractionBits = 64

// ErrNotFinite is returned when a NaN or infinite value is encoded.
var ErrNotFinite = errors.New("value must be a finite number")

// To64x64 converts the value into its 64.64 representation. The fractional
// bits below 2^-64 are truncated toward zero, not rounded.
func To64x64(value float64) (*big.Int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, ErrNotFinite
	}

	// Scaling by a power of two only moves the exponent, so the product is
	// exact and Int performs the truncation.
	f := new(big.Float).SetFloat64(value)
	f.SetMantExp(f, fractionBits)

	i, _ := f.Int(nil)
	return i, nil
}

// From64x64 converts a 64.64 value back into a float64.
func From64x64(x *big.Int) float64 {
	f := new(big.Float).SetInt(x)
	f.SetMantExp(f, -fractionBits)

	v, _ := f.Float64()
	return v
}

// ToSlice converts each value into its 64.64 representation keeping the
// order of the values.
func ToSlice(values []float64) ([]*big.Int, error) {
	fixed := make([]*big.Int, len(values))
	for i, v := range values {
		x, err := To64x64(v)
		if err != nil {
			return nil, fmt.Errorf("index[%d]: %w", i, err)
		}
		fixed[i] = x
	}

	return fixed, nil
}
