// Package logreturn computes logarithmic returns over an ordered series
// of prices.
package logreturn

import (
	"errors"
	"fmt"
	"math"
)

// Set of errors returned when a price can't participate in a ratio.
var (
	ErrNonPositivePrice = errors.New("price must be positive")
	ErrInvalidPrice     = errors.New("price must be a finite number")
)

// Calculate returns the natural log of the ratio of every consecutive pair
// of prices, in the order the prices were provided. A series with fewer than
// two prices produces an empty result.
func Calculate(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return []float64{}, nil
	}

	// Validate the whole series first so a bad price never results in a
	// partial set of returns.
	for i, price := range prices {
		if err := check(price); err != nil {
			return nil, fmt.Errorf("index[%d] price[%v]: %w", i, price, err)
		}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}

	return returns, nil
}

func check(price float64) error {
	switch {
	case math.IsNaN(price), math.IsInf(price, 0):
		return ErrInvalidPrice
	case price <= 0:
		return ErrNonPositivePrice
	}

	return nil
}
