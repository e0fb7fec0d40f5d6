// Package series provides the historical price series used to compute
// returns, either the built in default or one read from a YAML file.
package series

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultPrices are the historical prices in chronological order used
// when no price file is configured.
var defaultPrices = []float64{100, 105, 102, 108}

// File represents the layout of a price file.
type File struct {
	Prices []float64 `yaml:"prices"`
}

// Default returns a copy of the built in price series.
func Default() []float64 {
	prices := make([]float64, len(defaultPrices))
	copy(prices, defaultPrices)
	return prices
}

// Load opens and consumes the price file at the specified path.
func Load(path string) ([]float64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading price file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parsing price file: %w", err)
	}

	return file.Prices, nil
}
