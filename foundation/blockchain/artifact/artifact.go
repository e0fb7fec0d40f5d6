// Package artifact reads the contract build artifacts produced by the
// solidity tool chain.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrMissingABI is returned when the artifact has no abi section.
var ErrMissingABI = errors.New("artifact has no abi")

// Artifact represents the parts of a build artifact this package uses.
type Artifact struct {
	ABI json.RawMessage `json:"abi"`
}

// Load opens the artifact at the specified path and parses the contract
// interface description found under the "abi" key.
func Load(path string) (abi.ABI, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("reading artifact: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(content, &art); err != nil {
		return abi.ABI{}, fmt.Errorf("parsing artifact: %w", err)
	}

	if len(art.ABI) == 0 || string(art.ABI) == "null" {
		return abi.ABI{}, ErrMissingABI
	}

	contractABI, err := abi.JSON(bytes.NewReader(art.ABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing abi: %w", err)
	}

	return contractABI, nil
}
