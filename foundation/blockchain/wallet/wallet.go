// Package wallet holds the private key used to sign transactions. The key
// stays inside the wallet value and is only used when signing.
package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidKey is returned when a private key can't be decoded. The
// key material is never part of the error.
var ErrInvalidKey = errors.New("invalid private key")

// Wallet represents an account able to sign transactions.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// New constructs a wallet from a hex encoded private key with or without
// the 0x prefix.
func New(hexKey string) (*Wallet, error) {
	hexKey = strings.TrimSpace(hexKey)
	hexKey = strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X")

	privateKey, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, ErrInvalidKey
	}

	return fromKey(privateKey), nil
}

// Load constructs a wallet from the private key stored in the specified file.
func Load(path string) (*Wallet, error) {
	privateKey, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("loading key file: %w", err)
	}

	return fromKey(privateKey), nil
}

// Generate constructs a wallet with a new random private key.
func Generate() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	return fromKey(privateKey), nil
}

// Save writes the private key to the specified file with restrictive
// permissions.
func (w *Wallet) Save(path string) error {
	return crypto.SaveECDSA(path, w.privateKey)
}

// Address returns the account address for the wallet.
func (w *Wallet) Address() common.Address {
	return w.address
}

// SignTx signs the transaction for the specified chain.
func (w *Wallet) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signer := types.LatestSignerForChainID(chainID)

	signedTx, err := types.SignTx(tx, signer, w.privateKey)
	if err != nil {
		return nil, fmt.Errorf("signing tx: %w", err)
	}

	return signedTx, nil
}

// String implements the fmt.Stringer interface for logging.
func (w *Wallet) String() string {
	return w.address.Hex()
}

// GoString implements the fmt.GoStringer interface so %#v can't print
// the key.
func (w *Wallet) GoString() string {
	return fmt.Sprintf("wallet.Wallet{%s}", w.address.Hex())
}

// =============================================================================

func fromKey(privateKey *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}
}
