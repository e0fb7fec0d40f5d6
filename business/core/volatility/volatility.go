// Package volatility is the core API for feeding log returns to the
// volatility calculator contract. All returns for a run are sent in a
// single transaction.
package volatility

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
)

// MethodAddLogReturns is the contract method receiving the returns.
const MethodAddLogReturns = "addLogReturns"

// Defaults used when the configuration doesn't specify a value.
const (
	DefaultGasLimit = 500_000
)

// DefaultGasPrice is the gas price used when the configuration doesn't
// specify one.
var DefaultGasPrice = big.NewInt(params.GWei)

// Set of error variables for the submission workflow.
var (
	ErrMethodNotFound = errors.New("contract method not found")
	ErrNoContract     = errors.New("no contract code at address")
	ErrReverted       = errors.New("transaction reverted")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of a submission.
type EventHandler func(v string, args ...any)

// Backend represents the behavior required from an ethereum node.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Signer represents an account that can sign transactions.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// =============================================================================

// Config represents the configuration required to construct the core.
type Config struct {
	Backend   Backend
	Contract  common.Address
	ABI       abi.ABI
	GasLimit  uint64
	GasPrice  *big.Int
	EvHandler EventHandler
}

// Core manages the set of APIs for submitting returns.
type Core struct {
	backend  Backend
	contract common.Address
	method   abi.Method
	gasLimit uint64
	gasPrice *big.Int
	ev       EventHandler
	chainID  *big.Int
}

// NewCore constructs a core for the submission api access.
func NewCore(cfg Config) (*Core, error) {
	method, exists := cfg.ABI.Methods[MethodAddLogReturns]
	if !exists {
		return nil, fmt.Errorf("%s: %w", MethodAddLogReturns, ErrMethodNotFound)
	}

	if len(method.Inputs) != 1 {
		return nil, fmt.Errorf("%s: expected 1 argument, got %d", MethodAddLogReturns, len(method.Inputs))
	}

	gasLimit := cfg.GasLimit
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}

	gasPrice := cfg.GasPrice
	if gasPrice == nil {
		gasPrice = DefaultGasPrice
	}

	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	c := Core{
		backend:  cfg.Backend,
		contract: cfg.Contract,
		method:   method,
		gasLimit: gasLimit,
		gasPrice: new(big.Int).Set(gasPrice),
		ev:       ev,
	}

	return &c, nil
}

// Connect verifies the node is reachable and captures the chain id used
// for signing.
func (c *Core) Connect(ctx context.Context) (*big.Int, error) {
	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum node: %w", err)
	}

	c.chainID = chainID
	c.ev("volatility: Connect: chainID[%d]", chainID)

	return new(big.Int).Set(chainID), nil
}

// CheckContract verifies there is code deployed at the contract address.
func (c *Core) CheckContract(ctx context.Context) error {
	code, err := c.backend.CodeAt(ctx, c.contract, nil)
	if err != nil {
		return fmt.Errorf("fetching contract code: %w", err)
	}

	if len(code) == 0 {
		return fmt.Errorf("%s: %w", c.contract, ErrNoContract)
	}

	c.ev("volatility: CheckContract: contract[%s]: codeSize[%d]", c.contract, len(code))

	return nil
}

// Submit builds, signs, and sends a single transaction carrying all the
// provided 64.64 values. There is no retry on failure, calling Submit
// again produces a new transaction with a new nonce.
func (c *Core) Submit(ctx context.Context, signer Signer, values []*big.Int) (*types.Transaction, error) {
	req, err := c.Request(ctx, signer.Address(), values)
	if err != nil {
		return nil, err
	}

	return c.Send(ctx, signer, req)
}

// Request constructs the transaction request for the specified values
// using the current pending nonce of the sender.
func (c *Core) Request(ctx context.Context, from common.Address, values []*big.Int) (Request, error) {
	data, err := c.Pack(values)
	if err != nil {
		return Request{}, err
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return Request{}, fmt.Errorf("fetching nonce: %w", err)
	}

	req := Request{
		From:     from,
		To:       c.contract,
		Nonce:    nonce,
		GasLimit: c.gasLimit,
		GasPrice: new(big.Int).Set(c.gasPrice),
		Data:     data,
	}

	c.ev("volatility: Request: %s: values[%d]", req, len(values))

	return req, nil
}

// Pack encodes the call data for the contract method with the values as
// its single argument.
func (c *Core) Pack(values []*big.Int) ([]byte, error) {
	args, err := c.method.Inputs.Pack(values)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", c.method.Name, err)
	}

	data := make([]byte, 0, len(c.method.ID)+len(args))
	data = append(data, c.method.ID...)
	data = append(data, args...)

	return data, nil
}

// Unpack decodes call data produced by Pack back into the values.
func (c *Core) Unpack(data []byte) ([]*big.Int, error) {
	if len(data) < len(c.method.ID) {
		return nil, errors.New("call data too short")
	}

	args, err := c.method.Inputs.Unpack(data[len(c.method.ID):])
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", c.method.Name, err)
	}

	values, ok := args[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("unpacking %s: unexpected argument type %T", c.method.Name, args[0])
	}

	return values, nil
}

// Send signs the request and sends it to the node exactly once.
func (c *Core) Send(ctx context.Context, signer Signer, req Request) (*types.Transaction, error) {
	if c.chainID == nil {
		if _, err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	if signer.Address() != req.From {
		return nil, fmt.Errorf("signer %s does not match request sender %s", signer.Address(), req.From)
	}

	tx, err := signer.SignTx(req.Tx(), c.chainID)
	if err != nil {
		return nil, err
	}

	if err := c.backend.SendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("sending tx: %w", err)
	}

	c.ev("volatility: Send: tx[%s]: sent", tx.Hash())

	return tx, nil
}

// WaitMined blocks until the transaction is mined or the context is
// cancelled. A receipt with a failed status is returned along with
// ErrReverted.
func (c *Core) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	c.ev("volatility: WaitMined: tx[%s]: waiting", tx.Hash())

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for receipt: %w", err)
	}

	c.ev("volatility: WaitMined: tx[%s]: block[%d]: status[%d]", tx.Hash(), receipt.BlockNumber, receipt.Status)

	if receipt.Status == types.ReceiptStatusFailed {
		return receipt, fmt.Errorf("tx %s: %w", tx.Hash(), ErrReverted)
	}

	return receipt, nil
}
