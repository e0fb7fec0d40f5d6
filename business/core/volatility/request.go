package volatility

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Request is the one shot transaction record for a submission. It is
// constructed once, signed once, and sent once.
type Request struct {
	From     common.Address // Account signing and paying for the transaction.
	To       common.Address // Address of the volatility contract.
	Nonce    uint64         // Pending transaction count of the sender.
	GasLimit uint64         // Fixed gas limit for the call.
	GasPrice *big.Int       // Fixed gas price in wei.
	Data     []byte         // ABI encoded call data with the 64.64 values.
}

// Tx constructs the unsigned legacy transaction for the request.
func (r Request) Tx() *types.Transaction {
	to := r.To

	return types.NewTx(&types.LegacyTx{
		Nonce:    r.Nonce,
		To:       &to,
		Value:    new(big.Int),
		Gas:      r.GasLimit,
		GasPrice: new(big.Int).Set(r.GasPrice),
		Data:     append([]byte(nil), r.Data...),
	})
}

// String implements the fmt.Stringer interface for logging.
func (r Request) String() string {
	return fmt.Sprintf("from[%s]: to[%s]: nonce[%d]: gas[%d]: gasPrice[%s]: data[%d]", r.From, r.To, r.Nonce, r.GasLimit, r.GasPrice, len(r.Data))
}
