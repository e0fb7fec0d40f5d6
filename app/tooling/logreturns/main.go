// This program computes log returns for a price series and submits them in
// 64.64 fixed point to the volatility calculator contract.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/logreturns/business/core/volatility"
	"github.com/ardanlabs/logreturns/business/sys/validate"
	"github.com/ardanlabs/logreturns/foundation/blockchain/artifact"
	"github.com/ardanlabs/logreturns/foundation/blockchain/wallet"
	"github.com/ardanlabs/logreturns/foundation/fixedpoint"
	"github.com/ardanlabs/logreturns/foundation/logger"
	"github.com/ardanlabs/logreturns/foundation/logreturn"
	"github.com/ardanlabs/logreturns/foundation/series"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LOGRETURNS")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log, os.Stdout); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger, console io.Writer) error {

	// =========================================================================
	// Configuration

	// Values from a .env file in the working directory are loaded into the
	// environment first. The file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env file: %w", err)
	}

	cfg := struct {
		conf.Version
		Chain struct {
			Network        string        `conf:"default:http://127.0.0.1:8545" validate:"required,url"`
			Contract       string        `conf:"required" validate:"required,eth_addr"`
			ArtifactPath   string        `conf:"default:out/VolatilityCalculator.sol/VolatilityCalculator.json" validate:"required"`
			PrivateKey     string        `conf:"required,noprint" validate:"required,hexadecimal"`
			GasLimit       uint64        `conf:"default:500000" validate:"gt=0"`
			GasPriceGwei   uint64        `conf:"default:1" validate:"gt=0"`
			DialTimeout    time.Duration `conf:"default:10s" validate:"gt=0"`
			ReceiptTimeout time.Duration `conf:"default:0s"`
		}
		Prices struct {
			File string
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "LOGRETURNS"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Fprintln(console, help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	if err := validate.Check(cfg.Chain); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	// =========================================================================
	// App Starting

	traceID := uuid.NewString()
	log = log.With("traceid", traceID)

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Compute Returns

	prices := series.Default()
	if cfg.Prices.File != "" {
		prices, err = series.Load(cfg.Prices.File)
		if err != nil {
			return err
		}
	}
	log.Infow("startup", "status", "prices loaded", "count", len(prices))

	returns, err := logreturn.Calculate(prices)
	if err != nil {
		return fmt.Errorf("calculating log returns: %w", err)
	}
	fmt.Fprintln(console, "Logarithmic Returns:", returns)

	fixed, err := fixedpoint.ToSlice(returns)
	if err != nil {
		return fmt.Errorf("converting to 64.64: %w", err)
	}
	fmt.Fprintln(console, "Logarithmic Returns (64.64 fixed point):", fixed)

	// =========================================================================
	// Blockchain Support

	// The private key is only held by the wallet from this point on.
	w, err := wallet.New(cfg.Chain.PrivateKey)
	if err != nil {
		return fmt.Errorf("unable to load private key: %w", err)
	}
	cfg.Chain.PrivateKey = ""
	log.Infow("startup", "status", "wallet loaded", "account", w)

	contractABI, err := artifact.Load(cfg.Chain.ArtifactPath)
	if err != nil {
		return fmt.Errorf("unable to load contract abi: %w", err)
	}

	dialCtx, cancelDial := context.WithTimeout(context.Background(), cfg.Chain.DialTimeout)
	defer cancelDial()

	client, err := ethclient.DialContext(dialCtx, cfg.Chain.Network)
	if err != nil {
		return fmt.Errorf("dialing ethereum node: %w", err)
	}
	defer client.Close()

	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s)
	}

	core, err := volatility.NewCore(volatility.Config{
		Backend:   client,
		Contract:  common.HexToAddress(cfg.Chain.Contract),
		ABI:       contractABI,
		GasLimit:  cfg.Chain.GasLimit,
		GasPrice:  new(big.Int).Mul(new(big.Int).SetUint64(cfg.Chain.GasPriceGwei), big.NewInt(params.GWei)),
		EvHandler: ev,
	})
	if err != nil {
		return err
	}

	// Both checks are bounded by the dial timeout so an unreachable node
	// fails fast.
	if _, err := core.Connect(dialCtx); err != nil {
		return err
	}

	if err := core.CheckContract(dialCtx); err != nil {
		return err
	}

	// =========================================================================
	// Submit Returns

	ctx := context.Background()

	tx, err := core.Submit(ctx, w, fixed)
	if err != nil {
		return fmt.Errorf("submitting log returns: %w", err)
	}
	fmt.Fprintf(console, "Transaction sent with hash: %s\n", tx.Hash().Hex())

	if cfg.Chain.ReceiptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Chain.ReceiptTimeout)
		defer cancel()
	}

	receipt, err := core.WaitMined(ctx, tx)
	if err != nil {
		if receipt != nil {
			fmt.Fprintf(console, "Transaction mined in block %d\n", receipt.BlockNumber)
		}
		return err
	}
	fmt.Fprintf(console, "Transaction mined in block %d\n", receipt.BlockNumber)

	return nil
}
