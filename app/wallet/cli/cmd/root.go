// Package cmd contains wallet app
package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/logreturns/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

// keyEnv is the environment variable the submitter reads the key from.
const keyEnv = "LOGRETURNS_CHAIN_PRIVATE_KEY"

const (
	keyExtension = ".ecdsa"
)

var (
	hexKey      string
	keyFile     string
	accountName string
	accountPath string
)

var rootCmd = &cobra.Command{
	Use:          "wallet",
	Short:        "Wallet support for the log returns account",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&hexKey, "key", "k", "", "Hex encoded private key.")
	rootCmd.PersistentFlags().StringVarP(&keyFile, "key-file", "f", "", "Path to a private key file.")
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "", "Name of the key file to use instead of "+keyEnv+".")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
}

func getPrivateKeyPath() string {
	name := accountName
	if !strings.HasSuffix(name, keyExtension) {
		name += keyExtension
	}

	return filepath.Join(accountPath, name)
}

// loadWallet picks the key source in order: --key, --key-file, the named
// account under the account path, then the environment.
func loadWallet() (*wallet.Wallet, error) {
	switch {
	case hexKey != "":
		return wallet.New(hexKey)

	case keyFile != "":
		return wallet.Load(keyFile)

	case accountName != "":
		return wallet.Load(getPrivateKeyPath())
	}

	envKey := os.Getenv(keyEnv)
	if envKey == "" {
		return nil, errors.New("no key specified and " + keyEnv + " is not set")
	}

	return wallet.New(envKey)
}
