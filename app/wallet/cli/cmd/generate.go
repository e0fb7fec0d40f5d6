package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/logreturns/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key pair and save it under the account name",
	RunE:  generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) error {
	if accountName == "" {
		return errors.New("an account name is required to save the key")
	}

	path := getPrivateKeyPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("key file %s already exists", path)
	}

	if err := os.MkdirAll(accountPath, 0700); err != nil {
		return fmt.Errorf("creating account path: %w", err)
	}

	w, err := wallet.Generate()
	if err != nil {
		return err
	}

	if err := w.Save(path); err != nil {
		return fmt.Errorf("saving key: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), w.Address().Hex())
	return nil
}
