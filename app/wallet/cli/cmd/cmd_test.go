package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag values live in package variables and persist between runs.
	hexKey = ""
	keyFile = ""
	accountName = ""
	accountPath = "zblock/accounts/"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestAccountFromEnv(t *testing.T) {
	t.Log("Given the need to print the account for the configured key.")
	{
		t.Setenv(keyEnv, "0xfae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")

		out, err := execute(t, "account")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to run the account command : %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to run the account command.", success)

		if out != "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4" {
			t.Logf("\t%s\tgot: %s", failed, out)
			t.Fatalf("\t%s\tShould print the account address.", failed)
		}
		t.Logf("\t%s\tShould print the account address.", success)
	}
}

func TestAccountMissingKey(t *testing.T) {
	t.Log("Given the need to fail when no key is configured.")
	{
		t.Setenv(keyEnv, "")

		if _, err := execute(t, "account"); err == nil {
			t.Fatalf("\t%s\tShould not be able to run the account command.", failed)
		}
		t.Logf("\t%s\tShould not be able to run the account command.", success)
	}
}

func TestGenerate(t *testing.T) {
	t.Log("Given the need to generate a key file and read it back.")
	{
		dir := t.TempDir()

		generated, err := execute(t, "generate", "--account", "kennedy", "--account-path", dir)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a key : %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to generate a key.", success)

		account, err := execute(t, "account", "--account", "kennedy.ecdsa", "--account-path", dir)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the key : %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the key.", success)

		if generated == "" || generated != account {
			t.Logf("\t%s\tgot: %s", failed, account)
			t.Logf("\t%s\texp: %s", failed, generated)
			t.Fatalf("\t%s\tShould get back the generated address.", failed)
		}
		t.Logf("\t%s\tShould get back the generated address.", success)

		if _, err := execute(t, "generate", "--account", "kennedy", "--account-path", dir); err == nil {
			t.Fatalf("\t%s\tShould not overwrite an existing key.", failed)
		}
		t.Logf("\t%s\tShould not overwrite an existing key.", success)
	}
}

func TestAccountFromKeyFlag(t *testing.T) {
	t.Log("Given the need to print the account for a key passed on the command line.")
	{
		t.Setenv(keyEnv, "")

		out, err := execute(t, "account", "--key", "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to run the account command : %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to run the account command.", success)

		if out != "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4" {
			t.Logf("\t%s\tgot: %s", failed, out)
			t.Fatalf("\t%s\tShould print the account address.", failed)
		}
		t.Logf("\t%s\tShould print the account address.", success)

		if _, err := execute(t, "account", "--key", "0xnothex"); err == nil {
			t.Fatalf("\t%s\tShould not accept a malformed key.", failed)
		}
		t.Logf("\t%s\tShould not accept a malformed key.", success)
	}
}

func TestAccountFromKeyFile(t *testing.T) {
	t.Log("Given the need to print the account for a key file passed on the command line.")
	{
		t.Setenv(keyEnv, "")
		dir := t.TempDir()

		generated, err := execute(t, "generate", "--account", "pavel", "--account-path", dir)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a key : %s", failed, err)
		}

		out, err := execute(t, "account", "--key-file", filepath.Join(dir, "pavel.ecdsa"))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to run the account command : %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to run the account command.", success)

		if out != generated {
			t.Logf("\t%s\tgot: %s", failed, out)
			t.Logf("\t%s\texp: %s", failed, generated)
			t.Fatalf("\t%s\tShould print the address for the key file.", failed)
		}
		t.Logf("\t%s\tShould print the address for the key file.", success)

		if _, err := execute(t, "account", "--key-file", filepath.Join(dir, "missing.ecdsa")); err == nil {
			t.Fatalf("\t%s\tShould not accept a missing key file.", failed)
		}
		t.Logf("\t%s\tShould not accept a missing key file.", success)
	}
}
