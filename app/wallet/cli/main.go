// This program provides wallet support for the account used to submit
// log returns.
package main

import "github.com/ardanlabs/logreturns/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
